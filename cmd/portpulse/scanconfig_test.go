package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRequest(t *testing.T) {
	flags := scanFlags{
		TCPPortSpec:  "22,80,8080-8082",
		UDPPortSpec:  "53",
		TimeoutMs:    200,
		UDPTimeoutMs: 1000,
	}

	req, err := buildRequest([]string{"a.example", "b.example"}, flags)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.example", "b.example"}, req.Hosts)
	assert.Equal(t, []int{22, 80, 8080, 8081, 8082}, req.TCPPorts)
	assert.Equal(t, []int{53}, req.UDPPorts)
	assert.Equal(t, 200*time.Millisecond, req.TCPTimeout)
	assert.Equal(t, time.Second, req.UDPTimeout)
}

func TestBuildRequestNoPorts(t *testing.T) {
	req, err := buildRequest([]string{"a.example"}, scanFlags{TimeoutMs: 1000, UDPTimeoutMs: 1000})
	require.NoError(t, err)
	assert.Empty(t, req.TCPPorts)
	assert.Empty(t, req.UDPPorts)
}

func TestBuildRequestBadPorts(t *testing.T) {
	_, err := buildRequest([]string{"a.example"}, scanFlags{TCPPortSpec: "99999"})
	assert.Error(t, err)

	_, err = buildRequest([]string{"a.example"}, scanFlags{UDPPortSpec: "nan"})
	assert.Error(t, err)
}

func TestBuildConfig(t *testing.T) {
	flags := scanFlags{
		TimeoutMs:    500,
		BannerWaitMs: 100,
		Payload:      "ping\r\n",
		Workers:      8,
		RateLimit:    50,
	}

	cfg := buildConfig(flags)

	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 50, cfg.RateLimit)
	assert.Equal(t, 100*time.Millisecond, cfg.Probe.BannerWait)
	assert.Equal(t, "ping\r\n", cfg.Probe.Payload)
	assert.Nil(t, cfg.Resolver)
}

func TestBuildConfigWithResolver(t *testing.T) {
	cfg := buildConfig(scanFlags{TimeoutMs: 1000, ResolverAddr: "10.0.0.53"})
	assert.NotNil(t, cfg.Resolver)
}
