package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseHosts parses command-line targets (hostnames or addresses,
// comma-separated values allowed). Targets are kept as supplied, in
// order, duplicates included: the report carries them back verbatim.
func ParseHosts(targets []string) ([]string, error) {
	var hosts []string

	for _, target := range targets {
		for _, part := range strings.Split(target, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			hosts = append(hosts, part)
		}
	}

	if len(hosts) == 0 {
		return nil, fmt.Errorf("no targets supplied")
	}
	return hosts, nil
}

// ReadHosts reads targets from a stream, one per line. Empty lines and
// `#` comments are skipped. This serves piped stdin input.
func ReadHosts(r io.Reader) ([]string, error) {
	var hosts []string
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		hosts = append(hosts, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading targets: %w", err)
	}
	return hosts, nil
}

// ParseHostsFile reads targets from a file (one per line)
func ParseHostsFile(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ReadHosts(file)
}
