package probe

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// Probe performs one bounded TCP connection attempt against host:port.
// It never fails to its caller: every outcome, including dial errors and
// stream errors after connect, is encoded in the returned Result. The
// underlying socket is released on every path.
func Probe(ctx context.Context, host string, port int, opts Options) Result {
	start := time.Now()
	res := attempt(ctx, host, port, opts)
	res.ElapsedMs = time.Since(start).Milliseconds()
	return res
}

func attempt(ctx context.Context, host string, port int, opts Options) Result {
	res := Result{Host: host, Port: port, Protocol: ProtocolTCP}

	if opts.Timeout <= 0 {
		res.Status = StatusTimeout
		res.Note = TimeoutNote
		return res
	}

	target := host
	if opts.Addr != "" {
		target = opts.Addr
	}

	dialer := &net.Dialer{Timeout: opts.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(target, strconv.Itoa(port)))
	if err != nil {
		var nerr net.Error
		if errors.As(err, &nerr) && nerr.Timeout() {
			res.Status = StatusTimeout
			res.Note = TimeoutNote
		} else {
			res.Status = StatusError
			res.Note = err.Error()
		}
		return res
	}
	defer conn.Close()

	banner, err := grabBanner(ctx, conn, opts)
	if err != nil {
		res.Status = StatusError
		res.Note = err.Error()
		return res
	}

	res.Open = true
	res.Status = StatusOpen
	res.Note = banner
	return res
}

// grabBanner best-effort writes the probe payload, waits the fixed
// post-connect delay, then drains whatever the remote made available in
// bounded reads. A silent remote yields an empty banner and no error.
func grabBanner(ctx context.Context, conn net.Conn, opts Options) (string, error) {
	if opts.Payload != "" {
		if opts.WriteTimeout > 0 {
			if err := conn.SetWriteDeadline(time.Now().Add(opts.WriteTimeout)); err != nil {
				return "", err
			}
		}
		if _, err := conn.Write([]byte(opts.Payload)); err != nil {
			return "", err
		}
	}

	// Deliberate fixed wait for the remote to respond, not a timeout guard
	if opts.BannerWait > 0 {
		timer := time.NewTimer(opts.BannerWait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	readSize := opts.BannerReadSize
	if readSize <= 0 {
		readSize = 1024
	}
	maxSize := opts.BannerMaxSize
	if maxSize <= 0 {
		maxSize = 4 * 1024
	}
	poll := opts.BannerPoll
	if poll <= 0 {
		poll = 250 * time.Millisecond
	}

	var buf bytes.Buffer
	chunk := make([]byte, readSize)
	for buf.Len() < maxSize {
		if err := conn.SetReadDeadline(time.Now().Add(poll)); err != nil {
			return "", err
		}
		n, err := conn.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
		}
		if err != nil {
			var nerr net.Error
			if errors.As(err, &nerr) && nerr.Timeout() {
				// No more data flagged available
				break
			}
			if errors.Is(err, io.EOF) {
				break
			}
			return "", err
		}
	}

	banner := buf.String()
	if len(banner) > maxSize {
		banner = banner[:maxSize]
	}
	return strings.TrimSpace(strings.ToValidUTF8(banner, "")), nil
}
