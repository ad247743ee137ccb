package input

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePorts parses a port selection like "22,80,443,8080-8090" into an
// ordered port list. Ports must be in [1, 65535]. Duplicates are kept:
// each occurrence produces its own scan. An empty selection yields no
// ports, which is a valid (empty) scan.
func ParsePorts(selection string) ([]int, error) {
	selection = strings.TrimSpace(selection)
	if selection == "" {
		return nil, nil
	}

	var ports []int
	for _, r := range strings.Split(selection, ",") {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}

		if strings.Contains(r, "-") {
			parts := strings.SplitN(r, "-", 2)
			lo, err := parsePort(parts[0])
			if err != nil {
				return nil, fmt.Errorf("invalid port range %q: %w", r, err)
			}
			hi, err := parsePort(parts[1])
			if err != nil {
				return nil, fmt.Errorf("invalid port range %q: %w", r, err)
			}
			if lo > hi {
				return nil, fmt.Errorf("invalid port range %q: start exceeds end", r)
			}
			for p := lo; p <= hi; p++ {
				ports = append(ports, p)
			}
			continue
		}

		p, err := parsePort(r)
		if err != nil {
			return nil, err
		}
		ports = append(ports, p)
	}

	return ports, nil
}

func parsePort(s string) (int, error) {
	s = strings.TrimSpace(s)
	p, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid port number %q", s)
	}
	if p < 1 || p > 65535 {
		return 0, fmt.Errorf("port %d out of range 1-65535", p)
	}
	return p, nil
}
