package sshexec

import (
	"fmt"
	"strconv"
	"strings"
)

// Target is a parsed SSH destination.
// Example inputs: "cam-a", "pi@cam-a.local", "pi@cam-a.local:2222".
type Target struct {
	// Raw is the original input string.
	Raw string
	// User is the login user; empty means "use the local user".
	User string
	// Host is the hostname, alias, or address.
	Host string
	// Port is the TCP port, defaulting to 22.
	Port int
}

// ParseTarget parses an SSH destination of the form [user@]host[:port].
func ParseTarget(raw string) (Target, error) {
	t := Target{Raw: raw, Port: 22}
	s := strings.TrimSpace(raw)
	if s == "" {
		return t, fmt.Errorf("ssh target must not be empty")
	}
	if i := strings.LastIndex(s, "@"); i >= 0 {
		t.User = s[:i]
		s = s[i+1:]
		if t.User == "" {
			return t, fmt.Errorf("invalid ssh target %q: empty user before '@'", raw)
		}
	}
	if i := strings.LastIndex(s, ":"); i >= 0 {
		port, err := strconv.Atoi(s[i+1:])
		if err != nil || port < 1 || port > 65535 {
			return t, fmt.Errorf("invalid ssh target %q: bad port %q", raw, s[i+1:])
		}
		t.Port = port
		s = s[:i]
	}
	if s == "" {
		return t, fmt.Errorf("invalid ssh target %q: empty host", raw)
	}
	t.Host = s
	return t, nil
}

// Addr returns the host:port dial address.
func (t Target) Addr() string {
	return fmt.Sprintf("%s:%d", t.Host, t.Port)
}

// String returns a canonical [user@]host[:port] form.
func (t Target) String() string {
	var b strings.Builder
	if t.User != "" {
		b.WriteString(t.User)
		b.WriteString("@")
	}
	b.WriteString(t.Host)
	if t.Port != 0 && t.Port != 22 {
		fmt.Fprintf(&b, ":%d", t.Port)
	}
	return b.String()
}
