package sshexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/user"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
	"golang.org/x/term"
)

// Client is the real Runner. It speaks the SSH protocol directly instead of
// shelling out to ssh(1), but keeps batch-mode semantics: authentication
// that would require a prompt fails unless stdin is a terminal.
type Client struct {
	// KeyPath is an optional private key file. When empty the client
	// falls back to the ssh agent (SSH_AUTH_SOCK).
	KeyPath string
	// KnownHostsPath enables host key verification against the given
	// known_hosts file. Empty skips verification.
	KnownHostsPath string
	// ConnectTimeout bounds the TCP+handshake phase. Zero means the
	// dialer's default.
	ConnectTimeout time.Duration
}

// Run connects to target and executes command, capturing stdout and stderr.
// A non-zero remote exit status is returned as an error alongside the
// captured Result.
func (c *Client) Run(ctx context.Context, target, command string) (Result, error) {
	t, err := ParseTarget(target)
	if err != nil {
		return Result{ExitCode: -1}, err
	}
	cfg, err := c.clientConfig(t)
	if err != nil {
		return Result{ExitCode: -1}, err
	}

	dialer := net.Dialer{Timeout: c.ConnectTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", t.Addr())
	if err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("ssh %s: connect: %w", target, err)
	}
	sshConn, chans, reqs, err := ssh.NewClientConn(conn, t.Addr(), cfg)
	if err != nil {
		conn.Close()
		return Result{ExitCode: -1}, fmt.Errorf("ssh %s: handshake: %w", target, err)
	}
	client := ssh.NewClient(sshConn, chans, reqs)
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("ssh %s: open session: %w", target, err)
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	// Tear the connection down if the context expires mid-command;
	// Session.Run has no context of its own.
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			client.Close()
		case <-done:
		}
	}()
	runErr := session.Run(command)
	close(done)

	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if runErr == nil {
		return res, nil
	}
	if ctx.Err() != nil {
		res.ExitCode = -1
		return res, fmt.Errorf("ssh %s: %w", target, ctx.Err())
	}
	var exitErr *ssh.ExitError
	if errors.As(runErr, &exitErr) {
		res.ExitCode = exitErr.ExitStatus()
		return res, fmt.Errorf("ssh %s: remote command exited %d", target, res.ExitCode)
	}
	res.ExitCode = -1
	return res, fmt.Errorf("ssh %s: %w", target, runErr)
}

func (c *Client) clientConfig(t Target) (*ssh.ClientConfig, error) {
	login := t.User
	if login == "" {
		u, err := user.Current()
		if err != nil {
			return nil, fmt.Errorf("determine local user: %w", err)
		}
		login = u.Username
	}

	var auth []ssh.AuthMethod
	if c.KeyPath != "" {
		keyAuth, err := c.keyAuth()
		if err != nil {
			return nil, err
		}
		auth = append(auth, keyAuth)
	}
	if sock := os.Getenv("SSH_AUTH_SOCK"); sock != "" {
		if conn, err := net.Dial("unix", sock); err == nil {
			auth = append(auth, ssh.PublicKeysCallback(agent.NewClient(conn).Signers))
		}
	}
	if len(auth) == 0 {
		return nil, fmt.Errorf("no ssh auth available: set an identity file or start an ssh agent")
	}

	hostKeys := ssh.InsecureIgnoreHostKey()
	if c.KnownHostsPath != "" {
		cb, err := knownhosts.New(c.KnownHostsPath)
		if err != nil {
			return nil, fmt.Errorf("load known_hosts %s: %w", c.KnownHostsPath, err)
		}
		hostKeys = cb
	}

	return &ssh.ClientConfig{
		User:            login,
		Auth:            auth,
		HostKeyCallback: hostKeys,
		Timeout:         c.ConnectTimeout,
	}, nil
}

func (c *Client) keyAuth() (ssh.AuthMethod, error) {
	data, err := os.ReadFile(c.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("read identity file: %w", err)
	}
	signer, err := ssh.ParsePrivateKey(data)
	if err == nil {
		return ssh.PublicKeys(signer), nil
	}
	var missing *ssh.PassphraseMissingError
	if !errors.As(err, &missing) {
		return nil, fmt.Errorf("parse identity file %s: %w", c.KeyPath, err)
	}
	// Encrypted key: prompting is only allowed when attached to a
	// terminal, otherwise keep batch semantics and fail.
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("identity file %s is encrypted and stdin is not a terminal", c.KeyPath)
	}
	fmt.Fprintf(os.Stderr, "Enter passphrase for %s: ", c.KeyPath)
	pass, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("read passphrase: %w", err)
	}
	signer, err = ssh.ParsePrivateKeyWithPassphrase(data, pass)
	if err != nil {
		return nil, fmt.Errorf("decrypt identity file %s: %w", c.KeyPath, err)
	}
	return ssh.PublicKeys(signer), nil
}
