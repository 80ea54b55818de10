// Package config holds the hub-side configuration: where the repositories
// live, which service to restart, and how to reach the cameras.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "30s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the full camfleet configuration.
type Config struct {
	// CamerasFile is the line-oriented camera list.
	CamerasFile string `yaml:"cameras_file"`
	// HubRepoDir is the hub's working copy, pulled before a fleet update.
	HubRepoDir string `yaml:"hub_repo_dir"`
	// RemoteRepoDir is the repository path on every camera.
	RemoteRepoDir string `yaml:"remote_repo_dir"`
	// Service is the systemd unit running on each camera.
	Service string `yaml:"service"`
	// SSHKeyPath is an optional identity file for camera SSH sessions and
	// the hub git transport.
	SSHKeyPath string `yaml:"ssh_key"`
	// KnownHostsFile enables SSH host key verification when set.
	KnownHostsFile string `yaml:"known_hosts"`
	// StateDir holds last-run state for the dashboard.
	StateDir string `yaml:"state_dir"`

	// StatusLines bounds the systemctl status tail per camera.
	StatusLines int `yaml:"status_lines"`
	// CommandTimeout bounds each remote command.
	CommandTimeout Duration `yaml:"command_timeout"`
	// FleetTimeout bounds a whole fleet action.
	FleetTimeout Duration `yaml:"fleet_timeout"`

	Server ServerConfig `yaml:"server"`
}

// ServerConfig is the dashboard bind address.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Default returns the built-in configuration, matching the original hub
// deployment.
func Default() *Config {
	home, _ := os.UserHomeDir()
	repo := filepath.Join(home, "wildlife-cameras")
	return &Config{
		CamerasFile:    filepath.Join(repo, "hub", "cameras.txt"),
		HubRepoDir:     repo,
		RemoteRepoDir:  "~/wildlife-cameras",
		Service:        "rpi-cam-server",
		StateDir:       filepath.Join(repo, "hub", "state"),
		StatusLines:    12,
		CommandTimeout: Duration(120 * time.Second),
		FleetTimeout:   Duration(600 * time.Second),
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 5050,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is empty, a missing default location is fine), then WILDLIFE_*
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(cfg.HubRepoDir, "hub", "camfleet.yaml")
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file is a valid deployment; defaults apply.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.expandPaths()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("WILDLIFE_CAMERAS"); v != "" {
		c.CamerasFile = v
	}
	if v := os.Getenv("WILDLIFE_REPO"); v != "" {
		c.HubRepoDir = v
	}
	if v := os.Getenv("WILDLIFE_SERVICE"); v != "" {
		c.Service = v
	}
	if v := os.Getenv("WILDLIFE_SSH_KEY"); v != "" {
		c.SSHKeyPath = v
	}
	if v := os.Getenv("WILDLIFE_BIND"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("WILDLIFE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
}

// expandPaths resolves a leading "~/" in local paths. RemoteRepoDir is left
// alone: its tilde is expanded by the remote shell.
func (c *Config) expandPaths() {
	c.CamerasFile = expandHome(c.CamerasFile)
	c.HubRepoDir = expandHome(c.HubRepoDir)
	c.SSHKeyPath = expandHome(c.SSHKeyPath)
	c.KnownHostsFile = expandHome(c.KnownHostsFile)
	c.StateDir = expandHome(c.StateDir)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}

// Validate checks the configuration for values that could only misfire.
func (c *Config) Validate() error {
	if c.Service == "" {
		return fmt.Errorf("service name must not be empty")
	}
	if c.RemoteRepoDir == "" {
		return fmt.Errorf("remote repository dir must not be empty")
	}
	if c.StatusLines < 1 {
		return fmt.Errorf("status_lines must be at least 1, got %d", c.StatusLines)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid dashboard port %d", c.Server.Port)
	}
	return nil
}

// ServerAddress returns the dashboard listen address.
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
