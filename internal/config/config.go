package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"tasklist/internal/task"
)

const (
	DefaultAddr            = ":5000"
	DefaultShutdownTimeout = 5 * time.Second
	DefaultCORSOrigin      = "*"
)

type Config struct {
	Server Server `yaml:"server" json:"server"`
	Tasks  Tasks  `yaml:"tasks" json:"tasks"`
}

type Server struct {
	Addr            string        `yaml:"addr" json:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
	CORSOrigin      string        `yaml:"cors_origin" json:"cors_origin"`
	RateLimit       RateLimit     `yaml:"rate_limit" json:"rate_limit"`
}

// RateLimit is disabled while RequestsPerSecond is zero.
type RateLimit struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int     `yaml:"burst" json:"burst"`
}

type Tasks struct {
	IDPolicy string `yaml:"id_policy" json:"id_policy"`
	// Seed is a pointer so an omitted key keeps the default (true).
	Seed *bool `yaml:"seed" json:"seed"`
}

func (t Tasks) SeedEnabled() bool {
	return t.Seed == nil || *t.Seed
}

func (s *Server) ApplyDefaults() {
	if strings.TrimSpace(s.Addr) == "" {
		s.Addr = DefaultAddr
	}
	if s.ShutdownTimeout <= 0 {
		s.ShutdownTimeout = DefaultShutdownTimeout
	}
	if strings.TrimSpace(s.CORSOrigin) == "" {
		s.CORSOrigin = DefaultCORSOrigin
	}
}

func (t *Tasks) ApplyDefaults() {
	if strings.TrimSpace(t.IDPolicy) == "" {
		t.IDPolicy = string(task.IDSequential)
	}
}

func (c *Config) ApplyDefaults() {
	c.Server.ApplyDefaults()
	c.Tasks.ApplyDefaults()
}

func (c *Config) Validate() error {
	if _, err := task.ParseIDPolicy(c.Tasks.IDPolicy); err != nil {
		return fmt.Errorf("tasks.id_policy: %w", err)
	}
	if c.Server.RateLimit.RequestsPerSecond < 0 {
		return errors.New("server.rate_limit.requests_per_second must not be negative")
	}
	if c.Server.RateLimit.Burst < 0 {
		return errors.New("server.rate_limit.burst must not be negative")
	}
	return nil
}

// IDPolicy is only meaningful after Validate succeeded.
func (c *Config) IDPolicy() task.IDPolicy {
	p, _ := task.ParseIDPolicy(c.Tasks.IDPolicy)
	return p
}

func Default() *Config {
	var c Config
	c.ApplyDefaults()
	return &c
}

// Load reads a YAML file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	var r Config
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(b, &r); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := r.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	r.ApplyDefaults()
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}
