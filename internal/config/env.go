package config

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	EnvAddr     = "TASKLIST_ADDR"
	EnvIDPolicy = "TASKLIST_ID_POLICY"
	EnvRPS      = "TASKLIST_RATE_LIMIT_RPS"
	EnvBurst    = "TASKLIST_RATE_LIMIT_BURST"
)

// ApplyEnv overrides file values with environment variables.
// lookup is os.LookupEnv outside of tests.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := getEnv(lookup, EnvAddr); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnv(lookup, EnvIDPolicy); ok {
		c.Tasks.IDPolicy = v
	}
	if v, ok := getEnv(lookup, EnvRPS); ok {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRPS, err)
		}
		c.Server.RateLimit.RequestsPerSecond = n
	}
	if v, ok := getEnv(lookup, EnvBurst); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBurst, err)
		}
		c.Server.RateLimit.Burst = n
	}
	return nil
}

func getEnv(lookup func(string) (string, bool), key string) (string, bool) {
	if lookup == nil {
		return "", false
	}
	v, ok := lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
