package probe

import "time"

// Config holds configuration for reachability probing.
type Config struct {
	// MinTimeout is the lower bound of the per-attempt randomized timeout.
	MinTimeout time.Duration `mapstructure:"min_timeout" default:"3s"`
	// MaxTimeout is the upper bound of the per-attempt randomized timeout.
	MaxTimeout time.Duration `mapstructure:"max_timeout" default:"6s"`
	// Attempts is the total number of tries per URL when attempts time out.
	Attempts int `mapstructure:"attempts" default:"3"`
	// Deadline bounds the whole run; probes still pending afterwards are reported as unresolved.
	Deadline time.Duration `mapstructure:"deadline" default:"20s"`
	// RangeBytes is how many leading bytes each request asks for.
	RangeBytes int64 `mapstructure:"range_bytes" default:"1024"`
	// UserAgent is sent with every probe.
	UserAgent string `mapstructure:"user_agent" default:"manifest-validator"`
}

// DefaultConfig mirrors the struct tag defaults for callers that skip config loading.
func DefaultConfig() Config {
	return Config{
		MinTimeout: 3 * time.Second,
		MaxTimeout: 6 * time.Second,
		Attempts:   3,
		Deadline:   20 * time.Second,
		RangeBytes: 1024,
		UserAgent:  "manifest-validator",
	}
}

// normalize fills zero values so a partially populated Config is still usable.
func (c Config) normalize() Config {
	def := DefaultConfig()
	if c.MinTimeout <= 0 {
		c.MinTimeout = def.MinTimeout
	}
	if c.MaxTimeout < c.MinTimeout {
		c.MaxTimeout = c.MinTimeout
	}
	if c.Attempts <= 0 {
		c.Attempts = def.Attempts
	}
	if c.Deadline <= 0 {
		c.Deadline = def.Deadline
	}
	if c.RangeBytes <= 0 {
		c.RangeBytes = def.RangeBytes
	}
	return c
}
