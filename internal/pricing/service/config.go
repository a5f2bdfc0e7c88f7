package service

import "time"

// Config controls background write batching for recalculation runs.
type Config struct {
	BatchSize  int
	BatchDelay time.Duration
	QueueSize  int
}

func DefaultConfig() Config {
	return Config{
		BatchSize:  50,
		BatchDelay: 200 * time.Millisecond,
		QueueSize:  4,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.BatchSize <= 0 {
		c.BatchSize = defaults.BatchSize
	}
	if c.BatchDelay <= 0 {
		c.BatchDelay = defaults.BatchDelay
	}
	if c.QueueSize <= 0 {
		c.QueueSize = defaults.QueueSize
	}
	return c
}
