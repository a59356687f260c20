package updateapplicationstatus

import "time"

type Config struct {
	Timeout time.Duration
	// MessageName is published after every transition, correlated by application id. Empty disables it.
	MessageName string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     10 * time.Second,
		MessageName: "application-status-changed",
	}
}
