package saveuserprofile

import "time"

type Config struct {
	Timeout time.Duration
	// RecommendOnSave fetches fresh recommendations after a successful save. Off for the
	// worker, where recommend-schemes is its own task.
	RecommendOnSave bool
	// RecommendTimeout bounds the inline fetch so the save result is always reported.
	RecommendTimeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:          30 * time.Second,
		RecommendOnSave:  false,
		RecommendTimeout: 20 * time.Second,
	}
}
