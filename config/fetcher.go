package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type FetcherConfig struct {
	Timeout      time.Duration
	MaxSizeBytes int64
}

func GetFetcherConfig() (*FetcherConfig, error) {
	timeoutSeconds := 30
	if raw := os.Getenv("DOWNLOAD_TIMEOUT_SECONDS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("DOWNLOAD_TIMEOUT_SECONDS must be a positive integer")
		}
		timeoutSeconds = parsed
	}

	maxSizeMB := 50
	if raw := os.Getenv("MAX_DOWNLOAD_MB"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("MAX_DOWNLOAD_MB must be a positive integer")
		}
		maxSizeMB = parsed
	}

	return &FetcherConfig{
		Timeout:      time.Duration(timeoutSeconds) * time.Second,
		MaxSizeBytes: int64(maxSizeMB) * 1024 * 1024,
	}, nil
}
