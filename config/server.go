package config

import (
	"fmt"
	"os"
	"strconv"
)

type ServerConfig struct {
	Port           int
	WorkerPoolSize int
}

func GetServerConfig() (*ServerConfig, error) {
	port := 8080
	if raw := os.Getenv("PORT"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 65535 {
			return nil, fmt.Errorf("PORT must be a valid port number")
		}
		port = parsed
	}

	workerPoolSize := 32
	if raw := os.Getenv("WORKER_POOL_SIZE"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("WORKER_POOL_SIZE must be a positive integer")
		}
		workerPoolSize = parsed
	}

	return &ServerConfig{
		Port:           port,
		WorkerPoolSize: workerPoolSize,
	}, nil
}
