package config

import (
	"fmt"
	"os"
)

type S3Config struct {
	BucketName string
	Region     string
	KeyPrefix  string
}

func GetS3Config() (*S3Config, error) {
	bucketName := os.Getenv("BUCKET_NAME")
	if bucketName == "" {
		return nil, fmt.Errorf("BUCKET_NAME must be set")
	}

	region := os.Getenv("REGION")
	if region == "" {
		return nil, fmt.Errorf("REGION must be set")
	}

	keyPrefix := os.Getenv("KEY_PREFIX")
	if keyPrefix == "" {
		keyPrefix = "vocals"
	}

	return &S3Config{
		BucketName: bucketName,
		Region:     region,
		KeyPrefix:  keyPrefix,
	}, nil
}
