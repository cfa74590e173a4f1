package adapters

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/ameeralns/Spleeter/application/ports/outbound"
	"github.com/ameeralns/Spleeter/config"
	"github.com/ameeralns/Spleeter/domain"
)

type s3ArtifactStore struct {
	s3Svc    *s3.S3
	s3Config *config.S3Config
	logger   outbound.LoggerPort
}

func NewS3ArtifactStore(s3Svc *s3.S3, s3Config *config.S3Config, logger outbound.LoggerPort) outbound.ArtifactStorePort {
	return &s3ArtifactStore{
		s3Svc:    s3Svc,
		s3Config: s3Config,
		logger:   logger,
	}
}

func (s *s3ArtifactStore) Put(ctx context.Context, key string, body []byte) (string, error) {
	itemPath := fmt.Sprintf("%s/%s", s.s3Config.KeyPrefix, key)

	putInput := &s3.PutObjectInput{
		Bucket:        aws.String(s.s3Config.BucketName),
		Key:           aws.String(itemPath),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String("audio/mpeg"),
	}

	_, err := s.s3Svc.PutObjectWithContext(ctx, putInput)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to upload artifact to S3", map[string]interface{}{
			"bucket": s.s3Config.BucketName,
			"key":    itemPath,
		})
		return "", domain.NewPipelineError(domain.KindPublishFailed, "storing the vocal track failed", err)
	}

	s3Url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, itemPath)
	s.logger.DebugWithFields("Uploaded artifact to S3", map[string]interface{}{
		"s3Url": s3Url,
	})

	return s3Url, nil
}
