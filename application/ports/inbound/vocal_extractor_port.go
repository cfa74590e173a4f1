package inbound

import (
	"context"

	"github.com/ameeralns/Spleeter/domain"
)

type ExtractVocalsParams struct {
	JobID     string
	SourceURL string
}

type VocalExtractorPort interface {
	Extract(ctx context.Context, params ExtractVocalsParams) (*domain.ExtractionResult, error)
}
