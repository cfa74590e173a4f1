package outbound

import (
	"context"

	"github.com/ameeralns/Spleeter/domain"
)

// VocalSeparatorPort runs the separation model against a local audio file and
// writes the encoded vocal track into workDir, returning its path. Either a
// complete vocal track is produced or an error; never partial output.
type VocalSeparatorPort interface {
	Separate(ctx context.Context, model *domain.ModelHandle, inputPath string, workDir string) (string, error)
}
