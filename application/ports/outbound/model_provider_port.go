package outbound

import (
	"context"

	"github.com/ameeralns/Spleeter/domain"
)

// ModelProviderPort hands out the shared separation model. The first Acquire
// performs the load; later calls return the cached handle. A load failure is
// permanent for the process lifetime.
type ModelProviderPort interface {
	Acquire(ctx context.Context) (*domain.ModelHandle, error)
	Loaded() bool
}
