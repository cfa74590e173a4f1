package outbound

import "context"

// AudioFetcherPort downloads a remote audio resource into destDir and returns
// the file path. The caller owns the file and is responsible for deleting it.
type AudioFetcherPort interface {
	Fetch(ctx context.Context, rawURL string, destDir string) (string, error)
}
