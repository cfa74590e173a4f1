package outbound

import "context"

// ArtifactStorePort uploads produced audio under a storage key and returns the
// publicly resolvable URL.
type ArtifactStorePort interface {
	Put(ctx context.Context, key string, body []byte) (string, error)
}
