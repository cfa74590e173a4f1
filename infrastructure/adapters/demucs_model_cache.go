package adapters

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/ameeralns/Spleeter/application/ports/outbound"
	"github.com/ameeralns/Spleeter/config"
	"github.com/ameeralns/Spleeter/domain"
)

type demucsModelCache struct {
	cfg    *config.ExtractorConfig
	logger outbound.LoggerPort
	runner commandRunner

	mu      sync.Mutex
	handle  *domain.ModelHandle
	loadErr error
	loaded  bool
}

func NewDemucsModelCache(cfg *config.ExtractorConfig, logger outbound.LoggerPort) outbound.ModelProviderPort {
	return &demucsModelCache{
		cfg:    cfg,
		logger: logger,
		runner: &execRunner{},
	}
}

// Acquire loads the model on first call and hands back the cached handle
// afterwards. Concurrent first callers serialize on the mutex so exactly one
// load runs; a failed load is cached and returned to every later caller.
func (c *demucsModelCache) Acquire(ctx context.Context) (*domain.ModelHandle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handle != nil {
		return c.handle, nil
	}
	if c.loadErr != nil {
		return nil, c.loadErr
	}

	// The load builds process-wide shared state; a request-scoped cancellation
	// must neither abort it nor cache a failure that locks out later callers.
	handle, err := c.load(context.WithoutCancel(ctx))
	if err != nil {
		c.loadErr = domain.NewPipelineError(domain.KindInternal, "separation model is unavailable", err)
		c.logger.Error(err, "Failed to load separation model")
		return nil, c.loadErr
	}

	c.handle = handle
	c.loaded = true
	c.logger.InfoWithFields("Separation model loaded", map[string]interface{}{
		"model":  handle.Name,
		"binary": handle.Binary,
	})
	return c.handle, nil
}

func (c *demucsModelCache) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// load resolves the demucs binary and warms the named pretrained model by
// separating a short synthesized clip. On a cold host this forces the weight
// download, so no extraction request ever pays that cost itself.
func (c *demucsModelCache) load(ctx context.Context) (*domain.ModelHandle, error) {
	binary, err := exec.LookPath(c.cfg.DemucsBin)
	if err != nil {
		return nil, err
	}

	warmupDir, err := os.MkdirTemp(c.cfg.WorkDir, "model-warmup-")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.RemoveAll(warmupDir); err != nil {
			c.logger.Error(err, "Failed to remove model warmup dir")
		}
	}()

	warmupClip := filepath.Join(warmupDir, "warmup.wav")
	if _, err := c.runner.Run(ctx, c.cfg.FFmpegBin,
		"-f", "lavfi", "-i", "anullsrc=r=44100:cl=stereo", "-t", "1", warmupClip); err != nil {
		return nil, err
	}

	if _, err := c.runner.Run(ctx, binary,
		"--two-stems=vocals", "-n", c.cfg.ModelName, "-o", warmupDir, warmupClip); err != nil {
		return nil, err
	}

	return &domain.ModelHandle{
		Name:     c.cfg.ModelName,
		Binary:   binary,
		LoadedAt: time.Now(),
	}, nil
}
