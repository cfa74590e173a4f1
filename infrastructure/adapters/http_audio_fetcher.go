package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/ameeralns/Spleeter/application/ports/outbound"
	"github.com/ameeralns/Spleeter/config"
	"github.com/ameeralns/Spleeter/domain"
)

type httpAudioFetcher struct {
	client *http.Client
	cfg    *config.FetcherConfig
	logger outbound.LoggerPort
}

func NewHTTPAudioFetcher(cfg *config.FetcherConfig, logger outbound.LoggerPort) outbound.AudioFetcherPort {
	return &httpAudioFetcher{
		client: &http.Client{},
		cfg:    cfg,
		logger: logger,
	}
}

// Fetch streams the remote resource into a uniquely named file inside destDir.
// The file is never deleted here; the caller owns it.
func (f *httpAudioFetcher) Fetch(ctx context.Context, rawURL string, destDir string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "", domain.NewPipelineError(domain.KindInvalidRequest, "mp3_url is not a valid URL", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", domain.NewPipelineError(domain.KindInvalidRequest, "mp3_url must use http or https", nil)
	}

	reqCtx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return "", domain.NewPipelineError(domain.KindInvalidRequest, "mp3_url is not a valid URL", err)
	}

	res, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", domain.NewPipelineError(domain.KindSourceUnavailable, "downloading the source audio timed out", err)
		}
		f.logger.ErrorWithFields(err, "Failed to download source audio", map[string]interface{}{
			"URL": parsed.String(),
		})
		return "", domain.NewPipelineError(domain.KindSourceUnavailable, "source audio could not be reached", err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			f.logger.Error(err, "Failed to close download body")
		}
	}(res.Body)

	if res.StatusCode != http.StatusOK {
		return "", domain.NewPipelineError(domain.KindSourceUnavailable,
			fmt.Sprintf("source returned status %d", res.StatusCode), nil)
	}

	if !acceptableContentType(res.Header.Get("Content-Type")) {
		return "", domain.NewPipelineError(domain.KindSourceUnavailable, "source is not an audio resource", nil)
	}

	out, err := os.CreateTemp(destDir, "input-*.mp3")
	if err != nil {
		return "", domain.NewPipelineError(domain.KindInternal, "internal server error", err)
	}

	// Read one byte past the cap so an oversized payload is detectable.
	written, err := io.Copy(out, io.LimitReader(res.Body, f.cfg.MaxSizeBytes+1))
	closeErr := out.Close()
	if err != nil {
		if reqCtx.Err() != nil {
			return "", domain.NewPipelineError(domain.KindSourceUnavailable, "downloading the source audio timed out", err)
		}
		return "", domain.NewPipelineError(domain.KindSourceUnavailable, "source audio download was interrupted", err)
	}
	if closeErr != nil {
		return "", domain.NewPipelineError(domain.KindInternal, "internal server error", closeErr)
	}
	if written > f.cfg.MaxSizeBytes {
		return "", domain.NewPipelineError(domain.KindSourceUnavailable,
			fmt.Sprintf("source audio exceeds the %d MB limit", f.cfg.MaxSizeBytes/(1024*1024)), nil)
	}

	f.logger.DebugWithFields("Downloaded source audio", map[string]interface{}{
		"URL":   parsed.String(),
		"bytes": written,
		"path":  out.Name(),
	})

	return out.Name(), nil
}

func acceptableContentType(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType := strings.TrimSpace(strings.Split(contentType, ";")[0])
	if strings.HasPrefix(mediaType, "audio/") {
		return true
	}
	switch mediaType {
	case "application/octet-stream", "binary/octet-stream":
		return true
	}
	return false
}
