package adapters

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/ameeralns/Spleeter/application/ports/outbound"
	"github.com/ameeralns/Spleeter/config"
	"github.com/ameeralns/Spleeter/domain"
)

type demucsSeparator struct {
	cfg    *config.ExtractorConfig
	logger outbound.LoggerPort
	runner commandRunner
}

func NewDemucsSeparator(cfg *config.ExtractorConfig, logger outbound.LoggerPort) outbound.VocalSeparatorPort {
	return &demucsSeparator{
		cfg:    cfg,
		logger: logger,
		runner: &execRunner{},
	}
}

// Separate runs the model against inputPath and writes the encoded vocal
// track into workDir. The intermediate stem directory is removed here; the
// returned MP3 belongs to the caller.
func (s *demucsSeparator) Separate(ctx context.Context, model *domain.ModelHandle, inputPath string, workDir string) (string, error) {
	if err := s.probe(ctx, inputPath); err != nil {
		return "", err
	}

	stemDir := filepath.Join(workDir, "stems")
	defer func() {
		if err := os.RemoveAll(stemDir); err != nil {
			s.logger.Error(err, "Failed to remove stem dir")
		}
	}()

	result, err := s.runner.Run(ctx, model.Binary,
		"--two-stems=vocals", "-n", model.Name, "-o", stemDir, inputPath)
	if err != nil {
		s.logger.ErrorWithFields(err, "Separation run failed", map[string]interface{}{
			"model":    model.Name,
			"exitCode": result.ExitCode,
			"stderr":   tail(result.Stderr),
		})
		return "", domain.NewPipelineError(domain.KindExtractionFailed, "vocal separation failed", err)
	}

	trackName := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	vocalsWav := filepath.Join(stemDir, model.Name, trackName, "vocals.wav")
	if _, err := os.Stat(vocalsWav); err != nil {
		s.logger.Error(err, "Separation produced no vocal stem")
		return "", domain.NewPipelineError(domain.KindExtractionFailed, "vocal separation produced no output", err)
	}

	outputPath := filepath.Join(workDir, "vocals.mp3")
	result, err = s.runner.Run(ctx, s.cfg.FFmpegBin,
		"-y", "-i", vocalsWav, "-codec:a", "libmp3lame", "-b:a", "192k", outputPath)
	if err != nil {
		s.logger.ErrorWithFields(err, "Vocal encode failed", map[string]interface{}{
			"exitCode": result.ExitCode,
			"stderr":   tail(result.Stderr),
		})
		return "", domain.NewPipelineError(domain.KindExtractionFailed, "encoding the vocal track failed", err)
	}

	return outputPath, nil
}

// probe rejects payloads the decoder cannot read before the expensive
// separation run. A failed probe is the source's fault, not the model's.
func (s *demucsSeparator) probe(ctx context.Context, inputPath string) error {
	_, err := s.runner.Run(ctx, s.cfg.FFprobeBin,
		"-v", "error", "-select_streams", "a:0",
		"-show_entries", "stream=codec_name",
		"-of", "default=noprint_wrappers=1:nokey=1", inputPath)
	if err != nil {
		return domain.NewPipelineError(domain.KindSourceUnavailable, "source audio could not be decoded", err)
	}
	return nil
}

func tail(s string) string {
	const max = 512
	if len(s) <= max {
		return s
	}
	return s[len(s)-max:]
}
