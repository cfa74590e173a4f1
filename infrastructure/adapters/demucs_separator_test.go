package adapters

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ameeralns/Spleeter/config"
	"github.com/ameeralns/Spleeter/domain"
)

func separatorConfig() *config.ExtractorConfig {
	return &config.ExtractorConfig{
		DemucsBin:  "demucs",
		ModelName:  "htdemucs",
		FFmpegBin:  "ffmpeg",
		FFprobeBin: "ffprobe",
	}
}

func testModel() *domain.ModelHandle {
	return &domain.ModelHandle{Name: "htdemucs", Binary: "demucs"}
}

func writeInput(t *testing.T, workDir string) string {
	t.Helper()
	inputPath := filepath.Join(workDir, "input.mp3")
	if err := os.WriteFile(inputPath, []byte("mp3 bytes"), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return inputPath
}

func TestSeparateProducesVocalTrack(t *testing.T) {
	workDir := t.TempDir()
	inputPath := writeInput(t, workDir)
	vocalsWav := filepath.Join(workDir, "stems", "htdemucs", "input", "vocals.wav")

	runner := &fakeRunner{
		onRun: func(_ context.Context, name string, args ...string) (commandResult, error) {
			switch name {
			case "demucs":
				if err := os.MkdirAll(filepath.Dir(vocalsWav), 0o755); err != nil {
					return commandResult{}, err
				}
				return commandResult{}, os.WriteFile(vocalsWav, []byte("wav bytes"), 0o600)
			case "ffmpeg":
				outputPath := args[len(args)-1]
				return commandResult{}, os.WriteFile(outputPath, []byte("mp3 vocals"), 0o600)
			default:
				return commandResult{}, nil
			}
		},
	}
	separator := &demucsSeparator{cfg: separatorConfig(), logger: testLogger{}, runner: runner}

	outputPath, err := separator.Separate(context.Background(), testModel(), inputPath, workDir)
	if err != nil {
		t.Fatalf("separate: %v", err)
	}

	got, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(got) != "mp3 vocals" {
		t.Fatalf("unexpected output %q", got)
	}

	// The intermediate stem directory must not survive.
	if _, err := os.Stat(filepath.Join(workDir, "stems")); !os.IsNotExist(err) {
		t.Fatal("expected stem dir to be removed")
	}
}

func TestSeparateClassifiesUndecodableInput(t *testing.T) {
	workDir := t.TempDir()
	inputPath := writeInput(t, workDir)

	runner := &fakeRunner{
		onRun: func(_ context.Context, name string, args ...string) (commandResult, error) {
			if name == "ffprobe" {
				return commandResult{ExitCode: 1, Stderr: "invalid data found"}, errors.New("exit status 1")
			}
			return commandResult{}, nil
		},
	}
	separator := &demucsSeparator{cfg: separatorConfig(), logger: testLogger{}, runner: runner}

	_, err := separator.Separate(context.Background(), testModel(), inputPath, workDir)
	if domain.KindOf(err) != domain.KindSourceUnavailable {
		t.Fatalf("expected source_unavailable, got %v", err)
	}
	if runner.callCount() != 1 {
		t.Fatalf("expected separation to stop after probe, ran %d commands", runner.callCount())
	}
}

func TestSeparateClassifiesModelFailure(t *testing.T) {
	workDir := t.TempDir()
	inputPath := writeInput(t, workDir)

	runner := &fakeRunner{
		onRun: func(_ context.Context, name string, args ...string) (commandResult, error) {
			if name == "demucs" {
				return commandResult{ExitCode: 137, Stderr: "killed"}, errors.New("exit status 137")
			}
			return commandResult{}, nil
		},
	}
	separator := &demucsSeparator{cfg: separatorConfig(), logger: testLogger{}, runner: runner}

	_, err := separator.Separate(context.Background(), testModel(), inputPath, workDir)
	if domain.KindOf(err) != domain.KindExtractionFailed {
		t.Fatalf("expected extraction_failed, got %v", err)
	}
}

func TestSeparateFailsWhenNoStemProduced(t *testing.T) {
	workDir := t.TempDir()
	inputPath := writeInput(t, workDir)

	// Every command "succeeds" but demucs writes nothing.
	separator := &demucsSeparator{cfg: separatorConfig(), logger: testLogger{}, runner: &fakeRunner{}}

	_, err := separator.Separate(context.Background(), testModel(), inputPath, workDir)
	if domain.KindOf(err) != domain.KindExtractionFailed {
		t.Fatalf("expected extraction_failed, got %v", err)
	}
}
