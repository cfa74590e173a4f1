package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type ExtractorConfig struct {
	DemucsBin  string
	ModelName  string
	FFmpegBin  string
	FFprobeBin string
	WorkDir    string

	MaxConcurrent int
	SlotWait      time.Duration
}

func GetExtractorConfig() (*ExtractorConfig, error) {
	demucsBin := os.Getenv("DEMUCS_BIN")
	if demucsBin == "" {
		demucsBin = "demucs"
	}

	modelName := os.Getenv("DEMUCS_MODEL")
	if modelName == "" {
		modelName = "htdemucs"
	}

	ffmpegBin := os.Getenv("FFMPEG_BIN")
	if ffmpegBin == "" {
		ffmpegBin = "ffmpeg"
	}

	ffprobeBin := os.Getenv("FFPROBE_BIN")
	if ffprobeBin == "" {
		ffprobeBin = "ffprobe"
	}

	workDir := os.Getenv("WORK_DIR")
	if workDir == "" {
		workDir = os.TempDir()
	}

	maxConcurrent := 2
	if raw := os.Getenv("MAX_CONCURRENT_EXTRACTIONS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("MAX_CONCURRENT_EXTRACTIONS must be a positive integer")
		}
		maxConcurrent = parsed
	}

	slotWaitSeconds := 10
	if raw := os.Getenv("SLOT_WAIT_SECONDS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("SLOT_WAIT_SECONDS must be a positive integer")
		}
		slotWaitSeconds = parsed
	}

	return &ExtractorConfig{
		DemucsBin:     demucsBin,
		ModelName:     modelName,
		FFmpegBin:     ffmpegBin,
		FFprobeBin:    ffprobeBin,
		WorkDir:       workDir,
		MaxConcurrent: maxConcurrent,
		SlotWait:      time.Duration(slotWaitSeconds) * time.Second,
	}, nil
}
