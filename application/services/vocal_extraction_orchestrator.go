package services

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/google/uuid"

	"github.com/ameeralns/Spleeter/application/ports/inbound"
	"github.com/ameeralns/Spleeter/application/ports/outbound"
	"github.com/ameeralns/Spleeter/domain"
)

type vocalExtractionOrchestrator struct {
	logger        outbound.LoggerPort
	workerPool    outbound.TaskDispatcher
	limiter       *ExtractionLimiter
	modelProvider outbound.ModelProviderPort
	fetcher       outbound.AudioFetcherPort
	separator     outbound.VocalSeparatorPort
	artifactStore outbound.ArtifactStorePort
	workDir       string
}

func NewVocalExtractionOrchestrator(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	limiter *ExtractionLimiter, modelProvider outbound.ModelProviderPort, fetcher outbound.AudioFetcherPort,
	separator outbound.VocalSeparatorPort, artifactStore outbound.ArtifactStorePort, workDir string) inbound.VocalExtractorPort {
	return &vocalExtractionOrchestrator{
		logger:        logger,
		workerPool:    workerPool,
		limiter:       limiter,
		modelProvider: modelProvider,
		fetcher:       fetcher,
		separator:     separator,
		artifactStore: artifactStore,
		workDir:       workDir,
	}
}

// Extract drives one request through fetch, separation and publish. All
// temporary files live in a per-job directory that is removed on every exit
// path, and the concurrency slot is released even when the client is gone.
func (o *vocalExtractionOrchestrator) Extract(ctx context.Context, params inbound.ExtractVocalsParams) (*domain.ExtractionResult, error) {
	job := domain.NewJob(params.JobID, params.SourceURL)
	if err := job.Advance(domain.JobStatusAuthenticated); err != nil {
		return nil, err
	}

	// Reject garbage URLs before touching the model, a slot or the disk.
	if err := validateSourceURL(job.SourceURL); err != nil {
		job.Fail()
		return nil, err
	}

	model, err := o.modelProvider.Acquire(ctx)
	if err != nil {
		job.Fail()
		return nil, err
	}

	if err := o.limiter.Acquire(ctx); err != nil {
		job.Fail()
		o.logger.WarnWithFields("No extraction slot available", map[string]interface{}{
			"jobID": job.ID,
		})
		return nil, err
	}
	defer o.limiter.Release()

	jobDir, err := os.MkdirTemp(o.workDir, "job-"+job.ID+"-")
	if err != nil {
		job.Fail()
		return nil, domain.NewPipelineError(domain.KindInternal, "internal server error", err)
	}
	defer func() {
		if err := os.RemoveAll(jobDir); err != nil {
			o.logger.ErrorWithFields(err, "Failed to remove job dir", map[string]interface{}{
				"jobID": job.ID,
			})
		}
	}()

	if err := job.Advance(domain.JobStatusFetching); err != nil {
		return nil, err
	}
	job.LocalInputPath, err = o.fetcher.Fetch(ctx, job.SourceURL, jobDir)
	if err != nil {
		job.Fail()
		return nil, err
	}

	if err := job.Advance(domain.JobStatusExtracting); err != nil {
		return nil, err
	}
	job.LocalOutputPath, err = o.separate(ctx, model, job.LocalInputPath, jobDir)
	if err != nil {
		job.Fail()
		return nil, err
	}

	if err := job.Advance(domain.JobStatusPublishing); err != nil {
		return nil, err
	}
	vocals, err := os.ReadFile(job.LocalOutputPath)
	if err != nil {
		job.Fail()
		return nil, domain.NewPipelineError(domain.KindInternal, "internal server error", err)
	}

	vocalsURL, err := o.artifactStore.Put(ctx, artifactKey(job), vocals)
	if err != nil {
		job.Fail()
		return nil, err
	}

	if err := job.Advance(domain.JobStatusCompleted); err != nil {
		return nil, err
	}
	elapsed := job.Elapsed()
	o.logger.InfoWithFields("Vocal extraction completed", map[string]interface{}{
		"jobID":   job.ID,
		"elapsed": elapsed.Seconds(),
	})

	return &domain.ExtractionResult{
		VocalsURL:             vocalsURL,
		ProcessingTimeSeconds: elapsed.Seconds(),
	}, nil
}

type separationOutcome struct {
	outputPath string
	err        error
}

// separate dispatches the CPU-bound separation onto the worker pool so the
// request goroutine keeps servicing I/O, then waits for the outcome. On
// cancellation the separator's subprocesses die with ctx; the wait for the
// worker is kept so the job dir is never removed under a writing process.
func (o *vocalExtractionOrchestrator) separate(ctx context.Context, model *domain.ModelHandle, inputPath string, jobDir string) (string, error) {
	outcomeCh := make(chan separationOutcome, 1)

	err := o.workerPool.Submit(func() {
		outputPath, err := o.separator.Separate(ctx, model, inputPath, jobDir)
		outcomeCh <- separationOutcome{outputPath: outputPath, err: err}
	})
	if err != nil {
		return "", domain.NewPipelineError(domain.KindOverloaded, "service is at capacity, try again later", err)
	}

	outcome := <-outcomeCh
	if ctx.Err() != nil {
		return "", domain.NewPipelineError(domain.KindInternal, "request cancelled", ctx.Err())
	}
	return outcome.outputPath, outcome.err
}

func validateSourceURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return domain.NewPipelineError(domain.KindInvalidRequest, "mp3_url is not a valid URL", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return domain.NewPipelineError(domain.KindInvalidRequest, "mp3_url must use http or https", nil)
	}
	return nil
}

func artifactKey(job *domain.Job) string {
	return fmt.Sprintf("%s_%s.mp3", uuid.NewString(), job.StartedAt.UTC().Format("20060102_150405"))
}
