package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"

	"github.com/ameeralns/Spleeter/application/services"
	"github.com/ameeralns/Spleeter/config"
	"github.com/ameeralns/Spleeter/infrastructure/adapters"
	"github.com/ameeralns/Spleeter/infrastructure/gin_interface/controllers"
	"github.com/ameeralns/Spleeter/middleware"
)

func main() {
	authConfig, err := config.GetAuthConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get auth config")
	}

	s3Config, err := config.GetS3Config()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get s3 config")
	}

	fetcherConfig, err := config.GetFetcherConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get fetcher config")
	}

	extractorConfig, err := config.GetExtractorConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get extractor config")
	}

	serverConfig, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get server config")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(serverConfig.WorkerPoolSize, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
		Config:            aws.Config{Region: aws.String(s3Config.Region)},
	}))
	s3Client := s3.New(sess)

	modelCache := adapters.NewDemucsModelCache(extractorConfig, zeroLogger)
	audioFetcher := adapters.NewHTTPAudioFetcher(fetcherConfig, zeroLogger)
	separator := adapters.NewDemucsSeparator(extractorConfig, zeroLogger)
	artifactStore := adapters.NewS3ArtifactStore(s3Client, s3Config, zeroLogger)

	limiter := services.NewExtractionLimiter(extractorConfig.MaxConcurrent, extractorConfig.SlotWait)

	orchestrator := services.NewVocalExtractionOrchestrator(zeroLogger, workerPool, limiter,
		modelCache, audioFetcher, separator, artifactStore, extractorConfig.WorkDir)

	// Warm the model off the startup path. If the load fails the cache keeps
	// the error, /health keeps reporting model_loaded=false and every request
	// gets a 500 until the process is restarted.
	err = workerPool.Submit(func() {
		if _, err := modelCache.Acquire(context.Background()); err != nil {
			zeroLogger.Error(err, "Separation model failed to load")
		}
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule model warmup")
	}

	vocalController := controllers.NewVocalExtractionController(zeroLogger, orchestrator)
	healthController := controllers.NewHealthController(modelCache)

	router := gin.Default()

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	authHandler, err := middleware.NewAuthHandler(authConfig.APIToken)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth handler!")
	}
	router.Use(authHandler.AuthMiddleware())

	healthController.RegisterRoutes(router)
	vocalController.RegisterRoutes(router)

	zeroLogger.InfoWithFields("Vocal extractor API starting", map[string]interface{}{
		"port":   serverConfig.Port,
		"bucket": s3Config.BucketName,
		"model":  extractorConfig.ModelName,
		"slots":  extractorConfig.MaxConcurrent,
	})

	if err := router.Run(fmt.Sprintf(":%d", serverConfig.Port)); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
