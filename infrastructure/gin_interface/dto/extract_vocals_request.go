package dto

type ExtractVocalsRequest struct {
	Mp3URL string `json:"mp3_url" binding:"required"`
}

type ExtractVocalsResponse struct {
	VocalsURL             string  `json:"vocals_url"`
	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}
