package models

import "time"

// Prediction is the fully formed response payload for one ticker within one
// cache generation. Dates are rendered as YYYY-MM-DD at assembly time so a
// cache hit serves the exact bytes a fresh computation would.
type Prediction struct {
	Ticker               string  `json:"ticker"`
	LatestDate           string  `json:"latest_date"`
	LatestPrice          float64 `json:"latest_price"`
	PredictedDate        string  `json:"predicted_date"`
	PredictedPrice       float64 `json:"predicted_price"`
	NormalizedPrediction float64 `json:"normalized_prediction"`
	PercentChange        float64 `json:"percent_change"`
	Status               string  `json:"status"`
}

// ErrorResponse is the uniform error envelope for the HTTP surface.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

// Forecast is the raw model output for one ticker: the value in the model's
// internal scale and the same value converted back to price units.
type Forecast struct {
	Normalized   float64
	Denormalized float64
}

// PredictionEvent is published to Kafka after each fresh computation.
type PredictionEvent struct {
	Ticker         string    `json:"ticker"`
	LatestDate     string    `json:"latest_date"`
	LatestPrice    float64   `json:"latest_price"`
	PredictedDate  string    `json:"predicted_date"`
	PredictedPrice float64   `json:"predicted_price"`
	PercentChange  float64   `json:"percent_change"`
	GeneratedAt    time.Time `json:"generated_at"`
}
