package models

import "time"

// QueryRecord tracks a single completed query.
type QueryRecord struct {
	ID              int64     `json:"id"`
	PromptHash      string    `json:"prompt_hash"`
	Model           string    `json:"model"`
	Cached          bool      `json:"cached"`
	Outcome         string    `json:"outcome"`
	LatencyMs       int64     `json:"latency_ms"`
	PromptEvalCount int       `json:"prompt_eval_count"`
	EvalCount       int       `json:"eval_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// QuerySummary aggregates query history per model.
type QuerySummary struct {
	Model         string `json:"model"`
	QueryCount    int    `json:"query_count"`
	CacheHits     int    `json:"cache_hits"`
	MeanLatencyMs int64  `json:"mean_latency_ms"`
	TotalEval     int64  `json:"total_eval"`
}
