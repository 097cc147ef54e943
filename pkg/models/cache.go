package models

import "time"

// CacheStats reports the state of the response cache.
type CacheStats struct {
	Total         int   `json:"total"`
	Valid         int   `json:"valid"`
	Expired       int   `json:"expired"`
	TotalAccesses int64 `json:"total_accesses"`
	Hits          int64 `json:"hits"`
	Misses        int64 `json:"misses"`
}

// DiskEntry is the on-disk form of a cached response, one JSON file per key.
type DiskEntry struct {
	Key       string            `json:"key"`
	Response  *GenerateResponse `json:"response"`
	CreatedAt time.Time         `json:"created_at"`
	ExpiresAt time.Time         `json:"expires_at"`
}
