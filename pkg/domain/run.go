package domain

import "time"

// RunRecord is a completed run kept for later inspection.
type RunRecord struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Commands  []Command `json:"commands"`
	Result    Result    `json:"result"`
}
