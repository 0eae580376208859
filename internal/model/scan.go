package model

import (
	"github.com/google/uuid"
)

// ScanSummary is the result of one scan run. It is returned to the caller
// and never persisted.
type ScanSummary struct {
	RunID        string   `json:"run_id"`
	Added        int      `json:"added"`
	Skipped      int      `json:"skipped"`
	Irrelevant   int      `json:"irrelevant"`
	Unsubscribed int      `json:"unsubscribed"`
	Log          []string `json:"log"`
}

func NewScanSummary() *ScanSummary {
	return &ScanSummary{
		RunID: uuid.New().String(),
		Log:   []string{},
	}
}

func (s *ScanSummary) AddLog(msg string) {
	s.Log = append(s.Log, msg)
}
