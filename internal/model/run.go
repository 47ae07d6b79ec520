package model

import "time"

// ItemStatus is the terminal state of a processed source item.
type ItemStatus string

const (
	ItemStatusSucceeded ItemStatus = "succeeded"
	ItemStatusFailed    ItemStatus = "failed"
)

// Stage names the pipeline step an item was in.
type Stage string

const (
	StageFetch       Stage = "fetch"
	StageExtractText Stage = "extract_text"
	StageWrite       Stage = "write"
	StageDone        Stage = "done"
)

// ItemResult records the outcome of one source item.
type ItemResult struct {
	Seq          int        `json:"seq"`
	URL          string     `json:"url"`
	Status       ItemStatus `json:"status"`
	Stage        Stage      `json:"stage"`
	ErrorKind    ErrorKind  `json:"error_kind,omitempty"`
	Error        string     `json:"error,omitempty"`
	DocumentPath string     `json:"document_path,omitempty"`
	OutputPath   string     `json:"output_path,omitempty"`
	FieldsFound  int        `json:"fields_found"`
	DurationMs   int64      `json:"duration_ms"`
}

// RunSummary collects the results of one pipeline run.
type RunSummary struct {
	RunID      string       `json:"run_id"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Total      int          `json:"total"`
	Succeeded  int          `json:"succeeded"`
	Failed     int          `json:"failed"`
	Items      []ItemResult `json:"items"`
}

// Add appends an item result and updates the counters.
func (s *RunSummary) Add(r ItemResult) {
	s.Items = append(s.Items, r)
	s.Total++
	switch r.Status {
	case ItemStatusSucceeded:
		s.Succeeded++
	case ItemStatusFailed:
		s.Failed++
	}
}
