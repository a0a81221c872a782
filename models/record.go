package models

import (
	"time"

	"github.com/google/uuid"
)

// Metadata is the normalized source description, produced once per fetch.
type Metadata struct {
	Title       string `json:"title" yaml:"title"`
	Author      string `json:"author" yaml:"author"` // uploader or repo owner
	Views       int64  `json:"views,omitempty" yaml:"views,omitempty"`
	Duration    int    `json:"duration,omitempty" yaml:"duration,omitempty"` // seconds, videos only
	PublishDate string `json:"publish_date,omitempty" yaml:"publish_date,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`

	// Detected from the source text (ISO 639-1).
	Language           string  `json:"language,omitempty" yaml:"language,omitempty"`
	LanguageConfidence float64 `json:"language_confidence,omitempty" yaml:"language_confidence,omitempty"`
}

// Chapter is one derived chapter entry, ordered by timestamp ascending.
type Chapter struct {
	Timestamp string `json:"timestamp" yaml:"timestamp"` // HH:MM:SS or MM:SS
	Title     string `json:"title" yaml:"title"`
	Summary   string `json:"summary" yaml:"summary"`
}

// Artifacts are the model-derived outputs. Never mutated after creation.
type Artifacts struct {
	Summary  string    `json:"summary" yaml:"summary"`
	Tags     []string  `json:"tags" yaml:"tags"`
	Chapters []Chapter `json:"chapters,omitempty" yaml:"chapters,omitempty"`

	// Degraded lists the sub-calls that fell back to a placeholder.
	Degraded []string `json:"degraded,omitempty" yaml:"degraded,omitempty"`
}

// Record is the full merged result for one URL: what the cache stores and
// the publisher consumes.
type Record struct {
	ID        string     `json:"id" yaml:"id"`
	Ref       ContentRef `json:"ref" yaml:"ref"`
	Meta      Metadata   `json:"meta" yaml:"meta"`
	Source    Transcript `json:"source" yaml:"source"`
	Artifacts Artifacts  `json:"artifacts" yaml:"artifacts"`

	// Repository extras, present only with deep analysis.
	FileTree []string `json:"file_tree,omitempty" yaml:"file_tree,omitempty"`

	ProcessedAt time.Time `json:"processed_at" yaml:"processed_at"`
}

// NewRecord stamps a fresh record for a classified reference.
func NewRecord(ref ContentRef) *Record {
	return &Record{
		ID:          uuid.NewString(),
		Ref:         ref,
		ProcessedAt: time.Now().UTC(),
	}
}
