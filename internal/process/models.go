package process

import (
	"github.com/ccomgroup/content-analyzer/models"
)

type Job struct {
	URL string
}

// Result holds the outcome of one processed URL.
type Result struct {
	URL        string
	Record     *models.Record
	CacheHit   bool
	Error      error
	ErrorType  string
	WordCounts map[string]int
}

// ResultOutput is the structured output for a single URL.
type ResultOutput struct {
	URL       string   `json:"url" yaml:"url"`
	Kind      string   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Title     string   `json:"title,omitempty" yaml:"title,omitempty"`
	Status    string   `json:"status" yaml:"status"`
	CacheHit  bool     `json:"cache_hit" yaml:"cache_hit"`
	CacheFile string   `json:"cache_file,omitempty" yaml:"cache_file,omitempty"`
	Summary   string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Tags      []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Chapters  int      `json:"chapters,omitempty" yaml:"chapters,omitempty"`
	Language  string   `json:"language,omitempty" yaml:"language,omitempty"`
	Degraded  []string `json:"degraded,omitempty" yaml:"degraded,omitempty"`
	Error     string   `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorType string   `json:"error_type,omitempty" yaml:"error_type,omitempty"`
}

// FinalOutput is the structured output for the entire run.
type FinalOutput struct {
	Status  string         `json:"status" yaml:"status"`
	Results []ResultOutput `json:"results" yaml:"results"`
	Stats   Stats          `json:"stats" yaml:"stats"`
}

// Stats provides summary statistics for the run.
type Stats struct {
	TotalURLs        int      `json:"total_urls" yaml:"total_urls"`
	Successful       int      `json:"successful" yaml:"successful"`
	Failed           int      `json:"failed" yaml:"failed"`
	CacheHits        int      `json:"cache_hits" yaml:"cache_hits"`
	TotalTimeSeconds float64  `json:"total_time_seconds" yaml:"total_time_seconds"`
	TopKeywords      []string `json:"top_keywords,omitempty" yaml:"top_keywords,omitempty"`
}
