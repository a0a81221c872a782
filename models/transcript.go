package models

import (
	"fmt"
	"strings"
)

// Segment is one timestamped caption entry.
type Segment struct {
	Time string `json:"time" yaml:"time"` // HH:MM:SS
	Text string `json:"text" yaml:"text"`
}

// Transcript holds the source text for a record: timestamped segments for
// videos, or a flat document body for repositories. Immutable after fetch.
type Transcript struct {
	Text     string    `json:"text" yaml:"text"`
	Segments []Segment `json:"segments,omitempty" yaml:"segments,omitempty"`
}

// HasTimestamps reports whether timestamped segments are available.
func (t *Transcript) HasTimestamps() bool {
	return len(t.Segments) > 0
}

// FormatTimestamp converts seconds to HH:MM:SS.
func FormatTimestamp(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds%60)
}

// JoinSegments builds the flat transcript text from segments.
func JoinSegments(segments []Segment) string {
	var sb strings.Builder
	for _, s := range segments {
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}
