// Package language detects the language of source text. The result feeds
// the record metadata and the speech-to-text language hint.
package language

import (
	"strings"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"
)

// Detector wraps a lingua detector over the languages the pipeline is
// likely to meet.
type Detector struct {
	detector lingua.LanguageDetector
}

// NewDetector builds a detector. Construction is relatively expensive;
// callers keep one per process.
func NewDetector() *Detector {
	languages := []lingua.Language{
		lingua.English,
		lingua.Spanish,
		lingua.French,
		lingua.German,
		lingua.Portuguese,
		lingua.Italian,
		lingua.Japanese,
		lingua.Korean,
	}
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			Build(),
	}
}

// Detect returns the ISO 639-1 code and confidence for the text's
// language. Undetectable text returns ("", 0).
func (d *Detector) Detect(text string) (string, float64) {
	sample := text
	if len(sample) > 2000 {
		sample = sample[:2000]
		for !utf8.ValidString(sample) {
			sample = sample[:len(sample)-1]
		}
	}
	lang, ok := d.detector.DetectLanguageOf(sample)
	if !ok {
		return "", 0
	}
	confidence := d.detector.ComputeLanguageConfidence(sample, lang)
	return strings.ToLower(lang.IsoCode639_1().String()), confidence
}
