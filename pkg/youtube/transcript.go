package youtube

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ccomgroup/content-analyzer/models"
)

// timedText mirrors the captions endpoint's XML payload.
type timedText struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Body  string `xml:",chardata"`
	} `xml:"text"`
}

// Transcript fetches timestamped captions, trying each configured language
// in order. Any captions failure, including an empty track, returns
// ErrNoTranscript so callers can take the audio fallback.
func (c *Client) Transcript(ctx context.Context, videoID string) ([]models.Segment, error) {
	var lastErr error
	for _, lang := range c.Languages {
		segments, err := c.fetchCaptions(ctx, videoID, lang)
		if err != nil {
			lastErr = err
			continue
		}
		if len(segments) > 0 {
			return segments, nil
		}
	}
	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoTranscript, lastErr)
	}
	return nil, ErrNoTranscript
}

func (c *Client) fetchCaptions(ctx context.Context, videoID, lang string) ([]models.Segment, error) {
	endpoint := fmt.Sprintf("%s/timedtext?lang=%s&v=%s",
		c.CaptionsBaseURL, url.QueryEscape(lang), url.QueryEscape(videoID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch captions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("captions endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read captions response: %w", err)
	}
	// The endpoint answers 200 with an empty body when the track does not
	// exist for the requested language.
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, nil
	}

	var parsed timedText
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse captions XML: %w", err)
	}

	segments := make([]models.Segment, 0, len(parsed.Texts))
	for _, t := range parsed.Texts {
		text := strings.TrimSpace(t.Body)
		if text == "" {
			continue
		}
		start, _ := strconv.ParseFloat(t.Start, 64)
		segments = append(segments, models.Segment{
			Time: models.FormatTimestamp(int(start)),
			Text: text,
		})
	}
	return segments, nil
}
