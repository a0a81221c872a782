package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ccomgroup/content-analyzer/models"
)

type fakeTranscriber struct {
	text string
	err  error

	calls int
	lang  string
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	f.calls++
	f.lang = language
	return f.text, f.err
}

func metadataJSON() string {
	return `{"items": [{
		"snippet": {"title": "A Talk", "channelTitle": "A Channel", "publishedAt": "2024-01-02T00:00:00Z", "thumbnails": {}},
		"contentDetails": {"duration": "PT5M"},
		"statistics": {"viewCount": "10"}
	}]}`
}

func TestFetch_CaptionsPrimary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/videos":
			fmt.Fprint(w, metadataJSON())
		case "/timedtext":
			fmt.Fprint(w, `<transcript><text start="0" dur="2">hello</text><text start="2" dur="2">world</text></transcript>`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient("api-key", "", []string{"en"})
	c.DataBaseURL = srv.URL
	c.CaptionsBaseURL = srv.URL

	transcriber := &fakeTranscriber{}
	f := &Fetcher{Client: c, Transcriber: transcriber}

	meta, transcript, err := f.Fetch(context.Background(), models.ContentRef{VideoID: "abcdefghijk"}, "en")
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if meta.Title != "A Talk" {
		t.Errorf("title = %q", meta.Title)
	}
	if transcript.Text != "hello world" {
		t.Errorf("text = %q, want joined captions", transcript.Text)
	}
	if !transcript.HasTimestamps() {
		t.Error("captions transcript lost its timestamps")
	}
	if transcriber.calls != 0 {
		t.Errorf("transcriber called %d times, want 0 when captions exist", transcriber.calls)
	}
}

func TestFetch_AudioFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/videos":
			fmt.Fprint(w, metadataJSON())
		case "/timedtext":
			w.WriteHeader(http.StatusOK) // no captions
		case "/audio/abcdefghijk":
			w.Write([]byte("mp3-bytes"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient("api-key", srv.URL, []string{"en"})
	c.DataBaseURL = srv.URL
	c.CaptionsBaseURL = srv.URL

	transcriber := &fakeTranscriber{text: "spoken words"}
	f := &Fetcher{Client: c, Transcriber: transcriber}

	_, transcript, err := f.Fetch(context.Background(), models.ContentRef{VideoID: "abcdefghijk"}, "es")
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if transcript.Text != "spoken words" {
		t.Errorf("text = %q, want transcription output", transcript.Text)
	}
	if transcript.HasTimestamps() {
		t.Error("transcribed audio should have no timestamps")
	}
	if transcriber.calls != 1 {
		t.Errorf("transcriber called %d times, want 1", transcriber.calls)
	}
	if transcriber.lang != "es" {
		t.Errorf("language hint = %q, want es", transcriber.lang)
	}
}

func TestFetch_BothTranscriptPathsFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/videos":
			fmt.Fprint(w, metadataJSON())
		case "/timedtext":
			w.WriteHeader(http.StatusOK)
		case "/audio/abcdefghijk":
			w.Write([]byte("mp3-bytes"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient("api-key", srv.URL, []string{"en"})
	c.DataBaseURL = srv.URL
	c.CaptionsBaseURL = srv.URL

	transcriber := &fakeTranscriber{err: errors.New("no speech service")}
	f := &Fetcher{Client: c, Transcriber: transcriber}

	_, _, err := f.Fetch(context.Background(), models.ContentRef{VideoID: "abcdefghijk"}, "")
	if err == nil {
		t.Fatal("Fetch() succeeded with no transcript source, want error")
	}
	if !errors.Is(err, ErrNoTranscript) {
		t.Errorf("error = %v, want ErrNoTranscript when the source has no captions", err)
	}
}
