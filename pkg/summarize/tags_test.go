package summarize

import (
	"reflect"
	"testing"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{
			name:  "comma separated",
			reply: "go, cli, tooling",
			want:  []string{"go", "cli", "tooling"},
		},
		{
			name:  "hash prefixes stripped",
			reply: "#go, #cli",
			want:  []string{"go", "cli"},
		},
		{
			name:  "empty entries dropped",
			reply: "go,, ,cli",
			want:  []string{"go", "cli"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseTags(tt.reply); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTags(%q) = %v, want %v", tt.reply, got, tt.want)
			}
		})
	}
}

func TestCleanTags(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want []string
	}{
		{
			name: "lowercases and strips punctuation",
			raw:  []string{"Go!", "C.L.I"},
			want: []string{"go", "cli"},
		},
		{
			name: "case-insensitive dedupe keeps first",
			raw:  []string{"Go", "go", "GO", "cli"},
			want: []string{"go", "cli"},
		},
		{
			name: "spaces survive inside tags",
			raw:  []string{"machine learning"},
			want: []string{"machine learning"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanTags(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CleanTags(%v) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCleanTags_Cap(t *testing.T) {
	raw := make([]string, 0, 15)
	for _, s := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		raw = append(raw, s)
	}
	got := CleanTags(raw)
	if len(got) != MaxTags {
		t.Errorf("CleanTags() = %d tags, want capped at %d", len(got), MaxTags)
	}
}
