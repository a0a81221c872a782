package summarize

import (
	"strings"
)

// MaxTags caps the merged tag list.
const MaxTags = 10

// ParseTags splits a comma-separated model reply into raw tag candidates.
func ParseTags(reply string) []string {
	parts := strings.Split(reply, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tag := strings.TrimSpace(strings.ReplaceAll(p, "#", ""))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// CleanTags normalizes tags: alphanumerics and spaces only, lowercased,
// deduplicated case-insensitively, capped at MaxTags. First occurrence
// wins; order is otherwise preserved.
func CleanTags(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	cleaned := make([]string, 0, len(raw))
	for _, tag := range raw {
		var sb strings.Builder
		for _, r := range tag {
			if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') || r == ' ' {
				sb.WriteRune(r)
			}
		}
		clean := strings.ToLower(strings.TrimSpace(sb.String()))
		if clean == "" {
			continue
		}
		if _, dup := seen[clean]; dup {
			continue
		}
		seen[clean] = struct{}{}
		cleaned = append(cleaned, clean)
		if len(cleaned) == MaxTags {
			break
		}
	}
	return cleaned
}
