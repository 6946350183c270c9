package markdown

import "strings"

const (
	RosterStart = "<!-- chronicle:roster:start -->"
	RosterEnd   = "<!-- chronicle:roster:end -->"
)

// ReplaceManagedBlock swaps the text between the markers for generated,
// appending a fresh block when the markers are missing. Text outside the
// markers is preserved.
func ReplaceManagedBlock(body, startMarker, endMarker, generated string) string {
	block := startMarker + "\n" + generated + "\n" + endMarker
	start := strings.Index(body, startMarker)
	end := strings.Index(body, endMarker)
	if start >= 0 && end > start {
		return body[:start] + block + body[end+len(endMarker):]
	}

	switch {
	case strings.TrimSpace(body) == "":
		return block + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + block + "\n"
	default:
		return body + "\n\n" + block + "\n"
	}
}
