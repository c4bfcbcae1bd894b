package assist

import (
	"regexp"
	"strings"
)

var numberedLine = regexp.MustCompile(`^\s*(\d+)[.)]\s+(.*)$`)

// ParseDrafts extracts task drafts from free-form assistant text. It
// accepts numbered lists ("1. ..." or "1) ...") and top-level bullet
// lists; indented bullet lines attach to the preceding task as
// subtasks. Anything else is ignored.
func ParseDrafts(text string) []TaskDraft {
	out := make([]TaskDraft, 0)
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}

		if m := numberedLine.FindStringSubmatch(trimmed); m != nil {
			if draft, ok := splitDraft(m[2]); ok {
				out = append(out, draft)
			}
			continue
		}

		body, isBullet := bulletBody(trimmed)
		if !isBullet {
			continue
		}
		if indented(trimmed) && len(out) > 0 {
			if sub := strings.TrimSpace(body); sub != "" {
				out[len(out)-1].Subtasks = append(out[len(out)-1].Subtasks, sub)
			}
			continue
		}
		if draft, ok := splitDraft(body); ok {
			out = append(out, draft)
		}
	}
	return out
}

// splitDraft separates "Name - description" style lines; a line
// without a separator becomes a name-only draft.
func splitDraft(body string) (TaskDraft, bool) {
	body = strings.TrimSpace(body)
	if body == "" {
		return TaskDraft{}, false
	}
	for _, sep := range []string{" - ", ": "} {
		if idx := strings.Index(body, sep); idx > 0 {
			return TaskDraft{
				Name:        strings.TrimSpace(body[:idx]),
				Description: strings.TrimSpace(body[idx+len(sep):]),
			}, true
		}
	}
	return TaskDraft{Name: body}, true
}

func bulletBody(line string) (string, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	for _, marker := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(trimmed, marker) {
			return trimmed[len(marker):], true
		}
	}
	return "", false
}

func indented(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}
