package clone

import "strings"

// doctype is the declaration every cloned document must start with.
const doctype = "<!DOCTYPE html>"

// Sanitize normalizes raw model output into a standalone HTML document.
// Fenced code block wrappers (with or without a language tag) are stripped,
// and the document-type declaration is prepended when missing. This is a
// textual repair pass only; it never fails and performs no structural
// validation of the result.
func Sanitize(raw string) string {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Drop a language tag on the opening fence line.
		if idx := strings.Index(text, "\n"); idx >= 0 && !strings.ContainsAny(text[:idx], " <") {
			text = text[idx+1:]
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	if !strings.HasPrefix(text, doctype) {
		text = doctype + "\n" + text
	}

	return text
}
