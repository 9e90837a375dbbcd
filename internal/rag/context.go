package rag

import (
	"strings"

	"supportsphere/internal/vectorstore"
)

const contextSeparator = "\n\n"

// BuildContext merges retrieved snippets into a single bounded text block.
// It greedily concatenates each document's answer text in input order,
// skipping blank snippets, and stops before the first snippet whose inclusion
// (separator included) would push the total past maxChars. The cap is a hard
// bound protecting the generator's input window: the result is never longer
// than maxChars, and no snippet is ever cut mid-text.
//
// If even the first non-blank snippet exceeds maxChars the result is empty
// and generation proceeds with no retrieved knowledge.
func BuildContext(docs []vectorstore.Document, maxChars int) string {
	var pieces []string
	total := 0
	for _, d := range docs {
		text := strings.TrimSpace(d.Answer)
		if text == "" {
			continue
		}
		cost := len(text)
		if len(pieces) > 0 {
			cost += len(contextSeparator)
		}
		if total+cost > maxChars {
			break
		}
		pieces = append(pieces, text)
		total += cost
	}
	return strings.Join(pieces, contextSeparator)
}
