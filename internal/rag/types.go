package rag

import "supportsphere/internal/vectorstore"

// Tone selects the style guidance embedded in the generation prompt.
type Tone string

const (
	// ToneFriendly produces warm, supportive answers with at most two emojis.
	ToneFriendly Tone = "Friendly"
	// ToneFormal produces professional answers with no emojis.
	ToneFormal Tone = "Formal"
)

// ParseTone maps a raw tone string to a Tone, defaulting to Friendly for
// unknown values.
func ParseTone(s string) Tone {
	if s == string(ToneFormal) {
		return ToneFormal
	}
	return ToneFriendly
}

// AskRequest represents one support question. Each request is answered
// independently; there is no conversational memory across requests.
type AskRequest struct {
	Question string `json:"question"`
	Tone     Tone   `json:"tone,omitempty"`
}

// AskResponse carries the generated answer together with the exact documents
// whose text built the answer's context. Returning the same snapshot the
// engine used internally lets an escalation of "the last answer" log the
// evidence that actually informed it.
type AskResponse struct {
	Answer string                 `json:"answer"`
	Docs   []vectorstore.Document `json:"docs"`
}
