package ingest

import (
	"strings"
	"testing"
)

func TestChunkWordsShortText(t *testing.T) {
	chunks := ChunkWords("a short answer", 80)
	if len(chunks) != 1 {
		t.Fatalf("ChunkWords() returned %d chunks, want 1", len(chunks))
	}
	if chunks[0] != "a short answer" {
		t.Errorf("chunk = %q", chunks[0])
	}
}

func TestChunkWordsBlankText(t *testing.T) {
	if chunks := ChunkWords("", 80); chunks != nil {
		t.Errorf("ChunkWords(\"\") = %v, want nil", chunks)
	}
	if chunks := ChunkWords("   \n\t ", 80); chunks != nil {
		t.Errorf("ChunkWords(blank) = %v, want nil", chunks)
	}
}

func TestChunkWordsSplitsLongText(t *testing.T) {
	words := make([]string, 200)
	for i := range words {
		words[i] = "word"
	}
	text := strings.Join(words, " ")

	chunks := ChunkWords(text, 80)
	if len(chunks) != 3 {
		t.Fatalf("ChunkWords() returned %d chunks, want 3 (80+80+40)", len(chunks))
	}

	total := 0
	for i, chunk := range chunks {
		n := len(strings.Fields(chunk))
		if n > 80 {
			t.Errorf("chunk %d has %d words, exceeds budget", i, n)
		}
		total += n
	}
	if total != 200 {
		t.Errorf("chunks contain %d words total, want 200 (no words lost)", total)
	}
}

func TestChunkWordsNormalizesWhitespace(t *testing.T) {
	chunks := ChunkWords("one\t\ttwo\n\nthree", 80)
	if len(chunks) != 1 || chunks[0] != "one two three" {
		t.Errorf("ChunkWords() = %v, want [\"one two three\"]", chunks)
	}
}
