package ingest

import "strings"

// DefaultChunkWords is the word budget per chunk. Long FAQ answers are split
// so each stored snippet stays comfortably inside the embedding model's
// input window.
const DefaultChunkWords = 80

// ChunkWords splits text into chunks of at most chunkWords whitespace-
// separated words. Text at or under the budget is returned as a single chunk;
// blank text yields no chunks.
func ChunkWords(text string, chunkWords int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if len(words) <= chunkWords {
		return []string{strings.Join(words, " ")}
	}

	chunks := make([]string, 0, (len(words)+chunkWords-1)/chunkWords)
	for i := 0; i < len(words); i += chunkWords {
		end := i + chunkWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}
