package ingest

import (
	"strings"

	"github.com/manotham-cc/RAG-Orchestrator/internal/config"
)

// Separators ordered from "best" to "worst" for semantic meaning. The empty
// string is the last resort and splits per character.
var separators = []string{"\n\n", "\n", " ", ""}

// SplitText splits text into chunks of at most config.ChunkSize characters
// with config.ChunkOverlap characters carried between consecutive chunks.
// The splitter recursively prefers the largest separator that keeps pieces
// under the limit and never drops text. Empty input yields no chunks.
func SplitText(text string) []string {
	return splitRecursive(text, separators, config.ChunkSize, config.ChunkOverlap)
}

func splitRecursive(text string, seps []string, limit int, overlap int) []string {
	if text == "" {
		return nil
	}

	separator, remaining := pickSeparator(text, seps)
	splits := splitBy(text, separator)

	var chunks []string
	var mergeable []string
	for _, piece := range splits {
		if len(piece) <= limit {
			mergeable = append(mergeable, piece)
			continue
		}
		// flush what we have, then break the oversized piece down with the
		// next separator in line
		if len(mergeable) > 0 {
			chunks = append(chunks, mergeSplits(mergeable, separator, limit, overlap)...)
			mergeable = nil
		}
		if len(remaining) == 0 {
			chunks = append(chunks, piece)
			continue
		}
		chunks = append(chunks, splitRecursive(piece, remaining, limit, overlap)...)
	}
	if len(mergeable) > 0 {
		chunks = append(chunks, mergeSplits(mergeable, separator, limit, overlap)...)
	}
	return chunks
}

// pickSeparator returns the first separator present in text, and the ones
// after it for recursion. The empty separator always matches.
func pickSeparator(text string, seps []string) (string, []string) {
	for i, s := range seps {
		if s == "" {
			return "", nil
		}
		if strings.Contains(text, s) {
			return s, seps[i+1:]
		}
	}
	return "", nil
}

func splitBy(text string, separator string) []string {
	// empty separator splits per rune so a hard cut never lands mid-character
	parts := strings.Split(text, separator)
	if separator == "" {
		return parts
	}
	filtered := parts[:0]
	for _, p := range parts {
		if p != "" {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// mergeSplits greedily packs pieces into chunks up to the limit, then seeds
// the next chunk with the tail of the previous one until the tail is within
// the overlap budget. total tracks the joined length including separators.
func mergeSplits(splits []string, separator string, limit int, overlap int) []string {
	sepLen := len(separator)

	var chunks []string
	var window []string
	total := 0

	for _, piece := range splits {
		pieceLen := len(piece)
		extra := 0
		if len(window) > 0 {
			extra = sepLen
		}

		if total+pieceLen+extra > limit && len(window) > 0 {
			if chunk := joinChunk(window, separator); chunk != "" {
				chunks = append(chunks, chunk)
			}
			for total > overlap || (total+pieceLen+sepLen > limit && total > 0) {
				drop := len(window[0])
				if len(window) > 1 {
					drop += sepLen
				}
				total -= drop
				window = window[1:]
			}
		}

		if len(window) > 0 {
			total += sepLen
		}
		window = append(window, piece)
		total += pieceLen
	}

	if chunk := joinChunk(window, separator); chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}

func joinChunk(parts []string, separator string) string {
	return strings.TrimSpace(strings.Join(parts, separator))
}
