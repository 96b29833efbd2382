// Package format holds the text helpers shared by the chat commands and the scoreboard.
package format

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxMessageLength is the longest plain message Discord accepts
const MaxMessageLength = 2000

// Duration formats d as "1h 23m 45s", dropping leading zero units.
func Duration(d time.Duration) string {
	total := int(d / time.Second)
	if total < 0 {
		total = 0
	}
	hours, remainder := total/3600, total%3600
	minutes, secs := remainder/60, remainder%60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if hours > 0 || minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", secs))

	return strings.Join(parts, " ")
}

// ChunkString splits s into parts of at most chunkSize characters,
// preferring line breaks and falling back to hard splits for long lines.
func ChunkString(s string, chunkSize int) []string {
	if chunkSize <= 0 || utf8.RuneCountInString(s) <= chunkSize {
		return []string{s}
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, line := range strings.Split(s, "\n") {
		lineLen := utf8.RuneCountInString(line)

		// Line fits in the current chunk
		if currentLen == 0 && lineLen <= chunkSize {
			current.WriteString(line)
			currentLen = lineLen
			continue
		}
		if currentLen > 0 && currentLen+lineLen+1 <= chunkSize {
			current.WriteString("\n")
			current.WriteString(line)
			currentLen += lineLen + 1
			continue
		}

		flush()

		// Split oversized lines by characters
		runes := []rune(line)
		for len(runes) > chunkSize {
			chunks = append(chunks, string(runes[:chunkSize]))
			runes = runes[chunkSize:]
		}
		current.WriteString(string(runes))
		currentLen = len(runes)
	}
	flush()

	return chunks
}

// Truncate shortens s to at most limit characters, ending with "..." when cut.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	if limit <= 3 {
		return string([]rune(s)[:limit])
	}
	return string([]rune(s)[:limit-3]) + "..."
}

// Paginate groups items into pages of perPage entries.
func Paginate[T any](items []T, perPage int) [][]T {
	if perPage <= 0 {
		perPage = 10
	}
	var pages [][]T
	for start := 0; start < len(items); start += perPage {
		end := min(start+perPage, len(items))
		pages = append(pages, items[start:end])
	}
	return pages
}
