package format

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration(t *testing.T) {
	tests := []struct {
		name     string
		seconds  int
		expected string
	}{
		{"seconds only", 45, "45s"},
		{"zero", 0, "0s"},
		{"minutes and seconds", 90, "1m 30s"},
		{"whole minutes", 120, "2m 0s"},
		{"hours minutes seconds", 3661, "1h 1m 1s"},
		{"whole hours", 7200, "2h 0m 0s"},
		{"a full day", 86400, "24h 0m 0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Duration(time.Duration(tt.seconds)*time.Second))
		})
	}
}

func TestChunkString_Short(t *testing.T) {
	assert.Equal(t, []string{"hello"}, ChunkString("hello", 10))
}

func TestChunkString_SplitsOnLines(t *testing.T) {
	s := "aaaa\nbbbb\ncccc"
	chunks := ChunkString(s, 9)
	assert.Equal(t, []string{"aaaa\nbbbb", "cccc"}, chunks)
}

func TestChunkString_LongLine(t *testing.T) {
	s := strings.Repeat("x", 25)
	chunks := ChunkString(s, 10)
	require.Len(t, chunks, 3)
	assert.Equal(t, strings.Repeat("x", 10), chunks[0])
	assert.Equal(t, strings.Repeat("x", 5), chunks[2])
	assert.Equal(t, s, strings.Join(chunks, ""))
}

func TestChunkString_RespectsLimit(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 300; i++ {
		b.WriteString("line of scoreboard text\n")
	}
	for _, chunk := range ChunkString(b.String(), MaxMessageLength) {
		assert.LessOrEqual(t, len([]rune(chunk)), MaxMessageLength)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 2000))

	long := strings.Repeat("a", 2500)
	got := Truncate(long, 2000)
	assert.Len(t, got, 2000)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestPaginate(t *testing.T) {
	items := make([]int, 23)
	pages := Paginate(items, 10)
	require.Len(t, pages, 3)
	assert.Len(t, pages[0], 10)
	assert.Len(t, pages[2], 3)

	assert.Empty(t, Paginate([]string{}, 10))
}
