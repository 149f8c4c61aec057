package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitBlankText(t *testing.T) {
	s := NewTextSplitter(100, 20)
	assert.Empty(t, s.Split(""))
	assert.Empty(t, s.Split(" \n\n\t"))
}

func TestSplitShortTextIsOneChunk(t *testing.T) {
	s := NewTextSplitter(100, 20)
	assert.Equal(t, []string{"Current ratio = current assets / current liabilities."}, s.Split("  Current ratio = current assets / current liabilities.\n"))
}

func TestSplitPrefersParagraphs(t *testing.T) {
	s := NewTextSplitter(30, 0)
	text := "First paragraph here.\n\nSecond paragraph here.\n\nThird one."

	chunks := s.Split(text)
	assert.Equal(t, []string{"First paragraph here.", "Second paragraph here.", "Third one."}, chunks)
}

func TestSplitRespectsChunkSize(t *testing.T) {
	s := NewTextSplitter(50, 10)
	text := strings.Repeat("The quick ratio excludes inventory from current assets. ", 20)

	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 50)
		assert.NotEmpty(t, c)
	}
}

func TestSplitOverlapsConsecutiveChunks(t *testing.T) {
	s := NewTextSplitter(20, 8)
	chunks := s.Split("alpha beta gamma delta epsilon zeta eta theta")

	require.Greater(t, len(chunks), 1)
	for i := 1; i < len(chunks); i++ {
		prevWords := strings.Fields(chunks[i-1])
		first := strings.Fields(chunks[i])[0]
		assert.Contains(t, prevWords, first, "chunk %d should start inside chunk %d", i, i-1)
	}
}

func TestSplitLongWordFallsBackToCharacters(t *testing.T) {
	s := NewTextSplitter(10, 0)
	chunks := s.Split(strings.Repeat("x", 25))

	assert.Equal(t, []string{"xxxxxxxxxx", "xxxxxxxxxx", "xxxxx"}, chunks)
}

func TestNewTextSplitterDropsOversizedOverlap(t *testing.T) {
	s := NewTextSplitter(10, 10)
	assert.Equal(t, 0, s.ChunkOverlap)
}
