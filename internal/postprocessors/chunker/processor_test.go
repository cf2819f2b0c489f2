package chunker

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincomply/payguard/internal/core/domain"
)

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(parts, " ")
}

func TestNew_Defaults(t *testing.T) {
	p := New()
	assert.Equal(t, DefaultChunkSize, p.chunkSize)
	assert.Equal(t, DefaultChunkOverlap, p.overlap)
}

func TestNew_OverlapExceedsChunkSize(t *testing.T) {
	p := New(WithChunkSize(100), WithOverlap(150))
	assert.Less(t, p.overlap, p.chunkSize)
}

func TestChunk_Empty(t *testing.T) {
	p := New()
	assert.Empty(t, p.Chunk(""))
	assert.Empty(t, p.Chunk("   "))
}

func TestChunk_SingleWindow(t *testing.T) {
	p := New(WithChunkSize(10), WithOverlap(2))

	chunks := p.Chunk("only five words right here")

	require.Len(t, chunks, 1)
	assert.Equal(t, "only five words right here", chunks[0].Text)
	assert.Equal(t, 0, chunks[0].StartIndex)
	assert.Equal(t, 5, chunks[0].EndIndex)
}

func TestChunk_WindowOffsetsAndOverlap(t *testing.T) {
	p := New(WithChunkSize(10), WithOverlap(4))

	chunks := p.Chunk(words(25))

	require.Len(t, chunks, 4)
	assert.Equal(t, 0, chunks[0].StartIndex)
	assert.Equal(t, 10, chunks[0].EndIndex)
	assert.Equal(t, 6, chunks[1].StartIndex)
	assert.Equal(t, 16, chunks[1].EndIndex)
	assert.Equal(t, 12, chunks[2].StartIndex)
	assert.Equal(t, 22, chunks[2].EndIndex)
	// Final chunk is shorter than the chunk size
	assert.Equal(t, 18, chunks[3].StartIndex)
	assert.Equal(t, 25, chunks[3].EndIndex)
}

func TestChunk_CoversEveryWord(t *testing.T) {
	for _, tc := range []struct{ n, size, overlap int }{
		{1, 10, 3},
		{9, 10, 3},
		{10, 10, 3},
		{11, 10, 3},
		{100, 10, 0},
		{137, 25, 24},
	} {
		t.Run(fmt.Sprintf("n=%d_s=%d_v=%d", tc.n, tc.size, tc.overlap), func(t *testing.T) {
			p := New(WithChunkSize(tc.size), WithOverlap(tc.overlap))
			chunks := p.Chunk(words(tc.n))

			covered := make([]bool, tc.n)
			for _, c := range chunks {
				for i := c.StartIndex; i < c.EndIndex; i++ {
					covered[i] = true
				}
			}
			for i, ok := range covered {
				assert.True(t, ok, "word %d not covered", i)
			}
		})
	}
}

func TestChunk_IdempotentIDs(t *testing.T) {
	p := New(WithChunkSize(10), WithOverlap(4))
	text := words(25)

	first := p.Chunk(text)
	second := p.Chunk(text)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestChunk_DistinctTextDistinctIDs(t *testing.T) {
	p := New(WithChunkSize(10), WithOverlap(0))

	chunks := p.Chunk(words(20))

	require.Len(t, chunks, 2)
	assert.NotEqual(t, chunks[0].ID, chunks[1].ID)
}

func TestProcess_UsesDocumentContent(t *testing.T) {
	p := New(WithChunkSize(3), WithOverlap(1))
	doc := &domain.Document{Content: "one two three four five"}

	chunks, err := p.Process(context.Background(), doc, nil)

	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "one two three", chunks[0].Text)
	assert.Equal(t, "three four five", chunks[1].Text)
}
