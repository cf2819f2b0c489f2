package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincomply/payguard/internal/core/domain"
)

func TestSupportedExtensions(t *testing.T) {
	n := New()
	assert.ElementsMatch(t, []string{".txt", ".text"}, n.SupportedExtensions())
}

func TestNormalise(t *testing.T) {
	n := New()
	raw := &domain.RawDocument{
		DocumentID: "doc-1",
		Path:       "policy.txt",
		Content:    []byte("  Per transaction limit is 500 BHD.\n"),
	}

	text, err := n.Normalise(context.Background(), raw)

	require.NoError(t, err)
	assert.Equal(t, "Per transaction limit is 500 BHD.", text)
}

func TestNormalise_NilInput(t *testing.T) {
	n := New()

	_, err := n.Normalise(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalise_EmptyContent(t *testing.T) {
	n := New()

	text, err := n.Normalise(context.Background(), &domain.RawDocument{Content: nil})

	require.NoError(t, err)
	assert.Empty(t, text)
}
