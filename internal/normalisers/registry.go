package normalisers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fincomply/payguard/internal/core/domain"
	"github.com/fincomply/payguard/internal/core/ports/driven"
	"github.com/fincomply/payguard/internal/normalisers/docx"
	"github.com/fincomply/payguard/internal/normalisers/pdf"
	"github.com/fincomply/payguard/internal/normalisers/plaintext"
)

// Registry maps file extensions to normalisers.
type Registry struct {
	byExtension map[string]driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byExtension: make(map[string]driven.Normaliser)}
}

// Default returns a registry with all built-in normalisers registered.
func Default() *Registry {
	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(pdf.New())
	r.Register(docx.New())
	return r
}

// Register adds a normaliser for every extension it supports.
func (r *Registry) Register(n driven.Normaliser) {
	for _, ext := range n.SupportedExtensions() {
		r.byExtension[strings.ToLower(ext)] = n
	}
}

// ForPath selects the normaliser for a file path by its extension.
// An extension no normaliser handles fails with
// domain.ErrUnsupportedFormat naming the rejected extension.
func (r *Registry) ForPath(path string) (driven.Normaliser, error) {
	ext := strings.ToLower(filepath.Ext(path))
	n, ok := r.byExtension[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, ext)
	}
	return n, nil
}

// Extensions returns all registered extensions.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		exts = append(exts, ext)
	}
	return exts
}
