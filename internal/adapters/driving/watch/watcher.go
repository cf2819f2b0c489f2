// Package watch keeps the vector index in sync with a policy
// directory: files dropped into it are ingested, removed files have
// their chunks deleted.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/fincomply/payguard/internal/core/domain"
	"github.com/fincomply/payguard/internal/core/ports/driving"
	"github.com/fincomply/payguard/internal/logger"
)

// Watcher mirrors a directory of policy documents into the index.
type Watcher struct {
	svc        driving.ComplianceService
	extensions map[string]struct{}
	docType    string
}

// New creates a watcher. extensions lists the file extensions to
// react to (including the leading dot); docType tags every ingested
// document.
func New(svc driving.ComplianceService, extensions []string, docType string) *Watcher {
	exts := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(ext)] = struct{}{}
	}
	return &Watcher{svc: svc, extensions: exts, docType: docType}
}

// Run watches dir until the context is cancelled. Existing files are
// not ingested on startup; only changes are mirrored.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Info("Watching %s", dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error: %v", err)
		}
	}
}

// handleEvent mirrors one filesystem event into the index. Errors are
// logged, never fatal to the watch loop.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	ext := strings.ToLower(filepath.Ext(event.Name))
	if _, ok := w.extensions[ext]; !ok {
		return
	}

	documentID := documentIDForPath(event.Name)

	switch {
	case event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Write):
		content, err := os.ReadFile(event.Name)
		if err != nil {
			logger.Error("Read %s: %v", event.Name, err)
			return
		}
		raw := &domain.RawDocument{
			DocumentID:   documentID,
			Path:         event.Name,
			Content:      content,
			DocumentType: w.docType,
		}
		// Re-ingest replaces: drop the old chunks first so a
		// rewritten file is not indexed twice.
		if _, err := w.svc.DeleteDocument(ctx, documentID); err != nil {
			logger.Error("Replace %s: %v", documentID, err)
			return
		}
		report, err := w.svc.Ingest(ctx, raw)
		if err != nil {
			logger.Error("Ingest %s: %v", event.Name, err)
			return
		}
		logger.Info("Ingested %s (%d chunks)", report.DocumentID, report.ChunksIndexed)

	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		removed, err := w.svc.DeleteDocument(ctx, documentID)
		if err != nil {
			logger.Error("Delete %s: %v", documentID, err)
			return
		}
		if removed > 0 {
			logger.Info("Deleted %d chunks for %s", removed, documentID)
		}
	}
}

// documentIDForPath derives the document id from a file path: the base
// name without its extension.
func documentIDForPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
