// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transcribe turns rendered page images into markdown by calling
// a vision language model, one request per page, across a bounded worker
// pool. Implements: prd003-transcription (R1-R4);
//
//	docs/ARCHITECTURE § Transcription.
package transcribe

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/meshintel/pagemark/internal/cache"
	"github.com/meshintel/pagemark/internal/render"
	"github.com/meshintel/pagemark/pkg/types"
)

// outputFile is the assembled markdown document name.
const outputFile = "output.md"

// PageRequest carries one page's annotated image and the names of its
// labeled region images.
type PageRequest struct {
	Page        int
	Image       []byte
	RegionNames []string
}

// Backend abstracts the vision model API so tests can supply a mock.
type Backend interface {
	Transcribe(ctx context.Context, page PageRequest) (string, error)
}

// backoffBase controls the base duration for exponential backoff on
// failed model calls. Tests override this to avoid real sleeps.
var backoffBase = time.Second

// TranscribeDocument transcribes every rendered page and assembles the
// results into one markdown document, written to cfg.OutputDir/output.md
// and returned. Pages are processed by cfg.Workers goroutines but always
// assembled in page order. When store is non-nil, pages whose annotated
// image is unchanged since a previous run are served from the cache.
// Progress lines go to w.
func TranscribeDocument(ctx context.Context, backend Backend, pages []render.PageRender, cfg types.TranscriptionConfig, store *cache.Store, w io.Writer) (string, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	results := make([]string, len(pages))
	errs := make([]error, len(pages))

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	var mu sync.Mutex // serializes progress output

	for i, page := range pages {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, page render.PageRender) {
			defer wg.Done()
			defer func() { <-sem }()

			content, cached, err := transcribePage(ctx, backend, page, cfg.Model, maxRetries, store)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = content

			mu.Lock()
			if cached {
				fmt.Fprintf(w, "cached page %d\n", page.Number)
			} else {
				fmt.Fprintf(w, "transcribed page %d (%d regions)\n", page.Number, len(page.RegionNames))
			}
			if cfg.Verbose {
				fmt.Fprintln(w, content)
			}
			mu.Unlock()
		}(i, page)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return "", fmt.Errorf("page %d: %w", pages[i].Number, err)
		}
	}

	doc := strings.Join(results, "\n\n")

	outPath := filepath.Join(cfg.OutputDir, outputFile)
	if err := os.WriteFile(outPath, []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", outPath, err)
	}

	return doc, nil
}

// transcribePage resolves one page through the cache or the model.
func transcribePage(ctx context.Context, backend Backend, page render.PageRender, model string, maxRetries int, store *cache.Store) (content string, cached bool, err error) {
	img, err := os.ReadFile(page.ImagePath)
	if err != nil {
		return "", false, fmt.Errorf("reading page image: %w", err)
	}

	hash := fmt.Sprintf("%x", sha256.Sum256(img))
	if store != nil {
		if hit, found, err := store.Get(hash, model); err != nil {
			return "", false, err
		} else if found {
			return hit, true, nil
		}
	}

	req := PageRequest{Page: page.Number, Image: img, RegionNames: page.RegionNames}
	raw, err := callWithRetry(ctx, backend, req, maxRetries)
	if err != nil {
		return "", false, err
	}

	content = cleanMarkdownFences(raw)

	if store != nil {
		if err := store.Put(hash, model, page.Number, content); err != nil {
			return "", false, err
		}
	}
	return content, false, nil
}

// callWithRetry calls the backend with exponential backoff.
func callWithRetry(ctx context.Context, backend Backend, req PageRequest, maxRetries int) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		content, err := backend.Transcribe(ctx, req)
		if err == nil {
			return content, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}

// cleanMarkdownFences strips a ```markdown fence the model wrapped around
// the output despite being told not to, leaving inner fences intact.
func cleanMarkdownFences(content string) string {
	if !strings.Contains(content, "```markdown") {
		return content
	}
	content = strings.ReplaceAll(content, "```markdown\n", "")
	if idx := strings.LastIndex(content, "```"); idx >= 0 {
		content = content[:idx] + content[idx+3:]
	}
	return content
}
