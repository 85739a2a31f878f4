// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source extracts raw layout primitives from PDF pages: vector
// drawing bounds, image placements, and text blocks with their content.
// Implements: prd001-segmentation (R5, input boundary);
//
//	docs/ARCHITECTURE § Page Source.
package source

import "github.com/meshintel/pagemark/pkg/types"

// Source yields the layout primitives of each page of one document.
// Implementations must be safe to call page by page; Pages are
// independent snapshots, never shared state.
type Source interface {
	// NumPages returns the page count of the document.
	NumPages() int

	// Page extracts the primitives of the zero-based page n.
	Page(n int) (types.Page, error)

	// Close releases the underlying document.
	Close() error
}
