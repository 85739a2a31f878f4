// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// TextBlock is a run of text on the page together with its bounding box.
// The text content is used only to classify the block as dense body text
// or sparse label text; it never changes the geometry.
type TextBlock struct {
	Rect Rect   `json:"rect" yaml:"rect"`
	Text string `json:"text" yaml:"text"`
}

// Page holds the raw primitives extracted from one PDF page: vector-drawing
// bounding boxes, embedded-image placements, and text blocks. All
// coordinates are in PDF user space (origin bottom-left, y up).
type Page struct {
	// Number is the zero-based page index within the document.
	Number int `json:"number" yaml:"number"`

	// Width and Height are the page media box dimensions in points.
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`

	// Drawings are bounding boxes of vector paths drawn on the page.
	Drawings []Rect `json:"drawings" yaml:"drawings"`

	// Images are bounding boxes of embedded image placements.
	Images []Rect `json:"images" yaml:"images"`

	// Texts are the page's text blocks in reading order.
	Texts []TextBlock `json:"texts" yaml:"texts"`
}
