// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/meshintel/pagemark/pkg/types"
)

const (
	// lineTolerance groups text runs onto one line when their baselines
	// are within this many points.
	lineTolerance = 2.0

	// blockGap joins consecutive lines into one block when the vertical
	// gap between them is at most this many points. Tuned for common
	// body leading; captions separated by more stay their own block.
	blockGap = 5.0
)

// PDF reads layout primitives from a PDF file using the content-stream
// interpreter in github.com/ledongthuc/pdf. Vector `re` path operators
// become drawing rectangles and positioned text runs are grouped into
// blocks. The library does not surface embedded image placements, so
// Page returns an empty image list; the segmentation engine degrades
// gracefully when a page has no image primitives.
type PDF struct {
	file   *os.File
	reader *pdf.Reader
}

// OpenPDF opens the document at path.
func OpenPDF(path string) (*PDF, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	return &PDF{file: f, reader: r}, nil
}

// NumPages returns the page count.
func (p *PDF) NumPages() int {
	return p.reader.NumPage()
}

// Close releases the underlying file.
func (p *PDF) Close() error {
	return p.file.Close()
}

// Page extracts the primitives of the zero-based page n. Coordinates are
// PDF user space (origin bottom-left, y up).
func (p *PDF) Page(n int) (page types.Page, err error) {
	// The content-stream interpreter panics on malformed streams;
	// surface that as an error instead of taking the process down.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: interpreting content stream: %v", n, r)
		}
	}()

	pg := p.reader.Page(n + 1)
	if pg.V.IsNull() {
		return types.Page{}, fmt.Errorf("page %d: not found", n)
	}

	width, height := mediaBoxSize(pg.V)
	content := pg.Content()

	drawings := make([]types.Rect, 0, len(content.Rect))
	for _, r := range content.Rect {
		drawings = append(drawings, types.NewRect(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y))
	}

	return types.Page{
		Number:   n,
		Width:    width,
		Height:   height,
		Drawings: drawings,
		Texts:    groupTexts(content.Text),
	}, nil
}

// mediaBoxSize resolves the page MediaBox, walking up the Parent chain
// for inherited values, and returns its width and height.
func mediaBoxSize(v pdf.Value) (width, height float64) {
	for !v.IsNull() {
		if mb := v.Key("MediaBox"); !mb.IsNull() && mb.Len() == 4 {
			x0, y0 := mb.Index(0).Float64(), mb.Index(1).Float64()
			x1, y1 := mb.Index(2).Float64(), mb.Index(3).Float64()
			return x1 - x0, y1 - y0
		}
		v = v.Key("Parent")
	}
	return 0, 0
}

// textLine is one assembled line of text with its bounding box.
type textLine struct {
	rect types.Rect
	text string
}

// groupTexts assembles positioned text runs into blocks: runs with
// near-identical baselines form lines, and consecutive lines separated
// by at most blockGap form blocks. Block text joins its lines with
// newlines, one trailing, so average-line-length classification sees the
// same shape the renderer produced.
func groupTexts(texts []pdf.Text) []types.TextBlock {
	runs := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) != "" {
			runs = append(runs, t)
		}
	}
	if len(runs) == 0 {
		return nil
	}

	// Top of the page first, then left to right.
	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].Y != runs[j].Y {
			return runs[i].Y > runs[j].Y
		}
		return runs[i].X < runs[j].X
	})

	var lines []textLine
	start := 0
	for i := 1; i <= len(runs); i++ {
		if i < len(runs) && runs[start].Y-runs[i].Y <= lineTolerance {
			continue
		}
		lines = append(lines, assembleLine(runs[start:i]))
		start = i
	}

	var blocks []types.TextBlock
	cur := lines[0]
	parts := []string{cur.text}
	for _, line := range lines[1:] {
		if cur.rect.Y0-line.rect.Y1 <= blockGap {
			cur.rect = cur.rect.Union(line.rect)
			parts = append(parts, line.text)
			continue
		}
		blocks = append(blocks, types.TextBlock{Rect: cur.rect, Text: strings.Join(parts, "\n") + "\n"})
		cur = line
		parts = []string{line.text}
	}
	blocks = append(blocks, types.TextBlock{Rect: cur.rect, Text: strings.Join(parts, "\n") + "\n"})

	return blocks
}

// assembleLine concatenates the runs of one line left to right and
// computes the line's bounding box from baselines and font sizes.
func assembleLine(runs []pdf.Text) textLine {
	sorted := append([]pdf.Text(nil), runs...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var sb strings.Builder
	rect := types.Rect{
		X0: sorted[0].X,
		Y0: sorted[0].Y,
		X1: sorted[0].X + sorted[0].W,
		Y1: sorted[0].Y + sorted[0].FontSize,
	}
	for i, r := range sorted {
		sb.WriteString(r.S)
		if i > 0 {
			rect = rect.Union(types.Rect{X0: r.X, Y0: r.Y, X1: r.X + r.W, Y1: r.Y + r.FontSize})
		}
	}

	return textLine{rect: rect, text: sb.String()}
}
