// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render rasterizes PDF pages, crops region images, and draws
// labeled region outlines for the transcription prompt.
// Implements: prd002-rendering (R1-R3);
//
//	docs/ARCHITECTURE § Rendering.
package render

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"

	"github.com/meshintel/pagemark/pkg/types"
)

// pdfDPI is the PDF user-space resolution; a render scale of s maps to
// s*72 DPI.
const pdfDPI = 72

// PageRender describes the images produced for one page: the annotated
// full-page render and the cropped region images, named in region
// discovery order.
type PageRender struct {
	Number      int
	ImagePath   string
	RegionNames []string
}

// Renderer rasterizes one document's pages via MuPDF.
type Renderer struct {
	doc *fitz.Document
	cfg types.RenderConfig
}

// Open loads the document at path for rasterization. Output images are
// written to cfg.OutputDir, which is created if missing.
func Open(path string, cfg types.RenderConfig) (*Renderer, error) {
	if cfg.PageScale <= 0 || cfg.RegionScale <= 0 {
		def := types.DefaultRenderConfig()
		if cfg.PageScale <= 0 {
			cfg.PageScale = def.PageScale
		}
		if cfg.RegionScale <= 0 {
			cfg.RegionScale = def.RegionScale
		}
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	return &Renderer{doc: doc, cfg: cfg}, nil
}

// Close releases the document.
func (r *Renderer) Close() error {
	return r.doc.Close()
}

// RenderPage writes one cropped PNG per region ({page}_{i}.png) at the
// region scale, then an annotated full-page PNG ({page}.png) at the page
// scale with each region outlined in red and labeled with its file name.
func (r *Renderer) RenderPage(page types.Page, regions []types.Rect) (PageRender, error) {
	out := PageRender{
		Number:      page.Number,
		RegionNames: make([]string, 0, len(regions)),
	}

	if len(regions) > 0 {
		hi, err := r.doc.ImageDPI(page.Number, r.cfg.RegionScale*pdfDPI)
		if err != nil {
			return PageRender{}, fmt.Errorf("rendering page %d at region scale: %w", page.Number, err)
		}
		height := pageHeight(page, hi.Bounds(), r.cfg.RegionScale)

		for i, region := range regions {
			name := fmt.Sprintf("%d_%d.png", page.Number, i)
			crop := hi.SubImage(toRaster(region, height, r.cfg.RegionScale).Intersect(hi.Bounds()))
			if err := writePNG(filepath.Join(r.cfg.OutputDir, name), crop); err != nil {
				return PageRender{}, fmt.Errorf("writing region %s: %w", name, err)
			}
			out.RegionNames = append(out.RegionNames, name)
		}
	}

	full, err := r.doc.ImageDPI(page.Number, r.cfg.PageScale*pdfDPI)
	if err != nil {
		return PageRender{}, fmt.Errorf("rendering page %d at page scale: %w", page.Number, err)
	}
	height := pageHeight(page, full.Bounds(), r.cfg.PageScale)

	for i, region := range regions {
		// Outline slightly outside the region so the box does not
		// cover content at the region border.
		box := toRaster(region.Expand(1), height, r.cfg.PageScale)
		annotateRegion(full, box, out.RegionNames[i], r.cfg.PageScale)
	}

	out.ImagePath = filepath.Join(r.cfg.OutputDir, fmt.Sprintf("%d.png", page.Number))
	if err := writePNG(out.ImagePath, full); err != nil {
		return PageRender{}, fmt.Errorf("writing page image: %w", err)
	}

	return out, nil
}

// pageHeight returns the page height in points, falling back to the
// raster extent when the source had no media box.
func pageHeight(page types.Page, bounds image.Rectangle, scale float64) float64 {
	if page.Height > 0 {
		return page.Height
	}
	return float64(bounds.Dy()) / scale
}

// toRaster maps a rectangle from PDF user space (y up) to raster space
// (y down) at the given scale.
func toRaster(r types.Rect, pageHeight, scale float64) image.Rectangle {
	return image.Rect(
		int(math.Round(r.X0*scale)),
		int(math.Round((pageHeight-r.Y1)*scale)),
		int(math.Round(r.X1*scale)),
		int(math.Round((pageHeight-r.Y0)*scale)),
	)
}

// writePNG encodes img to path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
