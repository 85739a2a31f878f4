// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/meshintel/pagemark/pkg/types"
)

// SegmentPage produces the ordered list of layout regions for one page.
// The pipeline, in order:
//
//  1. Drop short horizontal-line drawings (height < 1, width below
//     cfg.ShortLineMaxWidth) as rendering artifacts.
//  2. Pool the remaining drawings with the image placements and merge the
//     pool at cfg.MergeDistance, with the horizontal-line merge reaching
//     cfg.HorizontalMergeDistance.
//  3. Drop invalid geometry produced by the merge.
//  4. Adsorb dense text blocks at cfg.LargeTextDistance (touching only).
//  5. Adsorb label text blocks at cfg.SmallTextDistance.
//  6. Merge again at cfg.FinalMergeDistance to clean up newly adjacent
//     regions.
//  7. Drop regions with width or height ≤ cfg.MinRegionSide.
//
// Regions are returned in discovery order, not spatial order. Malformed
// input rectangles (x0 > x1, non-finite corners) are a programming error
// in the caller and return an error; invalid geometry arising mid-pipeline
// is silently dropped.
func SegmentPage(page types.Page, cfg types.SegmentationConfig) ([]types.Rect, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}

	pool := make([]types.Rect, 0, len(page.Drawings)+len(page.Images))
	for _, d := range page.Drawings {
		if isShortLine(d, cfg.ShortLineMaxWidth) {
			continue
		}
		pool = append(pool, d)
	}
	pool = append(pool, page.Images...)

	pool = MergeRects(pool, cfg.MergeDistance, cfg.HorizontalMergeDistance)
	pool = filterValid(pool)

	large, small := partitionTexts(page.Texts, cfg.LargeTextAvgLineLen)
	_, pool = AdsorbRects(large, pool, cfg.LargeTextDistance)
	_, pool = AdsorbRects(small, pool, cfg.SmallTextDistance)

	pool = MergeRects(pool, cfg.FinalMergeDistance, 0)

	regions := pool[:0:0]
	for _, r := range pool {
		if r.Width() > cfg.MinRegionSide && r.Height() > cfg.MinRegionSide {
			regions = append(regions, r)
		}
	}

	return regions, nil
}

// isShortLine reports whether a drawing is a stray horizontal line too
// short to be a real divider.
func isShortLine(r types.Rect, maxWidth float64) bool {
	return r.Height() < 1 && r.Width() < maxWidth
}

// partitionTexts splits text blocks into dense body text and sparse label
// text by average characters per line.
func partitionTexts(texts []types.TextBlock, avgLineLen float64) (large, small []types.Rect) {
	for _, t := range texts {
		if isLargeText(t.Text, avgLineLen) {
			large = append(large, t.Rect)
		} else {
			small = append(small, t.Rect)
		}
	}
	return large, small
}

// isLargeText reports whether the block's average line length exceeds the
// threshold. Character counts are in runes, line counts never below one.
func isLargeText(text string, avgLineLen float64) bool {
	lines := strings.Count(text, "\n") + 1
	return float64(utf8.RuneCountInString(text))/float64(lines) > avgLineLen
}

// filterValid drops rectangles with degenerate geometry.
func filterValid(rects []types.Rect) []types.Rect {
	valid := rects[:0:0]
	for _, r := range rects {
		if r.IsValid() {
			valid = append(valid, r)
		}
	}
	return valid
}

// validatePage rejects malformed primitives before the pipeline runs.
func validatePage(page types.Page) error {
	for i, d := range page.Drawings {
		if !d.IsWellFormed() {
			return fmt.Errorf("page %d: drawing %d: malformed rectangle %+v", page.Number, i, d)
		}
	}
	for i, img := range page.Images {
		if !img.IsWellFormed() {
			return fmt.Errorf("page %d: image %d: malformed rectangle %+v", page.Number, i, img)
		}
	}
	for i, t := range page.Texts {
		if !t.Rect.IsWellFormed() {
			return fmt.Errorf("page %d: text block %d: malformed rectangle %+v", page.Number, i, t.Rect)
		}
	}
	return nil
}
