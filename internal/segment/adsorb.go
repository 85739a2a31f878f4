// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import "github.com/meshintel/pagemark/pkg/types"

// AdsorbRects folds source rectangles into target rectangles one way:
// each source unions into the first target found near it (first match,
// not best match), replacing that target in place. Sources that find no
// target are returned as leftovers in their original order; they are
// never merged with each other and no new target is ever created from a
// source. Target order is preserved positionally.
//
// Every source ends up in exactly one of the two return values. Neither
// input slice is modified.
func AdsorbRects(sources, targets []types.Rect, distance float64) (leftover, updated []types.Rect) {
	updated = append([]types.Rect(nil), targets...)

	for _, src := range sources {
		adsorbed := false
		for i, tgt := range updated {
			if isNear(src, tgt, distance) {
				updated[i] = src.Union(tgt)
				adsorbed = true
				break
			}
		}
		if !adsorbed {
			leftover = append(leftover, src)
		}
	}

	return leftover, updated
}
