// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"path"
	"strings"
)

// PagePath derives the output path for one page of a page-segmented
// conversion by inserting the 1-based page number before the suffix:
// "out/score.png" + page 2 -> "out/score-2.png". Pure and deterministic.
func PagePath(out string, page int) string {
	dir := path.Dir(out)
	ext := path.Ext(out)
	base := strings.TrimSuffix(path.Base(out), ext)

	name := fmt.Sprintf("%s-%d%s", base, page, ext)
	if dir == "." {
		return name
	}
	return dir + "/" + name
}
