// Package naming derives the ordering of capture files from their names.
//
// Well-formed captures are named like "ucd_video_00235_20240112.bin"; the
// numeric run after the fixed token is the frame index. The encoder input
// and the CSV output both follow this order, so it must be deterministic
// even for files that do not match the convention.
package naming

import (
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

// reFrameIndex matches the capture filename convention: a fixed token,
// a numeric run, and a trailing separator.
var reFrameIndex = regexp.MustCompile(`ucd_video_(\d+)_`)

// NoIndex is returned for filenames that do not match the convention.
// It sorts before every real index.
const NoIndex = -1

// FrameIndex extracts the numeric frame index from a filename.
// "ucd_video_00235_xxx.bin" yields 235. Returns NoIndex when the name does
// not match or the numeric run overflows an int.
func FrameIndex(name string) int {
	m := reFrameIndex.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return NoIndex
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return NoIndex
	}
	return n
}

// SortByIndex orders paths ascending by frame index, in place. The sort is
// stable: files sharing an index (including all unmatched files, which share
// the sentinel) keep their relative input order. Well-formed captures have
// unique indices; test or adversarial input may not.
func SortByIndex(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		return FrameIndex(paths[i]) < FrameIndex(paths[j])
	})
}
