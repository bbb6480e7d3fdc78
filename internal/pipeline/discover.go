package pipeline

import (
	"path/filepath"

	"github.com/backmassage/binframe/internal/naming"
)

// Discover collects the capture files (*.bin) directly inside inputDir and
// returns them in frame-index order. Glob output is lexical, so files
// without an index keep a deterministic relative order under the stable
// sort.
func Discover(inputDir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(inputDir, "*.bin"))
	if err != nil {
		return nil, err
	}
	naming.SortByIndex(files)
	return files, nil
}
