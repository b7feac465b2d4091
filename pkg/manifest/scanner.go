package manifest

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/model-tools/inferd-entry/pkg/logging"
)

// MarkerFileName marks a fully cached, ready-to-use model directory.
const MarkerFileName = "manifest.json"

// dirSeparator is the two-character sequence that flattens a namespaced
// model identifier into a single directory name, e.g. vendor--name.
const dirSeparator = "--"

// Record describes one cached model found under the storage root.
type Record struct {
	ModelID string
	Dir     string
}

// Scan walks the storage root for manifest marker files and reports one
// Record per cached model. A missing root is not an error: the result is
// simply empty. Traversal problems are logged and skipped.
func Scan(root string, logger logging.Logger) []Record {
	if root == "" {
		return nil
	}

	info, err := os.Stat(root)
	if err != nil {
		logger.Infof("Model storage root not present, path: %s", root)
		return nil
	}
	if !info.IsDir() {
		logger.Warnf("Model storage root is not a directory, path: %s", root)
		return nil
	}

	var records []Record
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warnf("Skipping unreadable path during model scan, path: %s, error: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || d.Name() != MarkerFileName {
			return nil
		}

		dir := filepath.Dir(path)
		record := Record{
			ModelID: ModelIDFromDirName(filepath.Base(dir)),
			Dir:     dir,
		}
		logger.Infof("Found cached model, id: %s, dir: %s", record.ModelID, record.Dir)
		records = append(records, record)
		return nil
	})
	if walkErr != nil {
		logger.Warnf("Model scan finished with error, root: %s, error: %v", root, walkErr)
	}

	return records
}

// ModelIDFromDirName recovers the namespaced model identifier from a
// flattened on-disk directory name.
func ModelIDFromDirName(name string) string {
	return strings.ReplaceAll(name, dirSeparator, "/")
}
