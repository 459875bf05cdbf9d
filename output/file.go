package output

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/blitz-io/blitz-go/sprint"
	"github.com/pkg/errors"
)

var reIndexSuffix = regexp.MustCompile(`\.(\d+)$`)

// SnapshotWriter stores a sprint result as JSON so it can be replayed later.
type SnapshotWriter struct {
	fullPath string
}

func NewSnapshotWriter(options *Options) *SnapshotWriter {
	fullPath := options.OutputFile
	if !options.Overwrite {
		fullPath = makeNonOverlappingFilename(fullPath)
	}
	return &SnapshotWriter{
		fullPath: fullPath,
	}
}

// makeNonOverlappingFilename appends or bumps a ".N" suffix until path
// names a file that does not exist.
func makeNonOverlappingFilename(path string) string {
	_, err := os.Stat(path)
	if err == nil {
		newPath := reIndexSuffix.ReplaceAllStringFunc(path, func(index string) string {
			i, err := strconv.Atoi(strings.TrimPrefix(index, "."))
			if err != nil {
				panic(err)
			}
			i++
			return fmt.Sprintf(".%d", i)
		})
		if path == newPath {
			path = fmt.Sprintf("%s.%d", path, 1)
		} else {
			path = newPath
		}
		path = makeNonOverlappingFilename(path)
	}
	return path
}

func (f *SnapshotWriter) Write(result *sprint.Result) error {
	file, err := os.Create(f.fullPath)
	if err != nil {
		return errors.Wrap(err, "creating result file")
	}
	if err := sprint.Encode(file, result); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return errors.Wrap(err, "closing result file")
	}
	return nil
}

func (f *SnapshotWriter) Filename() string {
	return filepath.Base(f.fullPath)
}
