package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"plannerd/internal/common/fsutil"
	"plannerd/pkg/types"
)

// ScanDir lists *.gguf files in dir, sorted by name. The directory path may
// start with '~'. A missing directory is an error; an empty one returns an
// empty list.
func ScanDir(dir string) ([]types.ModelFile, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var models []types.ModelFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".gguf") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		models = append(models, describeInfo(filepath.Join(abs, name), info))
	}
	sort.Slice(models, func(i, j int) bool { return models[i].Name < models[j].Name })
	return models, nil
}

// Describe builds the descriptor for a single chosen model file.
func Describe(path string) (types.ModelFile, error) {
	base, err := fsutil.ExpandHome(path)
	if err != nil {
		return types.ModelFile{}, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return types.ModelFile{}, fmt.Errorf("abs path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return types.ModelFile{}, err
	}
	if info.IsDir() {
		return types.ModelFile{}, fmt.Errorf("not a file: %s", abs)
	}
	return describeInfo(abs, info), nil
}

func describeInfo(path string, info os.FileInfo) types.ModelFile {
	return types.ModelFile{
		Name:          info.Name(),
		Path:          path,
		SizeBytes:     info.Size(),
		SizeFormatted: humanize.IBytes(uint64(info.Size())),
		Modified:      info.ModTime().Unix(),
	}
}
