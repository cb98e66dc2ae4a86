package pipeline

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"forge/parse"
)

// Discover expands inputs into chart files. Directories contribute their
// *.json files, Cylheim project files (.cyl) and Cytoid level.json files
// contribute the charts they list. A level.json inside a scanned directory is
// treated as metadata, not as a chart. Order follows the inputs; duplicates
// are dropped.
func Discover(inputs []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(p string) {
		clean := filepath.Clean(p)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			return nil, errors.Wrap(err, "input")
		}

		switch {
		case info.IsDir():
			matches, err := filepath.Glob(filepath.Join(in, "*.json"))
			if err != nil {
				return nil, errors.Wrapf(err, "scan %s", in)
			}
			sort.Strings(matches)
			for _, m := range matches {
				if isLevel(m) {
					paths, err := levelCharts(m)
					if err != nil {
						return nil, err
					}
					for _, p := range paths {
						add(p)
					}
					continue
				}
				add(m)
			}
		case strings.EqualFold(filepath.Ext(in), ".cyl"):
			paths, err := projectCharts(in)
			if err != nil {
				return nil, err
			}
			for _, p := range paths {
				add(p)
			}
		case isLevel(in):
			paths, err := levelCharts(in)
			if err != nil {
				return nil, err
			}
			for _, p := range paths {
				add(p)
			}
		default:
			add(in)
		}
	}
	return files, nil
}

func projectCharts(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read project")
	}
	proj, err := parse.ParseProject(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "project %s", path)
	}
	return proj.ChartPaths(filepath.Dir(path)), nil
}

func isLevel(path string) bool {
	return strings.EqualFold(filepath.Base(path), parse.LevelFileName)
}

func levelCharts(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read level")
	}
	level, err := parse.ParseLevel(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "level %s", path)
	}
	return level.ChartPaths(filepath.Dir(path)), nil
}
