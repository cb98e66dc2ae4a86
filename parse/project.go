package parse

import (
	"encoding/json"
	"path/filepath"

	"github.com/pkg/errors"
)

// Project is a Cylheim project file (.cyl). Only the fields needed to locate
// charts and label output are decoded.
type Project struct {
	Version         int         `json:"Version"`
	ChartInfos      []ChartInfo `json:"ChartInfos"`
	LastOpenedChart *string     `json:"LastOpenedChart,omitempty"`
	LastEditedTime  float64     `json:"LastEditedTime"`
}

type ChartInfo struct {
	DiffName       string `json:"DiffName"`
	Diff           string `json:"Diff"`
	FileName       string `json:"FileName"`
	Media          string `json:"Media"`
	Video          string `json:"Video"`
	Background     string `json:"Bg"`
	Icon           string `json:"Icon"`
	SongName       string `json:"SongName"`
	ThemeColor     string `json:"ThemeColor"`
	StoryboardPath string `json:"StoryboardPath,omitempty"`
}

func ParseProject(raw []byte) (Project, error) {
	text, err := decodeText(raw)
	if err != nil {
		return Project{}, err
	}
	var p Project
	if err := json.Unmarshal(text, &p); err != nil {
		return Project{}, errors.Wrap(err, "decode project")
	}
	return p, nil
}

// ChartPaths resolves chart file names relative to the project directory.
func (p Project) ChartPaths(dir string) []string {
	var paths []string
	for _, info := range p.ChartInfos {
		if info.FileName == "" {
			continue
		}
		name := filepath.FromSlash(info.FileName)
		if !filepath.IsAbs(name) {
			name = filepath.Join(dir, name)
		}
		paths = append(paths, name)
	}
	return paths
}
