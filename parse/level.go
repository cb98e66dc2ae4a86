package parse

import (
	"encoding/json"
	"path/filepath"

	"github.com/pkg/errors"
)

// LevelFileName is the metadata file of a Cytoid level directory.
const LevelFileName = "level.json"

// Level is Cytoid level metadata (level.json), as exported by Cylheim.
type Level struct {
	SchemaVersion        int          `json:"schema_version"`
	Version              int          `json:"version"`
	ID                   string       `json:"id"`
	Title                string       `json:"title"`
	TitleLocalized       string       `json:"title_localized,omitempty"`
	Artist               string       `json:"artist"`
	ArtistLocalized      string       `json:"artist_localized,omitempty"`
	ArtistSource         string       `json:"artist_source,omitempty"`
	Illustrator          string       `json:"illustrator"`
	IllustratorLocalized string       `json:"illustrator_localized,omitempty"`
	IllustratorSource    string       `json:"illustrator_source,omitempty"`
	Charter              string       `json:"charter"`
	Storyboarder         string       `json:"storyboarder,omitempty"`
	Music                LevelAsset   `json:"music"`
	MusicPreview         LevelAsset   `json:"music_preview"`
	Background           LevelAsset   `json:"background"`
	Charts               []LevelChart `json:"charts"`
}

type LevelAsset struct {
	Path string `json:"path"`
}

type LevelChart struct {
	Type          string      `json:"type"`
	Name          string      `json:"name"`
	Difficulty    float64     `json:"difficulty"`
	Path          string      `json:"path"`
	MusicOverride *LevelAsset `json:"music_override,omitempty"`
	Storyboard    *LevelAsset `json:"storyboard,omitempty"`
}

func ParseLevel(raw []byte) (Level, error) {
	text, err := decodeText(raw)
	if err != nil {
		return Level{}, err
	}
	var l Level
	if err := json.Unmarshal(text, &l); err != nil {
		return Level{}, errors.Wrap(err, "decode level")
	}
	return l, nil
}

// ChartPaths resolves chart paths relative to the level directory.
func (l Level) ChartPaths(dir string) []string {
	var paths []string
	for _, c := range l.Charts {
		if c.Path == "" {
			continue
		}
		name := filepath.FromSlash(c.Path)
		if !filepath.IsAbs(name) {
			name = filepath.Join(dir, name)
		}
		paths = append(paths, name)
	}
	return paths
}
