package pipeline

import (
	"os"

	"github.com/pkg/errors"
)

// writeOutputs stores the products of one input and returns the paths
// written.
func writeOutputs(cfg *Config, input string, out *Output) ([]string, error) {
	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return nil, errors.Wrap(err, "create output dir")
		}
	}

	var text []byte
	if out.ConvertErr == nil {
		text = []byte(out.Text)
	}
	files := []struct {
		suffix string
		data   []byte
	}{
		{"_converted.txt", text},
		{".png", out.PNG},
		{"_layout.json", out.LayoutJSON},
	}

	var written []string
	for _, f := range files {
		if f.data == nil {
			continue
		}
		path := cfg.OutputPath(input, f.suffix)
		if err := os.WriteFile(path, f.data, 0o644); err != nil {
			return written, errors.Wrapf(err, "write %s", path)
		}
		written = append(written, path)
	}
	return written, nil
}
