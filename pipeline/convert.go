package pipeline

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"

	"forge/layout"
	"forge/parse"
	"forge/render"
	"forge/serialize"
	"forge/transform"
	"forge/verify"
)

// Convert parses one chart's bytes and runs the conversion and layout stages
// on it. The two stages are independent: a chart the legacy format cannot
// express still gets a layout and preview, with the failure kept in
// Output.ConvertErr. An error is returned only when the chart is unreadable
// or neither stage produced anything.
func Convert(raw []byte, cfg Config) (*Output, error) {
	chart, err := parse.Parse(raw)
	if err != nil {
		return nil, err
	}
	broken := 0
	if cfg.TolerateBrokenLinks {
		broken = cutBrokenLinks(&chart)
	}
	if err := verify.Parse(chart); err != nil {
		return nil, err
	}

	out := &Output{BrokenLinks: broken}
	out.ConvertErr = convertStage(chart, cfg, out)
	out.LayoutErr = layoutStage(chart, cfg, out)
	if out.ConvertErr != nil && out.LayoutErr != nil {
		return nil, out.ConvertErr
	}
	return out, nil
}

func convertStage(chart parse.Chart, cfg Config, out *Output) error {
	converted, err := transform.Transform(chart, transform.Options{
		Legacy:              cfg.Legacy,
		PageShift:           cfg.PageShift,
		TolerateBrokenLinks: cfg.TolerateBrokenLinks,
	})
	if err != nil {
		return errors.Wrap(err, "convert")
	}
	if err := verify.RoundTrip(converted); err != nil {
		return err
	}
	out.Converted = converted
	out.Text = serialize.Format(converted)
	return nil
}

func layoutStage(chart parse.Chart, cfg Config, out *Output) error {
	l, err := layout.Build(chart)
	if err != nil {
		return errors.Wrap(err, "layout")
	}
	if err := verify.Layout(l, len(chart.Notes)); err != nil {
		return err
	}
	out.Layout = l

	if cfg.Snapshot {
		out.LayoutJSON, err = json.MarshalIndent(l, "", "  ")
		if err != nil {
			return errors.Wrap(err, "layout snapshot")
		}
	}
	if cfg.Preview {
		var buf bytes.Buffer
		err := render.WritePNG(&buf, l, render.Options{
			Columns:        cfg.Columns,
			ShowGhostNotes: cfg.ShowGhostNotes,
			Scale:          2,
		})
		if err != nil {
			return errors.Wrap(err, "preview")
		}
		out.PNG = buf.Bytes()
	}
	return nil
}

// cutBrokenLinks ends every chain whose next_id names a missing note and
// returns how many were cut.
func cutBrokenLinks(chart *parse.Chart) int {
	ids := make(map[uint32]bool, len(chart.Notes))
	for _, n := range chart.Notes {
		ids[n.ID] = true
	}
	cut := 0
	for i := range chart.Notes {
		n := &chart.Notes[i]
		if n.HasNext() && !ids[uint32(n.NextID)] {
			n.NextID = -1
			cut++
		}
	}
	return cut
}
