package layout

import (
	"forge/parse"
	"forge/validate"
)

// canonicalize returns a sorted copy of the chart with dense note ids.
func canonicalize(chart parse.Chart) (parse.Chart, error) {
	if err := validate.NotEmpty(chart); err != nil {
		return parse.Chart{}, err
	}

	c := chart.Clone()
	c.SortInternalData()

	for i, p := range c.Pages {
		if p.EndTick <= p.StartTick {
			return parse.Chart{}, validate.Invalid("page %d has empty range [%d,%d)", i, p.StartTick, p.EndTick)
		}
	}

	if err := reassignNoteIDs(&c); err != nil {
		return parse.Chart{}, err
	}

	for _, n := range c.Notes {
		if pg := n.ResolvedPage(); pg < 0 || pg >= len(c.Pages) {
			return parse.Chart{}, validate.Dangling(n.ID, n.Tick, "resolved page %d does not exist", pg)
		}
		if int(n.PageIndex) >= len(c.Pages) {
			return parse.Chart{}, validate.Dangling(n.ID, n.Tick, "page_index %d does not exist", n.PageIndex)
		}
	}
	return c, nil
}

// reassignNoteIDs numbers notes 0..n-1 in their current order and rewrites
// next_id to match. Notes must already be sorted.
func reassignNoteIDs(c *parse.Chart) error {
	remap := make(map[uint32]uint32, len(c.Notes))
	for i, n := range c.Notes {
		if _, dup := remap[n.ID]; dup {
			return validate.InvalidNote(n.ID, n.Tick, "duplicate note id")
		}
		remap[n.ID] = uint32(i)
	}

	for i := range c.Notes {
		n := &c.Notes[i]
		if n.HasNext() {
			next, ok := remap[uint32(n.NextID)]
			if !ok {
				return validate.Dangling(n.ID, n.Tick, "next_id %d does not exist", n.NextID)
			}
			n.NextID = int32(next)
		}
	}
	for i := range c.Notes {
		c.Notes[i].ID = uint32(i)
	}
	return nil
}
