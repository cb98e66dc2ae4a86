package parse

import (
	"slices"
	"sort"
)

// Clone returns a deep copy of the chart.
func (c Chart) Clone() Chart {
	out := c
	out.EndOffsetTime = clonePtr(c.EndOffsetTime)
	out.IsStartWithoutUI = clonePtr(c.IsStartWithoutUI)

	out.Pages = make([]Page, len(c.Pages))
	for i, p := range c.Pages {
		p.PositionFunction = clonePtr(p.PositionFunction)
		out.Pages[i] = p
	}
	out.Tempos = slices.Clone(c.Tempos)
	out.EventOrders = make([]EventOrder, len(c.EventOrders))
	for i, e := range c.EventOrders {
		e.Events = slices.Clone(e.Events)
		out.EventOrders[i] = e
	}
	out.Notes = make([]Note, len(c.Notes))
	for i, n := range c.Notes {
		n.FallingDirection = clonePtr(n.FallingDirection)
		n.ApproachRate = clonePtr(n.ApproachRate)
		out.Notes[i] = n
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// SortInternalData orders pages, tempos and event orders by tick and notes by
// tick then id. Note page indices follow their page when pages move.
func (c *Chart) SortInternalData() {
	order := make([]int, len(c.Pages))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return c.Pages[order[a]].StartTick < c.Pages[order[b]].StartTick
	})
	pageRemap := make(map[uint32]uint32, len(order))
	pages := make([]Page, len(order))
	for newIdx, oldIdx := range order {
		pages[newIdx] = c.Pages[oldIdx]
		pageRemap[uint32(oldIdx)] = uint32(newIdx)
	}
	c.Pages = pages
	for i := range c.Notes {
		if idx, ok := pageRemap[c.Notes[i].PageIndex]; ok {
			c.Notes[i].PageIndex = idx
		}
	}

	sort.SliceStable(c.Tempos, func(a, b int) bool {
		return c.Tempos[a].Tick < c.Tempos[b].Tick
	})
	sort.SliceStable(c.EventOrders, func(a, b int) bool {
		return c.EventOrders[a].Tick < c.EventOrders[b].Tick
	})
	sort.SliceStable(c.Notes, func(a, b int) bool {
		if c.Notes[a].Tick != c.Notes[b].Tick {
			return c.Notes[a].Tick < c.Notes[b].Tick
		}
		return c.Notes[a].ID < c.Notes[b].ID
	})
}

// FirstPageSize is the tick length of the first page, 0 for an empty chart.
func (c Chart) FirstPageSize() uint32 {
	if len(c.Pages) == 0 {
		return 0
	}
	return c.Pages[0].Size()
}
