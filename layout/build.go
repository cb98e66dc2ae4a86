package layout

import (
	"slices"
	"sort"

	"forge/parse"
	"forge/validate"
)

// Build lays out every page of the chart. The chart is not modified.
func Build(chart parse.Chart) (Layout, error) {
	return BuildWithLabels(chart, nil)
}

// BuildWithLabels is Build with per-note labels attached by canonical note id
// (the id after sorting by tick).
func BuildWithLabels(chart parse.Chart, labels map[uint32]map[string]string) (Layout, error) {
	c, err := canonicalize(chart)
	if err != nil {
		return Layout{}, err
	}

	views := positionNotes(c)
	if err := linkDrags(c.Notes, views); err != nil {
		return Layout{}, err
	}
	for i := range views {
		if l, ok := labels[views[i].ID]; ok {
			views[i].Labels = make(map[string]string, len(l))
			for k, v := range l {
				views[i].Labels[k] = v
			}
		}
	}

	pages := assemblePages(c, views)
	propagateHolds(c.Notes, pages)
	mirrorGhosts(pages)
	deriveScanlines(pages, c.Pages[0], c.Tempos[0])

	return Layout{TimeBase: c.TimeBase, Pages: pages}, nil
}

func positionNotes(c parse.Chart) []NoteView {
	views := make([]NoteView, len(c.Notes))
	for i, n := range c.Notes {
		pageIdx := n.ResolvedPage()
		p := c.Pages[pageIdx]
		views[i] = noteView(n, pageIdx, Position{
			X: n.X,
			Y: NoteY(n.Tick, p.StartTick, p.EndTick, p.ScanDirection),
		})
	}
	return views
}

func noteView(n parse.Note, pageIdx int, pos Position) NoteView {
	v := NoteView{
		PageIndex:  pageIdx,
		Type:       n.Type,
		ID:         n.ID,
		Tick:       n.Tick,
		Position:   pos,
		HasSibling: n.HasSibling,
		HoldTick:   n.HoldTick,
		NextID:     n.NextID,
		IsForward:  n.IsForward,
	}
	if n.FallingDirection != nil {
		d := *n.FallingDirection
		v.FallingDirection = &d
	}
	if n.ApproachRate != nil {
		r := *n.ApproachRate
		v.ApproachRate = &r
	}
	return v
}

// linkDrags records both ends of every drag arrow.
func linkDrags(notes []parse.Note, views []NoteView) error {
	index := make(map[uint32]int, len(views))
	for i, v := range views {
		index[v.ID] = i
	}

	for _, n := range notes {
		if !n.HasNext() || !n.Type.Links() {
			continue
		}
		cur, ok := index[n.ID]
		if !ok {
			return validate.Dangling(n.ID, n.Tick, "note missing from layout")
		}
		next, ok := index[uint32(n.NextID)]
		if !ok {
			return validate.Dangling(n.ID, n.Tick, "next_id %d does not exist", n.NextID)
		}
		parentPos := views[cur].Position
		childPos := views[next].Position
		views[next].DragParent = &parentPos
		views[cur].DragChild = &childPos
	}
	return nil
}

func assemblePages(c parse.Chart, views []NoteView) []PageView {
	pages := make([]PageView, len(c.Pages))
	for i, p := range c.Pages {
		lo := sort.Search(len(c.Tempos), func(j int) bool { return c.Tempos[j].Tick >= p.StartTick })
		hi := sort.Search(len(c.Tempos), func(j int) bool { return c.Tempos[j].Tick >= p.EndTick })

		pv := PageView{
			TimeBase:         c.TimeBase,
			PageIndex:        i,
			StartTick:        p.StartTick,
			EndTick:          p.EndTick,
			ScanDirection:    p.ScanDirection,
			Tempos:           slices.Clone(c.Tempos[lo:hi]),
			Notes:            []NoteView{},
			GhostNotes:       []NoteView{},
			PositionFunction: clonePositionFunction(p.PositionFunction),
		}
		for _, v := range views {
			if v.PageIndex == i {
				pv.Notes = append(pv.Notes, v.clone())
			}
		}
		pages[i] = pv
	}
	return pages
}

// propagateHolds appends hold-body records. A body is anchored on the page
// holding the note's tick; long holds continue onto every later page they
// overlap. Pages are visited strictly left to right.
func propagateHolds(notes []parse.Note, pages []PageView) {
	for _, n := range notes {
		if !n.Type.IsHold() {
			continue
		}
		origin := int(n.PageIndex)
		end := n.EndTick()
		long := n.Type == parse.LongHold

		p := &pages[origin]
		body := HoldBody{
			LongHold: long,
			WithTail: !long || end <= p.EndTick,
			StartY:   NoteY(n.Tick, p.StartTick, p.EndTick, p.ScanDirection),
			EndY:     NoteY(min(end, p.EndTick), p.StartTick, p.EndTick, p.ScanDirection),
		}
		p.Notes = append(p.Notes, holdRecord(n, origin, body))

		if !long {
			continue
		}
		for idx := origin + 1; idx < len(pages); idx++ {
			q := &pages[idx]
			if end <= q.StartTick {
				break
			}
			body := HoldBody{
				LongHold: true,
				WithTail: end <= q.EndTick,
				StartY:   NoteY(q.StartTick, q.StartTick, q.EndTick, q.ScanDirection),
				EndY:     NoteY(min(end, q.EndTick), q.StartTick, q.EndTick, q.ScanDirection),
			}
			q.Notes = append(q.Notes, holdRecord(n, idx, body))
		}
	}
}

func holdRecord(n parse.Note, pageIdx int, body HoldBody) NoteView {
	v := noteView(n, pageIdx, Position{X: n.X, Y: body.StartY})
	v.HoldBody = &body
	return v
}

func mirrorGhosts(pages []PageView) {
	for i := 0; i+1 < len(pages); i++ {
		next := pages[i+1]
		pages[i].GhostScanDirection = next.ScanDirection
		pages[i].GhostNotes = cloneViews(next.Notes)
		pages[i].GhostPositionFunction = clonePositionFunction(next.PositionFunction)
	}
}
