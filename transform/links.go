package transform

import (
	"slices"

	"forge/parse"
	"forge/validate"
)

// extractLinks rebuilds drag chains. Each chain starts at a Drag note and
// follows next_id through any note type; every note joins at most one chain.
func extractLinks(notes []parse.Note, tolerateBroken bool) ([]Link, error) {
	byID := make(map[uint32]int, len(notes))
	ids := make([]uint32, 0, len(notes))
	for i, n := range notes {
		if _, dup := byID[n.ID]; dup {
			return nil, validate.InvalidNote(n.ID, n.Tick, "duplicate note id")
		}
		byID[n.ID] = i
		ids = append(ids, n.ID)
	}
	slices.Sort(ids)

	visited := make(map[uint32]bool, len(notes))
	var links []Link
	for _, id := range ids {
		head := notes[byID[id]]
		if head.Type != parse.Drag || visited[id] {
			continue
		}

		var link Link
		cur := head
		for {
			visited[cur.ID] = true
			link.IDs = append(link.IDs, cur.ID)
			if !cur.HasNext() {
				break
			}
			next := uint32(cur.NextID)
			idx, ok := byID[next]
			if !ok {
				if tolerateBroken {
					break
				}
				return nil, validate.Dangling(cur.ID, cur.Tick, "next_id %d does not exist", cur.NextID)
			}
			if visited[next] {
				break
			}
			cur = notes[idx]
		}
		links = append(links, link)
	}

	slices.SortFunc(links, func(a, b Link) int {
		return slices.Compare(a.IDs, b.IDs)
	})
	return links, nil
}
