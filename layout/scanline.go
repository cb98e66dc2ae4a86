package layout

import (
	"math"

	"forge/parse"
)

// scanState is carried from one page to the next: the tempo in effect and
// the scanline speed at the end of the previous page.
type scanState struct {
	tempo uint32
	speed float64
}

func deriveScanlines(pages []PageView, first parse.Page, firstTempo parse.Tempo) {
	st := scanState{
		tempo: firstTempo.Value,
		speed: ScanlineSpeed(firstTempo.Value, first.Size(), first.Height()),
	}
	for i := range pages {
		pages[i].Scanline, st = pageScanline(pages[i], st)
	}
}

func pageScanline(p PageView, st scanState) (ScanlineInfo, scanState) {
	size := p.EndTick - p.StartTick
	height := 1.0
	if p.PositionFunction != nil {
		height = p.PositionFunction.Arguments[0]
	}
	info := ScanlineInfo{
		Stable: true,
		Min:    math.Inf(1),
		Max:    math.Inf(-1),
		Events: []ScanlineEvent{},
	}

	if len(p.Tempos) == 0 {
		speed := ScanlineSpeed(st.tempo, size, height)
		info.Min, info.Max = speed, speed
		if speed != st.speed {
			info.Events = append(info.Events, ScanlineEvent{
				Speed: speed,
				Y:     NoteY(p.StartTick, p.StartTick, p.EndTick, p.ScanDirection),
				Type:  classify(st.speed, speed),
			})
			st.speed = speed
		}
		return info, st
	}

	start := st.speed
	for _, t := range p.Tempos {
		speed := ScanlineSpeed(t.Value, size, height)
		if t.Tick == p.StartTick {
			start = speed
		}
		info.Min = math.Min(info.Min, speed)
		info.Max = math.Max(info.Max, speed)
		if speed != start {
			info.Stable = false
		}
		info.Events = append(info.Events, ScanlineEvent{
			Speed: speed,
			Y:     NoteY(t.Tick, p.StartTick, p.EndTick, p.ScanDirection),
			Type:  classify(st.speed, speed),
		})
		st = scanState{tempo: t.Value, speed: speed}
	}
	info.Min = math.Min(info.Min, start)
	info.Max = math.Max(info.Max, start)
	return info, st
}

func classify(prev, next float64) ScanlineEventType {
	switch {
	case next > prev:
		return Accelerate
	case next < prev:
		return Decelerate
	}
	return Stable
}
