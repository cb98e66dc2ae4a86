package serialize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"forge/transform"
)

const number = `(-?\d+(?:\.\d+)?)`

var (
	versionRe   = regexp.MustCompile(`VERSION[ \t]+(\d+)`)
	bpmRe       = regexp.MustCompile(`BPM[ \t]+` + number)
	pageShiftRe = regexp.MustCompile(`PAGE_SHIFT[ \t]+` + number)
	pageSizeRe  = regexp.MustCompile(`PAGE_SIZE[ \t]+` + number)
	noteRe      = regexp.MustCompile(`(?i:NOTE)[ \t]+(\d+)[ \t]+` + number + `[ \t]+` + number + `[ \t]+` + number)
	linkRe      = regexp.MustCompile(`LINK((?:[ \t]+\d+)+)`)
)

// Parse reads a chart in the Cytus1 line format. Text around the recognised
// keywords is ignored.
func Parse(text string) (transform.LegacyChart, error) {
	var chart transform.LegacyChart

	version, err := headerField(text, versionRe, "VERSION")
	if err != nil {
		return transform.LegacyChart{}, err
	}
	v, err := strconv.ParseUint(version, 10, 32)
	if err != nil {
		return transform.LegacyChart{}, errors.Wrap(err, "parse VERSION")
	}
	chart.Version = uint32(v)

	for _, f := range []struct {
		re   *regexp.Regexp
		name string
		dst  *float64
	}{
		{bpmRe, "BPM", &chart.BPM},
		{pageShiftRe, "PAGE_SHIFT", &chart.PageShift},
		{pageSizeRe, "PAGE_SIZE", &chart.PageSize},
	} {
		raw, err := headerField(text, f.re, f.name)
		if err != nil {
			return transform.LegacyChart{}, err
		}
		if *f.dst, err = strconv.ParseFloat(raw, 64); err != nil {
			return transform.LegacyChart{}, errors.Wrapf(err, "parse %s", f.name)
		}
	}

	for _, m := range noteRe.FindAllStringSubmatch(text, -1) {
		note, err := parseNote(m[1:])
		if err != nil {
			return transform.LegacyChart{}, errors.Wrapf(err, "parse note %q", m[0])
		}
		chart.Notes = append(chart.Notes, note)
	}

	for _, m := range linkRe.FindAllStringSubmatch(text, -1) {
		var link transform.Link
		for _, field := range strings.Fields(m[1]) {
			id, err := strconv.ParseUint(field, 10, 32)
			if err != nil {
				return transform.LegacyChart{}, errors.Wrapf(err, "parse link %q", m[0])
			}
			link.IDs = append(link.IDs, uint32(id))
		}
		chart.Links = append(chart.Links, link)
	}

	return chart, nil
}

func headerField(text string, re *regexp.Regexp, name string) (string, error) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", errors.Errorf("missing %s", name)
	}
	return m[1], nil
}

func parseNote(fields []string) (transform.LegacyNote, error) {
	id, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return transform.LegacyNote{}, err
	}
	var vals [3]float64
	for i := range vals {
		if vals[i], err = strconv.ParseFloat(fields[i+1], 64); err != nil {
			return transform.LegacyNote{}, err
		}
	}
	return transform.LegacyNote{ID: uint32(id), Time: vals[0], X: vals[1], HoldLength: vals[2]}, nil
}
