package serialize

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"forge/transform"
)

// Write emits a chart in the Cytus1 line format.
func Write(w io.Writer, chart transform.LegacyChart) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "VERSION %d\n", chart.Version)
	fmt.Fprintf(bw, "BPM %.6f\n", chart.BPM)
	fmt.Fprintf(bw, "PAGE_SHIFT %.6f\n", chart.PageShift)
	fmt.Fprintf(bw, "PAGE_SIZE %.6f\n", chart.PageSize)
	for _, n := range chart.Notes {
		fmt.Fprintf(bw, "Note\t%d\t%.6f\t%.6f\t%.6f\n", n.ID, n.Time, n.X, n.HoldLength)
	}
	for _, l := range chart.Links {
		bw.WriteString("LINK")
		for _, id := range l.IDs {
			fmt.Fprintf(bw, " %d", id)
		}
		bw.WriteByte('\n')
	}

	return errors.Wrap(bw.Flush(), "write chart")
}

func Format(chart transform.LegacyChart) string {
	var b strings.Builder
	// strings.Builder never fails
	_ = Write(&b, chart)
	return b.String()
}
