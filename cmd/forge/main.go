package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"forge/pipeline"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	nameStyle  = lipgloss.NewStyle().Width(32)
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	outDir := flag.String("o", "", "output directory")
	legacy := flag.Bool("legacy", false, "convert a chart prepared for Cytus1 export")
	pageShift := flag.Float64("pageshift", 0, "PAGE_SHIFT in seconds")
	tolerate := flag.Bool("tolerate-links", false, "truncate drag chains at broken next_id instead of failing")
	preview := flag.Bool("preview", false, "write a PNG page sheet")
	columns := flag.Int("columns", 0, "pages per row in the preview")
	ghost := flag.Bool("ghost", false, "draw the next page's notes in the preview")
	snapshot := flag.Bool("snapshot", false, "write the page layout as JSON")
	workers := flag.Int("workers", 0, "concurrent conversions")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: forge [flags] chart.json|dir|project.cyl ...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := pipeline.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			cfg.OutputDir = *outDir
		case "legacy":
			cfg.Legacy = *legacy
		case "pageshift":
			cfg.PageShift = *pageShift
		case "tolerate-links":
			cfg.TolerateBrokenLinks = *tolerate
		case "preview":
			cfg.Preview = *preview
		case "columns":
			cfg.Columns = *columns
		case "ghost":
			cfg.ShowGhostNotes = *ghost
		case "snapshot":
			cfg.Snapshot = *snapshot
		case "workers":
			cfg.Workers = *workers
		}
	})
	if flag.NArg() > 0 {
		cfg.Inputs = flag.Args()
	}
	if len(cfg.Inputs) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := pipeline.Run(ctx, cfg)
	printReport(report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if report.Failed() > 0 {
		os.Exit(1)
	}
}

func printReport(report pipeline.Report) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("forge: %d charts", len(report.Results))))
	for _, r := range report.Results {
		name := nameStyle.Render(filepath.Base(r.Input))
		if r.Err != nil {
			fmt.Printf("%s %s %s\n", name, failStyle.Render("FAIL"), r.Err)
			if len(r.Files) > 0 {
				fmt.Println(dimStyle.Render("    " + strings.Join(r.Files, ", ")))
			}
			continue
		}
		line := fmt.Sprintf("%s %s %4d notes %3d links %3d pages  BPM %.2f", name, passStyle.Render("ok  "),
			r.Notes, r.Links, r.Pages, r.BPM)
		if r.BrokenLinks > 0 {
			line += failStyle.Render(fmt.Sprintf(" %d broken links cut", r.BrokenLinks))
		}
		if r.Cached {
			line += dimStyle.Render(" (cached)")
		}
		if r.LayoutErr != nil {
			line += failStyle.Render(" no preview: " + r.LayoutErr.Error())
		}
		fmt.Println(line)
		if len(r.Files) > 0 {
			fmt.Println(dimStyle.Render("    " + strings.Join(r.Files, ", ")))
		}
	}

	failed := report.Failed()
	summary := passStyle.Render(fmt.Sprintf("%d converted", len(report.Results)-failed))
	if failed > 0 {
		summary += ", " + failStyle.Render(fmt.Sprintf("%d failed", failed))
	}
	fmt.Println(summary)
}
