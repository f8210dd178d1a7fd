package twconfig

import (
	"fmt"
	"io"
	"strings"
)

// VerboseReporter prints document statistics
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{
		w:         w,
		useColors: useColors,
	}
}

func (r *VerboseReporter) header(title string) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, title, r.useColors))
	fmt.Fprintln(r.w, strings.Repeat("-", len(title)))
}

// PrintStatistics outputs the document summary
func (r *VerboseReporter) PrintStatistics(result Result) {
	r.header("Configuration Statistics")

	fmt.Fprintf(r.w, "Document:             %s\n", result.displayPath())
	fmt.Fprintf(r.w, "Dark Mode:            %s\n", darkModeLabel(result.DarkMode))
	fmt.Fprintf(r.w, "Scan Targets:         %d\n", result.ScanTargets)
	if result.Scan != nil {
		fmt.Fprintf(r.w, "Files Matched:        %d\n", result.FilesMatched)
	}
	fmt.Fprintf(r.w, "Palette Colors:       %d\n", result.PaletteColors)
	fmt.Fprintf(r.w, "Palette Overrides:    %d\n", result.PaletteOverrides)
	fmt.Fprintf(r.w, "Typography Modifiers: %d\n", result.TypographyModifiers)
	fmt.Fprintf(r.w, "Declarations:         %d\n", result.Declarations)
	fmt.Fprintf(r.w, "Variant Groups:       %d\n", result.VariantGroups)
	fmt.Fprintf(r.w, "Plugins:              %d\n", len(result.Plugins))
}

// PrintScanTargets shows the files each scan target resolved to
func (r *VerboseReporter) PrintScanTargets(result Result) {
	if result.Scan == nil || len(result.Scan.Targets) == 0 {
		return
	}

	r.header("Scan Targets")

	matched := 0
	for _, t := range result.Scan.Targets {
		status := pluralizeCount(len(t.Files), "file", "files")
		if t.Err != nil {
			status = RenderStyle(StyleRed, "invalid", r.useColors)
		} else if len(t.Files) > 0 {
			matched++
		}
		fmt.Fprintf(r.w, "• %s → %s\n", t.Target.Pattern, status)
	}
	if result.Scan.Stats.FilesSkipped > 0 {
		fmt.Fprintf(r.w, "  (%s skipped by .gitignore)\n", pluralizeCount(result.Scan.Stats.FilesSkipped, "file", "files"))
	}

	fmt.Fprintln(r.w, "")
	printProgressBar(r.w, float64(matched)/float64(len(result.Scan.Targets))*100)
}

// PrintCategories shows typography declarations per property category
func (r *VerboseReporter) PrintCategories(result Result) {
	if result.Declarations == 0 {
		return
	}

	r.header("Typography Properties")
	for _, cat := range CategoryOrder {
		if n := result.Categories[cat]; n > 0 {
			fmt.Fprintf(r.w, "%-12s %d\n", string(cat)+":", n)
		}
	}
}

// PrintPlugins lists plugins in load order
func (r *VerboseReporter) PrintPlugins(result Result) {
	if len(result.Plugins) == 0 {
		return
	}

	r.header("Plugins")
	for i, name := range result.Plugins {
		fmt.Fprintf(r.w, "%d. %s\n", i+1, name)
	}
}

// printProgressBar prints a visual progress bar
func printProgressBar(w io.Writer, percentage float64) {
	barWidth := 20
	filled := int(percentage / 100 * float64(barWidth))

	fmt.Fprint(w, "[")
	for i := 0; i < barWidth; i++ {
		if i < filled {
			fmt.Fprint(w, "█")
		} else {
			fmt.Fprint(w, "░")
		}
	}
	fmt.Fprintf(w, "] %.1f%% of scan targets match files\n", percentage)
}

func darkModeLabel(mode DarkMode) string {
	if mode == DarkModeOff || mode == "" {
		return "off (false)"
	}
	return string(mode)
}
