package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/nao1215/deckkit/internal/model"
)

// ruleWidth is the width of the separator lines.
const ruleWidth = 70

// SimpleWriter outputs human-readable text reports for the terminal.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether empty categories are shown.
	showEmpty bool

	// verbose adds embedded font metadata to the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the extraction report in human-readable format.
func (w *SimpleWriter) Write(report *ExtractionReport) (int, error) {
	var sb strings.Builder

	writeBanner(&sb, "FONT EXTRACTION REPORT")

	for _, res := range report.Results {
		w.writeResult(&sb, res)
	}

	writeSection(&sb, "SUMMARY")
	fmt.Fprintf(&sb, "  Files processed:  %d\n", report.Tally.Total())
	fmt.Fprintf(&sb, "  Succeeded:        %d\n", report.Tally.Succeeded)
	fmt.Fprintf(&sb, "  Failed:           %d\n", report.Tally.Failed)
	fmt.Fprintf(&sb, "  Embedded fonts:   %d\n", report.EmbeddedCount())
	counts := report.CategoryCounts()
	for _, c := range model.Categories {
		fmt.Fprintf(&sb, "  %-17s %d\n", c.Label()+":", counts[c])
	}
	for _, msg := range report.Tally.Errors {
		fmt.Fprintf(&sb, "  [x] %s\n", msg)
	}
	sb.WriteString("\n")

	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeResult(sb *strings.Builder, res *model.ExtractionResult) {
	writeSection(sb, filepath.Base(res.Source))
	fmt.Fprintf(sb, "Source:  %s\n", res.Source)
	fmt.Fprintf(sb, "Format:  %s\n", res.Format)
	fmt.Fprintf(sb, "Output:  %s\n\n", res.OutputFolder)

	if len(res.EmbeddedFonts) == 0 {
		sb.WriteString("Embedded fonts: none\n")
	} else {
		fmt.Fprintf(sb, "Embedded fonts (%d):\n", len(res.EmbeddedFonts))
		for _, p := range res.EmbeddedFonts {
			fmt.Fprintf(sb, "  [+] %s\n", filepath.Base(p))
		}
		if w.verbose {
			for _, d := range res.EmbeddedDetails {
				fmt.Fprintf(sb, "      %s: family=%q weight=%s style=%s size=%d sha3=%s\n",
					d.FileName, d.Family, d.Weight, d.Style, d.Size, d.SHA3)
			}
		}
	}
	sb.WriteString("\n")

	fmt.Fprintf(sb, "Referenced fonts (%d)\n", len(res.ReferencedFonts))
	for _, c := range model.Categories {
		names := res.Bucket(c)
		if len(names) == 0 && !w.showEmpty {
			continue
		}
		fmt.Fprintf(sb, "[%s] %s\n", categoryIndicator(c), c.Label())
		if len(names) == 0 {
			sb.WriteString("  none\n")
		}
		for _, n := range names {
			fmt.Fprintf(sb, "  * %s\n", n)
		}
	}
	sb.WriteString("\n")
}

// WriteHunt outputs the hunt result in human-readable format.
func (w *SimpleWriter) WriteHunt(result *model.HuntResult) (int, error) {
	var sb strings.Builder

	writeBanner(&sb, "FONT HUNT SUMMARY")

	fmt.Fprintf(&sb, "  Auto-downloaded:  %d\n", len(result.Downloaded))
	fmt.Fprintf(&sb, "  Free (manual):    %d\n", len(result.FreeFound))
	fmt.Fprintf(&sb, "  Commercial:       %d\n", len(result.Commercial))
	fmt.Fprintf(&sb, "  Total:            %d\n\n", result.Total())

	if len(result.Downloaded) > 0 || w.showEmpty {
		writeSection(&sb, "DOWNLOADED")
		for _, d := range result.Downloaded {
			fmt.Fprintf(&sb, "  [+] %s -> %s\n", d.SearchedName, d.FontName)
			fmt.Fprintf(&sb, "      %s\n", d.FilePath)
		}
		sb.WriteString("\n")
	}

	if len(result.FreeFound) > 0 || w.showEmpty {
		writeSection(&sb, "FREE (DOWNLOAD REQUIRED)")
		for _, f := range result.FreeFound {
			fmt.Fprintf(&sb, "  [-] %s (%s)\n", f.FontName, f.Repository)
			if link := leadURL(f); link != "" {
				fmt.Fprintf(&sb, "      %s\n", link)
			}
		}
		sb.WriteString("\n")
	}

	if len(result.Commercial) > 0 || w.showEmpty {
		writeSection(&sb, "COMMERCIAL (PURCHASE REQUIRED)")
		for _, c := range result.Commercial {
			fmt.Fprintf(&sb, "  [$] %s\n", c.FontName)
		}
		sb.WriteString("\n")
	}

	if result.ProjectFolder != "" {
		fmt.Fprintf(&sb, "Project folder: %s\n", result.ProjectFolder)
	}
	if result.ReportPath != "" {
		fmt.Fprintf(&sb, "Report:         %s\n", result.ReportPath)
	}
	sb.WriteString("\n")

	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// leadURL returns the most direct link of a free font lead.
func leadURL(f model.FreeFontLead) string {
	switch {
	case f.DownloadURL != "":
		return f.DownloadURL
	case f.DirectURL != "":
		return f.DirectURL
	case len(f.SearchLinks) > 0:
		return f.SearchLinks[0].URL
	default:
		return ""
	}
}

func categoryIndicator(c model.Category) string {
	switch c {
	case model.CategorySystem:
		return "ok"
	case model.CategoryCommercial:
		return "$"
	case model.CategoryFree:
		return "?"
	default:
		return "-"
	}
}

func writeBanner(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	pad := max((ruleWidth-len(title))/2, 0)
	sb.WriteString(strings.Repeat(" ", pad) + title + "\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")
}

func writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("Report generated by deckkit\n")
	sb.WriteString("https://github.com/nao1215/deckkit\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
}
