package report

import (
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/deckkit/internal/model"
)

// MarkdownWriter outputs reports in GitHub flavoured Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the extraction report in Markdown format.
func (w *MarkdownWriter) Write(report *ExtractionReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Font Extraction Report")
	md.PlainText("")
	md.PlainTextf("**Generated:** %s", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	md.PlainText("")

	w.writeSummary(md, report)

	for _, res := range report.Results {
		w.writeResult(md, res)
	}

	if len(report.Tally.Errors) > 0 {
		md.H2("Failures")
		md.PlainText("")
		md.BulletList(report.Tally.Errors...)
		md.PlainText("")
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *ExtractionReport) {
	md.H2("Summary")
	md.PlainText("")

	counts := report.CategoryCounts()
	rows := [][]string{
		{"Files processed", strconv.Itoa(report.Tally.Total())},
		{"Failed", strconv.Itoa(report.Tally.Failed)},
		{"Embedded fonts", strconv.Itoa(report.EmbeddedCount())},
	}
	total := 0
	for _, c := range model.Categories {
		rows = append(rows, []string{c.Label(), strconv.Itoa(counts[c])})
		total += counts[c]
	}
	md.Table(markdown.TableSet{
		Header: []string{"Item", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	if total > 0 {
		chart := piechart.NewPieChart(
			io.Discard,
			piechart.WithTitle("Referenced Font Categories"),
			piechart.WithShowData(true),
		)
		for _, c := range model.Categories {
			if counts[c] > 0 {
				chart.LabelAndIntValue(c.Label(), uint64(counts[c]))
			}
		}
		md.PlainText("")
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	}

	switch {
	case report.Tally.Failed > 0:
		md.Warningf("%d of %d file(s) could not be processed.", report.Tally.Failed, report.Tally.Total())
	case counts[model.CategoryCommercial] > 0:
		md.Importantf("%d commercial font(s) may need a license on the presenting machine.",
			counts[model.CategoryCommercial])
	case counts[model.CategoryFree] > 0:
		md.Note("Free candidates can be fetched with `deckkit hunt-fonts`.")
	default:
		md.Tip("Every referenced font ships with common operating systems.")
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeResult(md *markdown.Markdown, res *model.ExtractionResult) {
	md.H2(filepath.Base(res.Source))
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Format", string(res.Format)},
			{"Output folder", "`" + res.OutputFolder + "`"},
			{"Embedded fonts", strconv.Itoa(len(res.EmbeddedFonts))},
			{"Referenced fonts", strconv.Itoa(len(res.ReferencedFonts))},
		},
	})
	md.PlainText("")

	if len(res.EmbeddedDetails) > 0 {
		md.PlainText("### Embedded fonts")
		md.PlainText("")
		rows := make([][]string, len(res.EmbeddedDetails))
		for i, d := range res.EmbeddedDetails {
			rows[i] = []string{d.FileName, d.Family, d.Weight, d.Style, shortDigest(d.SHA3)}
		}
		md.Table(markdown.TableSet{
			Header: []string{"File", "Family", "Weight", "Style", "SHA3-256"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if len(res.ReferencedFonts) == 0 {
		return
	}
	md.PlainText("### Referenced fonts")
	md.PlainText("")
	rows := make([][]string, 0, len(res.ReferencedFonts))
	for _, c := range model.Categories {
		for _, n := range res.Bucket(c) {
			rows = append(rows, []string{n, c.String()})
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Font", "Category"},
		Rows:   rows,
	})
	md.PlainText("")
}

// WriteHunt outputs the hunt result in Markdown format.
func (w *MarkdownWriter) WriteHunt(result *model.HuntResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Font Acquisition Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Status", "Count"},
		Rows: [][]string{
			{"Auto-Downloaded", strconv.Itoa(len(result.Downloaded))},
			{"Free (Manual Download)", strconv.Itoa(len(result.FreeFound))},
			{"Commercial", strconv.Itoa(len(result.Commercial))},
		},
	})
	md.PlainText("")

	if len(result.Downloaded) > 0 {
		md.H2("Auto-Downloaded Fonts")
		md.PlainText("")
		rows := make([][]string, len(result.Downloaded))
		for i, d := range result.Downloaded {
			rows[i] = []string{d.SearchedName, d.FontName, "`" + filepath.Base(d.FilePath) + "`", strings.Join(d.Variants, ", ")}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Searched", "Family", "File", "Variants"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if len(result.FreeFound) > 0 {
		md.H2("Free Fonts Found")
		md.PlainText("")
		rows := make([][]string, len(result.FreeFound))
		for i, f := range result.FreeFound {
			rows[i] = []string{f.FontName, f.Repository, leadURL(f)}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Font", "Source", "Link"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if len(result.Commercial) > 0 {
		md.H2("Commercial Fonts")
		md.PlainText("")
		names := make([]string, len(result.Commercial))
		for i, c := range result.Commercial {
			names[i] = c.FontName
		}
		md.BulletList(names...)
		md.PlainText("")
		md.Cautionf("%d font(s) must be purchased before the deck renders as designed.", len(result.Commercial))
		md.PlainText("")
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [deckkit](https://github.com/nao1215/deckkit)*")
}

// shortDigest keeps the first 12 hex digits of a digest.
func shortDigest(s string) string {
	if len(s) <= 12 {
		return s
	}
	return s[:12]
}
