package report

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/nao1215/deckkit/internal/model"
)

// HuntReportFileName is the file name of the acquisition report inside a
// hunt project folder.
const HuntReportFileName = "font_acquisition_report.html"

//go:embed assets/hunt.css
var huntCSS string

// WriteHuntHTML renders the font acquisition report of result to w.
func WriteHuntHTML(w io.Writer, result *model.HuntResult) error {
	return html.Render(w, huntDocument(result))
}

// SaveHuntHTML writes the acquisition report to path, replacing any
// existing file.
func SaveHuntHTML(path string, result *model.HuntResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	f, err := os.Create(path) //nolint:gosec // path is built by the caller from the project folder
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if err := WriteHuntHTML(f, result); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to render report: %w", err)
	}
	return f.Close()
}

func huntDocument(result *model.HuntResult) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, attr("lang", "en"))
	doc.AppendChild(root)

	head := element(atom.Head)
	appendAll(head,
		element(atom.Meta, attr("charset", "UTF-8")),
		element(atom.Meta, attr("name", "viewport"), attr("content", "width=device-width, initial-scale=1.0")),
		withText(element(atom.Title), "Font Acquisition Report"),
		withText(element(atom.Style), huntCSS),
	)

	container := div("container")
	appendAll(container,
		withText(element(atom.H1), "🎯 Font Acquisition Report"),
		withText(element(atom.P, class("subtitle")), "Generated by deckkit - Font Hunter"),
		summarySection(result),
	)
	appendAll(container, downloadedSection(result.Downloaded)...)
	appendAll(container, freeSection(result.FreeFound)...)
	appendAll(container, commercialSection(result.Commercial)...)

	footer := div("footer")
	footerLine := element(atom.P)
	appendAll(footerLine, text("Generated by "), withText(element(atom.Strong), "deckkit - Font Hunter"))
	appendAll(footer, footerLine, withText(element(atom.P), "Automated font acquisition for event tech professionals"))
	container.AppendChild(footer)

	body := element(atom.Body)
	body.AppendChild(container)
	appendAll(root, head, body)

	return doc
}

func summarySection(result *model.HuntResult) *html.Node {
	grid := div("summary-grid")
	for _, item := range []struct {
		count int
		label string
	}{
		{len(result.Downloaded), "Auto-Downloaded"},
		{len(result.FreeFound), "Free (Manual Download)"},
		{len(result.Commercial), "Commercial"},
	} {
		cell := div("summary-item")
		appendAll(cell,
			withText(div("summary-number"), strconv.Itoa(item.count)),
			withText(div("summary-label"), item.label),
		)
		grid.AppendChild(cell)
	}

	summary := div("summary")
	appendAll(summary, withText(element(atom.H3), "Summary"), grid)
	return summary
}

func downloadedSection(fonts []model.DownloadedFont) []*html.Node {
	if len(fonts) == 0 {
		return nil
	}
	nodes := []*html.Node{
		withText(element(atom.H2), "✅ Auto-Downloaded Fonts (Ready to Install)"),
		withText(element(atom.P), "These fonts were automatically downloaded from Google Fonts and are ready to use."),
	}
	for _, f := range fonts {
		item := fontItem("section-downloaded", f.FontName, "badge-success", "DOWNLOADED")

		file := div("font-details")
		appendAll(file, text("📁 File: "), withText(element(atom.Code), filepath.Base(f.FilePath)))
		item.AppendChild(file)
		item.AppendChild(withText(div("font-details"), "🔤 Variants available: "+strings.Join(f.Variants, ", ")))
		if f.SearchedName != "" && f.SearchedName != f.FontName {
			item.AppendChild(withText(div("font-details"), "🔎 Referenced as: "+f.SearchedName))
		}

		links := div("links")
		links.AppendChild(linkButton(f.URL, "View on Google Fonts", false))
		item.AppendChild(links)
		nodes = append(nodes, item)
	}
	return nodes
}

func freeSection(fonts []model.FreeFontLead) []*html.Node {
	if len(fonts) == 0 {
		return nil
	}
	nodes := []*html.Node{
		withText(element(atom.H2), "🆓 Free Fonts Found (Download Required)"),
		withText(element(atom.P), "These fonts were found on free repositories. Click the links to download and verify the license."),
		note("⚠️ Important:", "Please verify the license terms on each repository before using these fonts commercially."),
	}
	for _, f := range fonts {
		item := fontItem("section-free", f.FontName, "badge-info", "FREE")
		appendAll(item,
			withText(div("font-details"), "📍 Source: "+f.Repository),
			withText(div("font-details"), "ℹ️ "+f.Note),
		)

		links := div("links")
		switch {
		case f.DownloadURL != "":
			links.AppendChild(linkButton(f.DownloadURL, "Download from "+f.Repository, false))
		case f.DirectURL != "":
			links.AppendChild(linkButton(f.DirectURL, "View on "+f.Repository, false))
		default:
			for _, l := range f.SearchLinks {
				links.AppendChild(linkButton(l.URL, "Search "+l.Source, false))
			}
		}
		item.AppendChild(links)
		nodes = append(nodes, item)
	}
	return nodes
}

func commercialSection(fonts []model.CommercialFont) []*html.Node {
	if len(fonts) == 0 {
		return nil
	}
	nodes := []*html.Node{
		withText(element(atom.H2), "💰 Commercial Fonts (Purchase Required)"),
		withText(element(atom.P), "These fonts were not found in the free font repositories and likely require a commercial license."),
		note("🛒 Shopping List:", "Use the links below to find and purchase these fonts. Many companies have Adobe Creative Cloud which includes Adobe Fonts."),
	}
	for _, f := range fonts {
		item := fontItem("section-commercial", f.FontName, "badge-warning", "COMMERCIAL")
		item.AppendChild(withText(div("font-details"), "🔍 Search on these marketplaces:"))
		links := div("links")
		for _, l := range f.SearchLinks {
			links.AppendChild(linkButton(l.URL, l.Source, true))
		}
		item.AppendChild(links)
		nodes = append(nodes, item)
	}
	return nodes
}

func fontItem(section, name, badgeClass, badge string) *html.Node {
	item := div("font-item " + section)
	title := div("font-name")
	appendAll(title, text(name), withText(element(atom.Span, class("badge "+badgeClass)), badge))
	item.AppendChild(title)
	return item
}

func note(heading, body string) *html.Node {
	n := div("note")
	appendAll(n, withText(element(atom.Strong), heading), text(body))
	return n
}

func linkButton(href, label string, commercial bool) *html.Node {
	cls := "link-button"
	if commercial {
		cls += " link-button-commercial"
	}
	return withText(element(atom.A,
		attr("href", href),
		class(cls),
		attr("target", "_blank"),
		attr("rel", "noopener noreferrer"),
	), label)
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func div(cls string) *html.Node {
	return element(atom.Div, class(cls))
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func withText(n *html.Node, s string) *html.Node {
	n.AppendChild(text(s))
	return n
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func class(val string) html.Attribute {
	return attr("class", val)
}

func appendAll(parent *html.Node, children ...*html.Node) {
	for _, c := range children {
		parent.AppendChild(c)
	}
}
