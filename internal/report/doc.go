// Package report renders extraction and hunt results.
//
// Writers for the terminal and for files share the Writer interface:
//   - SimpleWriter: human-readable text
//   - JSONWriter: structured JSON for other tools
//   - MarkdownWriter: tables and a mermaid pie chart of the font categories
//
// The font acquisition report of a hunt is an HTML page built as a node
// tree with golang.org/x/net/html, so every font name and URL is escaped
// by the renderer.
package report
