package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleLink    = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(14)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "⚠"
	iconInfo    = "ℹ"
	iconArrow   = "→"
)

// ui writes human-facing status lines. Machine readable output (JSON,
// Markdown reports) bypasses it.
type ui struct {
	w io.Writer
}

func newUI(w io.Writer) *ui {
	return &ui{w: w}
}

func (u *ui) success(format string, args ...any) {
	fmt.Fprintln(u.w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func (u *ui) failure(format string, args ...any) {
	fmt.Fprintln(u.w, renderError(fmt.Sprintf(format, args...)))
}

func (u *ui) warning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(u.w, styleIconWarning.Render(iconWarning)+" "+styleWarning.Render(msg))
}

func (u *ui) info(format string, args ...any) {
	fmt.Fprintln(u.w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

func (u *ui) title(s string) {
	fmt.Fprintln(u.w, styleTitle.Render(s))
}

// detail prints an indented, muted line.
func (u *ui) detail(format string, args ...any) {
	fmt.Fprintln(u.w, "  "+styleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints an output path.
func (u *ui) file(path string) {
	fmt.Fprintln(u.w, "  "+styleDim.Render(iconArrow)+" "+path)
}

func (u *ui) keyValue(key, value string) {
	fmt.Fprintln(u.w, styleKey.Render(key)+" "+value)
}

func (u *ui) count(key string, n int) {
	u.keyValue(key, styleNumber.Render(fmt.Sprint(n)))
}

func (u *ui) link(label, url string) {
	fmt.Fprintln(u.w, "  "+label+" "+styleLink.Render(url))
}

func (u *ui) newline() {
	fmt.Fprintln(u.w)
}

func renderError(msg string) string {
	return styleIconError.Render(iconError) + " " + msg
}
