package fontinfo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/deckkit/internal/model"
)

// StylesheetName is the file written by WriteStylesheet.
const StylesheetName = "fonts.css"

// FontFace renders one @font-face rule. src is used verbatim as the url.
func FontFace(f model.EmbeddedFont, src string) string {
	var b strings.Builder
	b.WriteString("@font-face {\n")
	fmt.Fprintf(&b, "  font-family: '%s';\n", cssEscape(f.Family))
	fmt.Fprintf(&b, "  font-weight: %s;\n", f.Weight)
	fmt.Fprintf(&b, "  font-style: %s;\n", f.Style)
	fmt.Fprintf(&b, "  src: url('%s') format('%s');\n", cssEscape(src), sourceFormat(src))
	b.WriteString("  font-display: swap;\n")
	b.WriteString("}\n")
	return b.String()
}

func cssEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", " ").Replace(s)
}

func sourceFormat(src string) string {
	switch strings.ToLower(filepath.Ext(src)) {
	case ".otf":
		return "opentype"
	case ".woff":
		return "woff"
	case ".woff2":
		return "woff2"
	default:
		return "truetype"
	}
}

// Stylesheet renders the rules for fonts, referencing each by file name.
func Stylesheet(fonts []model.EmbeddedFont) string {
	rules := make([]string, 0, len(fonts))
	for _, f := range fonts {
		rules = append(rules, FontFace(f, f.FileName))
	}
	return strings.Join(rules, "\n")
}

// WriteStylesheet writes fonts.css into dir and returns its path. Nothing
// is written when fonts is empty.
func WriteStylesheet(dir string, fonts []model.EmbeddedFont) (string, error) {
	if len(fonts) == 0 {
		return "", nil
	}
	p := filepath.Join(dir, StylesheetName)
	if err := os.WriteFile(p, []byte(Stylesheet(fonts)), 0o600); err != nil {
		return "", fmt.Errorf("failed to write stylesheet: %w", err)
	}
	return p, nil
}
