package hunter

import (
	"testing"

	"github.com/nao1215/deckkit/internal/model"
)

func TestLookupKnownFree(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       string
		wantOK   bool
		wantRepo string
		wantNote string
	}{
		{name: "exact key", in: "Montserrat", wantOK: true, wantRepo: "Font Squirrel", wantNote: noteVerified},
		{name: "exact key ignores case and space", in: "  OPEN SANS ", wantOK: true, wantRepo: model.RepositoryGoogleFonts, wantNote: noteVerified},
		{name: "name contains key", in: "Roboto Condensed", wantOK: true, wantRepo: model.RepositoryGoogleFonts, wantNote: "Found similar font: Roboto"},
		{name: "key contains name", in: "DM", wantOK: true, wantRepo: model.RepositoryGoogleFonts, wantNote: "Found similar font: Dm Sans"},
		{name: "unknown", in: "Zzyxlon Display", wantOK: false},
		{name: "blank", in: "  ", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lead, ok := lookupKnownFree(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("lookupKnownFree(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if lead.FontName != tt.in {
				t.Errorf("FontName = %q, want the searched name %q", lead.FontName, tt.in)
			}
			if lead.Repository != tt.wantRepo {
				t.Errorf("Repository = %q, want %q", lead.Repository, tt.wantRepo)
			}
			if lead.Note != tt.wantNote {
				t.Errorf("Note = %q, want %q", lead.Note, tt.wantNote)
			}
			if lead.DownloadURL == "" || lead.DirectURL == "" {
				t.Error("known fonts carry direct and download links")
			}
		})
	}
}

func TestSearchLead(t *testing.T) {
	t.Parallel()

	lead := searchLead("Zzyxlon Display")
	if lead.Repository != multipleSources || lead.Note != noteSearchManual {
		t.Errorf("lead = %+v", lead)
	}
	if len(lead.SearchLinks) != 2 {
		t.Fatalf("search links = %d, want 2", len(lead.SearchLinks))
	}
	if lead.SearchLinks[0].Source != "Google Fonts" || lead.SearchLinks[1].Source != "Font Squirrel" {
		t.Errorf("sources = %q, %q", lead.SearchLinks[0].Source, lead.SearchLinks[1].Source)
	}
}

func TestCommercialEntry(t *testing.T) {
	t.Parallel()

	entry := commercialEntry("Adobe Garamond Pro")
	if entry.FontName != "Adobe Garamond Pro" {
		t.Errorf("FontName = %q", entry.FontName)
	}
	if len(entry.SearchLinks) != len(model.CommercialMarketplaces) {
		t.Errorf("links = %d, want %d", len(entry.SearchLinks), len(model.CommercialMarketplaces))
	}
}
