package hunter

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/deckkit/internal/model"
)

// knownFreeFont is a verified free family with stable links.
type knownFreeFont struct {
	key         string
	repository  string
	directURL   string
	downloadURL string
}

// knownFreeFonts is checked in order for partial matches.
var knownFreeFonts = []knownFreeFont{
	{
		key:         "montserrat",
		repository:  "Font Squirrel",
		directURL:   "https://www.fontsquirrel.com/fonts/montserrat",
		downloadURL: "https://www.fontsquirrel.com/fonts/download/montserrat",
	},
	{
		key:         "dm sans",
		repository:  model.RepositoryGoogleFonts,
		directURL:   "https://fonts.google.com/specimen/DM+Sans",
		downloadURL: "https://fonts.google.com/download?family=DM+Sans",
	},
	{
		key:         "open sans",
		repository:  model.RepositoryGoogleFonts,
		directURL:   "https://fonts.google.com/specimen/Open+Sans",
		downloadURL: "https://fonts.google.com/download?family=Open+Sans",
	},
	{
		key:         "lato",
		repository:  model.RepositoryGoogleFonts,
		directURL:   "https://fonts.google.com/specimen/Lato",
		downloadURL: "https://fonts.google.com/download?family=Lato",
	},
	{
		key:         "roboto",
		repository:  model.RepositoryGoogleFonts,
		directURL:   "https://fonts.google.com/specimen/Roboto",
		downloadURL: "https://fonts.google.com/download?family=Roboto",
	},
}

const (
	noteVerified      = "Direct link to verified free font"
	noteSearchManual  = "Please search these repositories manually"
	multipleSources   = "Multiple Sources"
	notePrefixSimilar = "Found similar font: "
)

// lookupKnownFree checks the table: an exact key first, then a partial
// match in either direction.
func lookupKnownFree(name string) (model.FreeFontLead, bool) {
	key := strings.ToLower(strings.TrimSpace(name))

	for _, k := range knownFreeFonts {
		if k.key == key {
			return k.lead(name, noteVerified), true
		}
	}
	if key == "" {
		return model.FreeFontLead{}, false
	}
	for _, k := range knownFreeFonts {
		if strings.Contains(key, k.key) || strings.Contains(k.key, key) {
			title := cases.Title(language.Und).String(k.key)
			return k.lead(name, notePrefixSimilar+title), true
		}
	}
	return model.FreeFontLead{}, false
}

func (k knownFreeFont) lead(name, note string) model.FreeFontLead {
	return model.FreeFontLead{
		FontName:    name,
		Repository:  k.repository,
		DirectURL:   k.directURL,
		DownloadURL: k.downloadURL,
		Note:        note,
	}
}

// searchLead points at the two largest free repositories.
func searchLead(name string) model.FreeFontLead {
	links := make([]model.SearchLink, 0, 2)
	for _, repo := range []string{"Google Fonts", "Font Squirrel"} {
		if r, ok := model.RepositoryByName(repo); ok {
			links = append(links, r.Link(name))
		}
	}
	return model.FreeFontLead{
		FontName:    name,
		Repository:  multipleSources,
		SearchLinks: links,
		Note:        noteSearchManual,
	}
}

// commercialEntry links name to every commercial marketplace.
func commercialEntry(name string) model.CommercialFont {
	links := make([]model.SearchLink, 0, len(model.CommercialMarketplaces))
	for _, m := range model.CommercialMarketplaces {
		links = append(links, m.Link(name))
	}
	return model.CommercialFont{FontName: name, SearchLinks: links}
}
