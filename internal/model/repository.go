package model

import (
	"net/url"
	"strings"
)

// fontNamePlaceholder is replaced by the query-escaped font name.
const fontNamePlaceholder = "{font_name}"

// FontRepository is a static font source used to build search links.
type FontRepository struct {
	// Name is the display name, e.g. "Font Squirrel".
	Name string `json:"name"`

	// SearchURLTemplate contains {font_name} where the query goes.
	SearchURLTemplate string `json:"search_url_template"`

	// HasAPI is true when deckkit can query the repository directly.
	HasAPI bool `json:"has_api"`
}

// SearchURL returns the search link for fontName. Spaces become '+'.
func (r FontRepository) SearchURL(fontName string) string {
	return strings.ReplaceAll(r.SearchURLTemplate, fontNamePlaceholder, url.QueryEscape(fontName))
}

// Link returns the search link as a SearchLink.
func (r FontRepository) Link(fontName string) SearchLink {
	return SearchLink{Source: r.Name, URL: r.SearchURL(fontName)}
}

// FreeRepositories are the ten free font sources deckkit knows about.
// Google Fonts comes first because it is the only one with an API.
var FreeRepositories = []FontRepository{
	{Name: "Google Fonts", SearchURLTemplate: "https://fonts.google.com/?query={font_name}", HasAPI: true},
	{Name: "Font Squirrel", SearchURLTemplate: "https://www.fontsquirrel.com/fonts/list/find_fonts?q={font_name}"},
	{Name: "DaFont", SearchURLTemplate: "https://www.dafont.com/search.php?q={font_name}"},
	{Name: "1001 Fonts", SearchURLTemplate: "https://www.1001fonts.com/search.html?search={font_name}"},
	{Name: "Behance", SearchURLTemplate: "https://www.behance.net/search/projects?search={font_name}+font"},
	{Name: "Dribbble", SearchURLTemplate: "https://dribbble.com/search/{font_name}+font"},
	{Name: "FontSpace", SearchURLTemplate: "https://www.fontspace.com/search?q={font_name}"},
	{Name: "Urban Fonts", SearchURLTemplate: "https://www.urbanfonts.com/fonts/{font_name}.htm"},
	{Name: "Abstract Fonts", SearchURLTemplate: "https://www.abstractfonts.com/search/{font_name}"},
	{Name: "The League of Moveable Type", SearchURLTemplate: "https://www.theleagueofmoveabletype.com/"},
}

// CommercialMarketplaces are where commercial fonts can be licensed.
var CommercialMarketplaces = []FontRepository{
	{Name: "Adobe Fonts", SearchURLTemplate: "https://fonts.adobe.com/search?query={font_name}"},
	{Name: "MyFonts", SearchURLTemplate: "https://www.myfonts.com/search/{font_name}/fonts/"},
	{Name: "Fonts.com", SearchURLTemplate: "https://www.fonts.com/search?searchtext={font_name}"},
	{Name: "Linotype", SearchURLTemplate: "https://www.linotype.com/search?q={font_name}"},
	{Name: "Font Shop", SearchURLTemplate: "https://www.fontshop.com/search/{font_name}"},
}

// RepositoryByName finds a repository in FreeRepositories or
// CommercialMarketplaces.
func RepositoryByName(name string) (FontRepository, bool) {
	for _, list := range [][]FontRepository{FreeRepositories, CommercialMarketplaces} {
		for _, r := range list {
			if strings.EqualFold(r.Name, name) {
				return r, true
			}
		}
	}
	return FontRepository{}, false
}
