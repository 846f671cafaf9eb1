package model

// RepositoryGoogleFonts is the repository name recorded for downloads.
const RepositoryGoogleFonts = "Google Fonts"

// SearchLink is a labelled URL shown to the user.
type SearchLink struct {
	Source string `json:"source"`
	URL    string `json:"url"`
}

// DownloadedFont is a font fetched automatically from the Google Fonts API.
type DownloadedFont struct {
	// FontName is the catalog family that matched.
	FontName string `json:"font_name"`

	// SearchedName is the name found in the presentation.
	SearchedName string `json:"searched_name"`

	Repository string `json:"repository"`

	// FilePath is where the downloaded binary was written.
	FilePath string `json:"file_path"`

	// URL is the family's specimen page.
	URL string `json:"url"`

	// Variants lists every variant the catalog offers, e.g. "regular", "700".
	Variants []string `json:"variants"`

	Downloaded bool `json:"downloaded"`
}

// FreeFontLead points at a probable free source that needs a manual download.
type FreeFontLead struct {
	FontName    string       `json:"font_name"`
	Repository  string       `json:"repository"`
	DirectURL   string       `json:"direct_url,omitempty"`
	DownloadURL string       `json:"download_url,omitempty"`
	SearchLinks []SearchLink `json:"search_links,omitempty"`
	Downloaded  bool         `json:"downloaded"`
	Note        string       `json:"note"`
}

// CommercialFont is a font that most likely has to be licensed.
type CommercialFont struct {
	FontName    string       `json:"font_name"`
	SearchLinks []SearchLink `json:"search_links"`
}

// HuntResult is the outcome of hunting a list of font names.
type HuntResult struct {
	Downloaded    []DownloadedFont `json:"google_fonts_downloaded"`
	FreeFound     []FreeFontLead   `json:"free_fonts_found"`
	Commercial    []CommercialFont `json:"commercial_fonts"`
	ProjectFolder string           `json:"project_folder"`
	ReportPath    string           `json:"report_path"`
}

// NewHuntResult returns an empty result for projectFolder.
func NewHuntResult(projectFolder string) *HuntResult {
	return &HuntResult{
		Downloaded:    []DownloadedFont{},
		FreeFound:     []FreeFontLead{},
		Commercial:    []CommercialFont{},
		ProjectFolder: projectFolder,
	}
}

// Total returns the number of hunted names.
func (h *HuntResult) Total() int {
	return len(h.Downloaded) + len(h.FreeFound) + len(h.Commercial)
}
