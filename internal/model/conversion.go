package model

// ConversionResult describes one PDF converted into a PPTX deck.
type ConversionResult struct {
	// Source is the input PDF.
	Source string `json:"source"`

	// OutputPath is the written .pptx file.
	OutputPath string `json:"output_path"`

	// Pages is the number of slides written, one per PDF page.
	Pages int `json:"pages"`

	// DPI is the rasterization resolution.
	DPI int `json:"dpi"`
}
