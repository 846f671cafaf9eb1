package model

import "testing"

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		path   string
		want   Format
		wantOK bool
	}{
		{"deck.pptx", FormatPPTX, true},
		{"/tmp/DECK.PPTX", FormatPPTX, true},
		{"talk.key", FormatKeynote, true},
		{"talk.keynote", FormatKeynote, true},
		{"Talk.Key/", FormatKeynote, true},
		{"handout.pdf", FormatPDF, true},
		{"legacy.ppt", "", false},
		{"notes.txt", "", false},
		{"README", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()
			got, ok := DetectFormat(tc.path)
			if got != tc.want || ok != tc.wantOK {
				t.Errorf("DetectFormat(%q) = %q, %v; want %q, %v", tc.path, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestFormatIsPresentation(t *testing.T) {
	t.Parallel()

	if !FormatPPTX.IsPresentation() || !FormatKeynote.IsPresentation() {
		t.Error("pptx and keynote must be presentations")
	}
	if FormatPDF.IsPresentation() {
		t.Error("pdf must not be a presentation")
	}
}

func TestStem(t *testing.T) {
	t.Parallel()

	testCases := map[string]string{
		"deck.pptx":            "deck",
		"/data/Q3 Review.pptx": "Q3 Review",
		"keynotes/Launch.key/": "Launch",
		"archive.tar.gz":       "archive.tar",
		"no-extension":         "no-extension",
	}
	for in, want := range testCases {
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			if got := Stem(in); got != want {
				t.Errorf("Stem(%q) = %q, want %q", in, got, want)
			}
		})
	}
}
