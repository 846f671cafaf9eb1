package pptx

import (
	"archive/zip"
	"bytes"
	"embed"
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder for DecodeConfig
	_ "image/png"  // register decoder for DecodeConfig
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// MediaType is the MIME type of a .pptx file.
	MediaType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

	// EMUPerInch is the number of English Metric Units per inch.
	EMUPerInch = 914400

	// SlideWidth and SlideHeight give the 16:9 slide size in EMU
	// (13.333 in x 7.5 in).
	SlideWidth  int64 = 12192000
	SlideHeight int64 = 6858000
)

// ErrEmptyDeck is returned when a deck without pictures is written.
var ErrEmptyDeck = errors.New("deck has no slides")

// ErrUnsupportedImage is returned for pictures that are neither PNG nor JPEG.
var ErrUnsupportedImage = errors.New("unsupported image format")

//go:embed assets/*
var assets embed.FS

// staticParts maps package part names to embedded asset files.
var staticParts = []struct {
	part  string
	asset string
}{
	{"ppt/theme/theme1.xml", "assets/theme1.xml"},
	{"ppt/slideMasters/slideMaster1.xml", "assets/slideMaster1.xml"},
	{"ppt/slideMasters/_rels/slideMaster1.xml.rels", "assets/slideMaster1.xml.rels"},
	{"ppt/slideLayouts/slideLayout1.xml", "assets/slideLayout1.xml"},
	{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", "assets/slideLayout1.xml.rels"},
}

// Picture is an encoded slide image.
type Picture struct {
	Data []byte

	// Ext is "png" or "jpeg".
	Ext string

	// Width and Height are the pixel dimensions.
	Width  int
	Height int
}

// NewPicture inspects data and returns it as a Picture.
func NewPicture(data []byte) (Picture, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Picture{}, fmt.Errorf("%w: %w", ErrUnsupportedImage, err)
	}
	switch format {
	case "png", "jpeg":
	default:
		return Picture{}, fmt.Errorf("%w: %s", ErrUnsupportedImage, format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Picture{}, fmt.Errorf("%w: empty image", ErrUnsupportedImage)
	}
	return Picture{Data: data, Ext: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// LoadPicture reads an image file.
func LoadPicture(path string) (Picture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the rasterizer's temp dir
	if err != nil {
		return Picture{}, err
	}
	p, err := NewPicture(data)
	if err != nil {
		return Picture{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return p, nil
}

// Fit scales a w x h picture to the largest size that fits a boxW x boxH
// box while keeping its aspect ratio, and centres it. All values are EMU
// except w and h, which only matter as a ratio.
func Fit(w, h int, boxW, boxH int64) (x, y, cx, cy int64) {
	if w <= 0 || h <= 0 {
		return 0, 0, boxW, boxH
	}
	scale := math.Min(float64(boxW)/float64(w), float64(boxH)/float64(h))
	cx = int64(math.Round(float64(w) * scale))
	cy = int64(math.Round(float64(h) * scale))
	cx = min(cx, boxW)
	cy = min(cy, boxH)
	return (boxW - cx) / 2, (boxH - cy) / 2, cx, cy
}

// Deck is a picture-only presentation.
type Deck struct {
	pictures []Picture
	title    string
	creator  string
	now      func() time.Time
}

// Option configures a Deck.
type Option func(*Deck)

// WithTitle sets the document title in the core properties.
func WithTitle(title string) Option {
	return func(d *Deck) {
		d.title = title
	}
}

// WithCreator sets the author in the core properties.
func WithCreator(creator string) Option {
	return func(d *Deck) {
		d.creator = creator
	}
}

// NewDeck creates an empty deck.
func NewDeck(opts ...Option) *Deck {
	d := &Deck{creator: "deckkit", now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Add appends one slide per picture.
func (d *Deck) Add(pictures ...Picture) {
	d.pictures = append(d.pictures, pictures...)
}

// Len returns the number of slides.
func (d *Deck) Len() int {
	return len(d.pictures)
}

// Write encodes the deck as a .pptx package.
func (d *Deck) Write(w io.Writer) error {
	if len(d.pictures) == 0 {
		return ErrEmptyDeck
	}

	zw := zip.NewWriter(w)
	if err := d.writeParts(zw); err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}

// Save writes the deck to path. A partially written file is removed.
func (d *Deck) Save(path string) (err error) {
	f, err := os.Create(path) //nolint:gosec // output path chosen by the caller
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return d.Write(f)
}

func (d *Deck) writeParts(zw *zip.Writer) error {
	n := len(d.pictures)
	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML(n)},
		{"_rels/.rels", rootRelsXML},
		{"docProps/core.xml", d.corePropsXML()},
		{"docProps/app.xml", appPropsXML(n)},
		{"ppt/presentation.xml", presentationXML(n)},
		{"ppt/_rels/presentation.xml.rels", presentationRelsXML(n)},
	}
	for _, p := range parts {
		if err := writeEntry(zw, p.name, []byte(p.content)); err != nil {
			return err
		}
	}

	for _, s := range staticParts {
		data, err := assets.ReadFile(s.asset)
		if err != nil {
			return fmt.Errorf("read template %s: %w", s.asset, err)
		}
		if err := writeEntry(zw, s.part, data); err != nil {
			return err
		}
	}

	for i, pic := range d.pictures {
		num := i + 1
		media := fmt.Sprintf("image%d.%s", num, pic.Ext)
		if err := writeEntry(zw, "ppt/media/"+media, pic.Data); err != nil {
			return err
		}
		if err := writeEntry(zw, fmt.Sprintf("ppt/slides/slide%d.xml", num), []byte(slideXML(num, pic))); err != nil {
			return err
		}
		if err := writeEntry(zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", num), []byte(slideRelsXML(media))); err != nil {
			return err
		}
	}
	return nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create zip entry %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write zip entry %s: %w", name, err)
	}
	return nil
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const rootRelsXML = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>` +
	`</Relationships>`

func contentTypesXML(slides int) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Default Extension="png" ContentType="image/png"/>`)
	b.WriteString(`<Default Extension="jpeg" ContentType="image/jpeg"/>`)
	b.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`)
	for i := 1; i <= slides; i++ {
		fmt.Fprintf(&b, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i)
	}
	b.WriteString(`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>`)
	b.WriteString(`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>`)
	b.WriteString(`</Types>`)
	return b.String()
}

func (d *Deck) corePropsXML() string {
	now := d.now().UTC().Format(time.RFC3339)
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	b.WriteString(`<dc:title>`)
	escape(&b, d.title)
	b.WriteString(`</dc:title><dc:creator>`)
	escape(&b, d.creator)
	b.WriteString(`</dc:creator>`)
	b.WriteString(`<dcterms:created xsi:type="dcterms:W3CDTF">` + now + `</dcterms:created>`)
	b.WriteString(`<dcterms:modified xsi:type="dcterms:W3CDTF">` + now + `</dcterms:modified>`)
	b.WriteString(`</cp:coreProperties>`)
	return b.String()
}

func appPropsXML(slides int) string {
	return xmlHeader +
		`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">` +
		`<Application>deckkit</Application>` +
		`<PresentationFormat>On-screen Show (16:9)</PresentationFormat>` +
		fmt.Sprintf(`<Slides>%d</Slides>`, slides) +
		`</Properties>`
}

func presentationXML(slides int) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:presentation xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" saveSubsetFonts="1">`)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	b.WriteString(`<p:sldIdLst>`)
	for i := range slides {
		fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, 3+i)
	}
	b.WriteString(`</p:sldIdLst>`)
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d"/>`, SlideWidth, SlideHeight)
	b.WriteString(`<p:notesSz cx="6858000" cy="9144000"/>`)
	b.WriteString(`<p:defaultTextStyle/>`)
	b.WriteString(`</p:presentation>`)
	return b.String()
}

func presentationRelsXML(slides int) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>`)
	b.WriteString(`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="theme/theme1.xml"/>`)
	for i := range slides {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, 3+i, i+1)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func slideXML(num int, pic Picture) string {
	x, y, cx, cy := Fit(pic.Width, pic.Height, SlideWidth, SlideHeight)
	return xmlHeader +
		`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">` +
		`<p:cSld><p:spTree>` +
		`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
		`<p:grpSpPr/>` +
		`<p:pic><p:nvPicPr>` +
		fmt.Sprintf(`<p:cNvPr id="2" name="Page %d"/>`, num) +
		`<p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr><p:nvPr/>` +
		`</p:nvPicPr>` +
		`<p:blipFill><a:blip r:embed="rId2"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>` +
		fmt.Sprintf(`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`, x, y, cx, cy) +
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>` +
		`</p:pic>` +
		`</p:spTree></p:cSld>` +
		`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>` +
		`</p:sld>`
}

func slideRelsXML(media string) string {
	return xmlHeader +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>` +
		`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/` + media + `"/>` +
		`</Relationships>`
}

func escape(b *strings.Builder, s string) {
	_ = xml.EscapeText(b, []byte(s))
}
