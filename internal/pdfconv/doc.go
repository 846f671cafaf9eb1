// Package pdfconv turns PDF documents into picture-only PowerPoint decks.
//
// Pages are rasterised by an external program (pdftoppm from poppler by
// default) into a temporary directory, then placed one per slide with
// package pptx. Document information and the page count are read with
// seehuhn.de/go/pdf.
package pdfconv
