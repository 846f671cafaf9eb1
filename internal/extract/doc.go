// Package extract pulls embedded fonts and font references out of
// presentation files.
//
// The set of formats is closed. ForPath picks a variant from the file
// extension before touching the file: PPTX for .pptx and Keynote for .key
// and .keynote. Every other extension, PDF included, fails with
// ErrUnsupportedFormat; PDFs go to package pdfconv instead.
//
// Each variant builds a pipeline.Pipeline per input. A missing input is an
// error. A damaged container is not: the problem is logged and whatever
// could be read is returned, possibly nothing.
package extract
