// Package pipeline runs extraction steps over one input and batches of
// inputs.
//
// A Pipeline executes Steps in order over a *model.Extraction draft: copy
// embedded fonts, inspect them, find references, classify. Each format
// variant in package extract assembles its own step list. A Batch feeds a
// list of input files through a per-file function, one at a time, and
// records the outcome in a model.Tally so that one broken file never stops
// the rest.
package pipeline
