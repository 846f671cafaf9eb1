// Package hunter looks for sources of the fonts a presentation needs.
//
// For every name the Hunter tries, in order: an automatic download from
// the Google Fonts API (only with an API key), a small table of verified
// free fonts, the commercial marketplaces when the classifier flags the
// name as commercial, and finally a pair of manual search links. The
// outcome is a model.HuntResult plus an HTML acquisition report in the
// project folder.
package hunter
