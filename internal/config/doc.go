// Package config provides configuration structures and utilities for deckkit.
// It defines the output locations for extracted and hunted fonts, the PDF
// rasterizer settings, the Google Fonts API credentials, and report
// generation preferences.
package config
