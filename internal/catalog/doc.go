// Package catalog is a small client for the Google Fonts Developer API.
//
// A Client fetches the family list once and keeps it for its lifetime;
// there is no on-disk cache and no retry. When the list cannot be fetched
// every lookup reports "not found" instead of failing the caller.
package catalog
