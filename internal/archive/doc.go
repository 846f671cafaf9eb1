// Package archive reads zip-structured presentation containers.
//
// A Reader lists entries, returns entry contents and copies entries that
// match a Selector into an output folder. Copying follows a partial-result
// policy: a failing entry is logged as a warning and skipped, and the
// caller receives every path that was written successfully, in
// archive-listing order.
package archive
