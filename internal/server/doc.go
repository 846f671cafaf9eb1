// Package server implements the deckkit web UI.
//
// The server is meant for local use: it listens on 127.0.0.1 by default
// and has no authentication. Each request uploads one file, runs the same
// sequential pipeline as the CLI and answers with JSON or a file.
//
//	GET  /                            upload form
//	POST /extract                     presentation -> ExtractionResult (JSON) or report (?format=)
//	POST /hunt                        presentation -> HuntResult (JSON)
//	POST /convert                     PDF -> PPTX download
//	GET  /reports/{project}           font acquisition report (HTML)
//	GET  /reports/{project}/fonts.zip downloaded fonts of a project
//	GET  /healthz                     liveness and feature flags
//
// Uploads are stored in <work dir>/uploads/<uuid>/<file name> and removed
// after the request.
package server
