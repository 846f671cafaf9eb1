// Package log provides secure logging for deckkit, built on top of the
// standard slog package.
//
// The SecureHandler masks attributes whose keys name credentials (api_key,
// key, token, authorization, ...) and redacts Google API keys wherever they
// appear in a message, a URL attribute or an error string. Font hunting
// builds catalog URLs of the form
//
//	https://www.googleapis.com/webfonts/v1/webfonts?key=AIza...
//
// and net/http errors repeat that URL, so without redaction a verbose run
// would print the key.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Warn("catalog request failed", "error", err)
//	slog.SetDefault(logger)
package log
