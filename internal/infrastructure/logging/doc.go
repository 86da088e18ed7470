// Package logging provides structured logging for Plain Automation.
//
// It wraps log/slog so every component logs through the same handler
// with consistent default fields (service, version). JSON output for
// production, text for development, configured via the logging section
// of config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// Never log secrets or tokens.
package logging
