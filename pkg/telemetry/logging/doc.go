// Package logging configures structured logging for Prospector.
//
// It wraps log/slog with two handlers:
//
//   - RedactingHandler masks contact emails, LinkedIn profile URLs, and
//     phone numbers in messages and string attributes, plus any custom
//     patterns from configuration.
//   - ContextHandler appends request_id, session, command, and the active
//     trace and span IDs from the context to every ...Context call.
//
// Commands build a Logger from the telemetry.logging configuration and
// install it globally so that components logging through
// slog.Default().With("component", ...) share the same pipeline:
//
//	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging))
//	if err != nil {
//	    return err
//	}
//	slog.SetDefault(logger.Slog())
//
// Redaction examples:
//
//   - ada.lovelace@acme.com → a***@acme.com
//   - https://linkedin.com/in/ada-lovelace → https://linkedin.com/in/***
//   - an attribute keyed "professionalEmail1" → first character plus ***
package logging
