// Package log provides structured JSON logging via zerolog.
//
// Init configures the global Logger once at process start. Component
// loggers (WithComponent, WithSource, WithAsset) attach a scoping field
// and are cheap enough to build per call:
//
//	logger := log.WithComponent("loader")
//	logger.Info().Str("source_tag", tag).Int("assets", n).Msg("load complete")
package log
