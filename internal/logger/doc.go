// Package logger wraps zap for the bundler:
//   - a global sugared logger writing human-readable console lines,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing for the CLI and configuration,
//   - shortcuts such as InfoKV or WarnKV that read the logger from a context.
//
// Packaging steps receive a context and log through it, so the name of the
// running stage and per-artifact fields follow every message.
package logger
