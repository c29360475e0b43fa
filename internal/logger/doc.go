// Package logger wraps zap for the getver binaries:
//   - a global sugared logger writing console lines to stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and an optional rotated JSON log file,
//   - leveled convenience functions (Debugf, InfoKV, ErrorKV, ...).
//
// stdout is reserved for the versions the CLIs print.
package logger
