// Package process provides the command execution layer used to drive the
// external exiftool binary.
//
// The package offers two execution modes behind the Executor interface:
//
//   - Execute runs a one-shot command and captures its output. Used for
//     single invocations and for the version probe.
//   - Start spawns a long-lived worker and returns a Process handle giving
//     exclusive access to its stdin/stdout pipes. Used by the stay-open
//     execution strategy to stream requests and responses.
//
// A Command is a validated, immutable argument vector. Construction fails
// if the executable or any argument is blank, so malformed invocations are
// rejected before any process is spawned.
package process
