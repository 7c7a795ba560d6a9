// Package utils provides shared helpers for conson.
//
// # System Utilities
//
//   - GetUsername, GetHostname: identify who ran an operation (audit log)
//   - IsElevated: whether the machine UUID tool can be expected to work
//
// # Filesystem Utilities
//
//   - ExpandPath: expands ~ and environment variables in directories
//
// # Terminal and I/O Utilities
//
//   - ReadPassphrase: reads a value without echo
//   - ReadStdin: reads piped tokens
//
// # String Utilities
//
//   - FormatNames, Abbreviate: output formatting
package utils
