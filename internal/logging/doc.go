// Package logger provides leveled console logging for conson.
//
// The logger supports verbosity levels controlled by command-line flags.
// Output is prefixed and colored with fatih/color.
//
// # Verbosity Levels
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details and errors
//
// Without flags nothing is printed except WarnfAlways.
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Loaded %d parameters", n)
//
// The zero Logger is silent apart from WarnfAlways, which makes it a safe
// default for library code such as the parameter store.
package logger
