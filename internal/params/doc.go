// Package params holds named configuration parameters and persists them to
// a JSON file.
//
// A parameter is a string or an ordered list of strings. Any single string,
// or any element of a list, can be veiled: replaced in place by a hex
// encoded token that only this machine, with the same salt, can unveil.
//
//	s := params.New(params.WithSalt("my salt"))
//	_ = s.Create("pc1", "login", "password")
//	_ = s.Veil("pc1", 1)                  // ["login", "<token>"]
//	_ = s.Save()                          // config.json in the working directory
//
// # File Format
//
// The file is a single JSON object. Keys are parameter names, values are
// strings or arrays of strings. It is written with four space indentation
// in insertion order. Load merges the file into the store by name and
// leaves the store untouched when the file is missing or malformed.
//
// Writes are not atomic and the file is not locked. Callers sharing a file
// between processes must serialize access themselves.
package params
