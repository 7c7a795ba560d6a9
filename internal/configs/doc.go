// Package configs manages conson's user configuration.
//
// The user config lives in config.toml under the user config directory
// (for example ~/.config/conson/config.toml) and holds the defaults the CLI
// applies when no flag is given:
//
//	[store]
//	file_name = "config.json"
//	directory = "~/projects/app"
//	salt = "my own salt"
//
// The parameter store itself never reads this file. Library callers pass
// settings as store options.
package configs
