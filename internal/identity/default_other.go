//go:build !windows

package identity

// Default returns the platform identity provider, backed by dmidecode.
// dmidecode usually needs root to read the DMI table.
func Default() Provider {
	return CommandProvider{
		Name: "dmidecode",
		Args: []string{"-s", "system-uuid"},
		Line: OutputLine,
	}
}
