//go:build windows

package identity

// Default returns the platform identity provider, backed by wmic.
func Default() Provider {
	return CommandProvider{
		Name: "wmic",
		Args: []string{"csproduct", "get", "UUID"},
		Line: OutputLine,
	}
}
