// Package identity resolves the hardware UUID of the host machine.
//
// The UUID binds encrypted parameter values to the machine they were
// encrypted on. Resolution is behind the Provider interface so callers and
// tests can swap the platform tool for a fixed value:
//
//	p := identity.Default()                 // wmic on Windows, dmidecode elsewhere
//	p := identity.Static("4c4c4544-...")    // tests
//
// # Parsing Rule
//
// Tool output is trimmed, split into lines and the third line is taken on
// every platform. Whitespace and hyphens are removed and the result must be
// 32 hexadecimal characters. Anything else is ErrIdentityUnavailable.
//
// Resolution blocks until the tool exits. There is no timeout.
package identity
