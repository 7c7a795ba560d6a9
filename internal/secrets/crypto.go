package secrets

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	kerrors "github.com/PolarWolf314/conson/internal/errors"
	"github.com/PolarWolf314/conson/internal/identity"
	"github.com/fernet/fernet-go"
)

// fernetVersion is the first byte of every Fernet token.
const fernetVersion = 0x80

// Fernet tokens carry version, timestamp, IV, one cipher block and the HMAC.
const minTokenBytes = 1 + 8 + 16 + 16 + 32

func fernetKey(key KeyMaterial) (*fernet.Key, error) {
	k, err := fernet.DecodeKey(string(key))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidKeyLength, err)
	}
	return k, nil
}

// Encrypt seals plaintext into a Fernet token and returns the token as
// lowercase hex. Every call uses a fresh IV and timestamp, so encrypting the
// same plaintext twice gives different output.
func Encrypt(plaintext string, key KeyMaterial) (string, error) {
	k, err := fernetKey(key)
	if err != nil {
		return "", err
	}

	tok, err := fernet.EncryptAndSign([]byte(plaintext), k)
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrEncryptFailed, err)
	}

	return hex.EncodeToString(tok), nil
}

// Decrypt reverses Encrypt. Tokens do not expire.
func Decrypt(hexToken string, key KeyMaterial) (string, error) {
	tok, err := hex.DecodeString(hexToken)
	if err != nil {
		return "", fmt.Errorf("%w: token is not hexadecimal: %v", kerrors.ErrDecryptionFailed, err)
	}

	k, err := fernetKey(key)
	if err != nil {
		return "", err
	}

	if !wellFormed(tok) {
		return "", fmt.Errorf("%w: token is truncated or has an unknown version", kerrors.ErrDecryptionFailed)
	}

	msg := fernet.VerifyAndDecrypt(tok, 0, []*fernet.Key{k})
	if msg == nil {
		return "", fmt.Errorf("%w: token is invalid or was veiled with another key", kerrors.ErrDecryptionFailed)
	}

	return string(msg), nil
}

// IsToken reports whether s looks like a hex encoded Fernet token. It does
// not verify the signature.
func IsToken(s string) bool {
	if len(s) == 0 || len(s)%2 != 0 {
		return false
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return false
	}
	return wellFormed(raw)
}

// wellFormed checks the base64 layer, the version byte and the minimum size
// of a Fernet token.
func wellFormed(tok []byte) bool {
	raw, err := base64.URLEncoding.DecodeString(string(tok))
	if err != nil {
		return false
	}
	return len(raw) >= minTokenBytes && raw[0] == fernetVersion
}

// Cipher veils and unveils values with a key derived on every call from the
// machine identity and salt.
type Cipher struct {
	Identity identity.Provider
	Salt     string
}

// Key derives the current key material.
func (c Cipher) Key() (KeyMaterial, error) {
	return DeriveKey(c.Salt, c.Identity)
}

// Veil encrypts plaintext with the current key.
func (c Cipher) Veil(plaintext string) (string, error) {
	key, err := c.Key()
	if err != nil {
		return "", err
	}
	return Encrypt(plaintext, key)
}

// Unveil decrypts a hex token with the current key.
func (c Cipher) Unveil(hexToken string) (string, error) {
	key, err := c.Key()
	if err != nil {
		return "", err
	}
	return Decrypt(hexToken, key)
}
