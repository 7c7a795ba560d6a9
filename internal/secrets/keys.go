package secrets

import (
	"crypto/md5" // #nosec G501 -- fixed by the key derivation compatibility contract.
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	kerrors "github.com/PolarWolf314/conson/internal/errors"
	"github.com/PolarWolf314/conson/internal/identity"
)

// KeyMaterialLength is the length of a derived key material string.
const KeyMaterialLength = 44

// KeyMaterial is the Fernet key string derived from the machine UUID and a
// salt. It is recomputed for every operation and never written to disk.
type KeyMaterial string

// SaltBytes converts a salt into the bytes hashed during key derivation.
//
// Each rune is written as its hex ordinal without zero padding and the
// concatenation is decoded as hex. Runes below 0x10 or above 0xff therefore
// shift the byte boundaries, and a concatenation of odd length is rejected
// with ErrInvalidSalt. Existing veiled values depend on this exact mapping.
func SaltBytes(salt string) ([]byte, error) {
	var b strings.Builder
	for _, r := range salt {
		b.WriteString(strconv.FormatInt(int64(r), 16))
	}

	raw, err := hex.DecodeString(b.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %q cannot be converted to key bytes: %v", kerrors.ErrInvalidSalt, salt, err)
	}
	return raw, nil
}

// SaltDigest returns the lowercase hex MD5 digest of SaltBytes(salt).
func SaltDigest(salt string) (string, error) {
	raw, err := SaltBytes(salt)
	if err != nil {
		return "", err
	}
	sum := md5.Sum(raw) // #nosec G401
	return hex.EncodeToString(sum[:]), nil
}

// DeriveKey builds the key material for salt on the machine reported by p.
//
// The 44 characters are spliced from the machine UUID (u) and the salt
// digest (s) as
//
//	u[0:16] + s[16:32] + s[0:2] + s[5:7] + u[7:9] + s[16:18] + u[21:23] + u[29] + "="
//
// This layout is a compatibility contract with previously veiled values. It
// is not a reviewed KDF.
func DeriveKey(salt string, p identity.Provider) (KeyMaterial, error) {
	s, err := SaltDigest(salt)
	if err != nil {
		return "", err
	}

	u, err := p.MachineUUID()
	if err != nil {
		return "", err
	}
	if len(u) != identity.UUIDLength {
		return "", fmt.Errorf("%w: machine uuid has %d characters, want %d",
			kerrors.ErrIdentityUnavailable, len(u), identity.UUIDLength)
	}

	key := u[:16] + s[16:32] + s[:2] + s[5:7] + u[7:9] + s[16:18] + u[21:23] + u[29:30] + "="
	return KeyMaterial(key), nil
}
