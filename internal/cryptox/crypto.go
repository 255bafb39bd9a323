// Package cryptox implements credential verification for the session
// service. Verification is pluggable: the mock backend accepts one shared
// password for every account, while Argon2Verifier does real
// hash-and-compare.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"golang.org/x/crypto/argon2"
)

// CredentialVerifier turns passwords into stored credential material and
// checks login attempts against it.
type CredentialVerifier interface {
	// Hash returns what should be stored for a new password.
	Hash(password string) (string, error)
	// Verify reports whether password matches the stored credential.
	Verify(stored, password string) bool
}

// DeriveKey stretches password with salt using Argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// MakeVerifier hashes a derived key so the key itself is never stored.
func MakeVerifier(key []byte) []byte {
	sum := sha256.Sum256(key)
	return sum[:]
}

// SharedPasswordVerifier reproduces the mock dataset's behaviour: every
// account accepts the same password and stored credentials are ignored.
type SharedPasswordVerifier struct {
	Password string
}

func NewSharedPasswordVerifier(password string) *SharedPasswordVerifier {
	return &SharedPasswordVerifier{Password: password}
}

// Hash stores the password as given.
func (v *SharedPasswordVerifier) Hash(password string) (string, error) {
	return password, nil
}

func (v *SharedPasswordVerifier) Verify(_ string, password string) bool {
	return subtle.ConstantTimeCompare([]byte(password), []byte(v.Password)) == 1
}

const argon2Prefix = "argon2id"

// Argon2Verifier stores "argon2id$<salt>$<verifier>" (base64, unpadded).
type Argon2Verifier struct {
	SaltLength int
}

func NewArgon2Verifier() *Argon2Verifier {
	return &Argon2Verifier{SaltLength: 16}
}

func (v *Argon2Verifier) Hash(password string) (string, error) {
	salt := common.GenerateRandByteArray(v.SaltLength)
	key := DeriveKey([]byte(password), salt)
	defer common.WipeByteArray(key)

	enc := base64.RawStdEncoding
	return fmt.Sprintf("%s$%s$%s", argon2Prefix, enc.EncodeToString(salt), enc.EncodeToString(MakeVerifier(key))), nil
}

func (v *Argon2Verifier) Verify(stored, password string) bool {
	salt, verifier, ok := decodeArgon2(stored)
	if !ok {
		return false
	}
	key := DeriveKey([]byte(password), salt)
	defer common.WipeByteArray(key)
	return subtle.ConstantTimeCompare(verifier, MakeVerifier(key)) == 1
}

func decodeArgon2(stored string) (salt, verifier []byte, ok bool) {
	parts := strings.Split(stored, "$")
	if len(parts) != 3 || parts[0] != argon2Prefix {
		return nil, nil, false
	}
	enc := base64.RawStdEncoding
	salt, err := enc.DecodeString(parts[1])
	if err != nil {
		return nil, nil, false
	}
	verifier, err = enc.DecodeString(parts[2])
	if err != nil {
		return nil, nil, false
	}
	return salt, verifier, true
}

// NewVerifier picks a verifier by name: "argon2" or "mock" (the default).
func NewVerifier(kind, sharedPassword string) (CredentialVerifier, error) {
	switch strings.ToLower(kind) {
	case "", "mock":
		return NewSharedPasswordVerifier(sharedPassword), nil
	case "argon2":
		return NewArgon2Verifier(), nil
	default:
		return nil, fmt.Errorf("unknown credential verifier %q", kind)
	}
}
