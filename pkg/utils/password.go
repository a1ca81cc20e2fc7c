package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const saltLength = 16

// Argon2Params are the Argon2id cost parameters used for new hashes.
// Existing records carry their own parameters and are verified with those.
type Argon2Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	KeyLength   uint32
}

// DefaultArgon2Params returns m=64MiB, t=3, p=2 with a 32-byte key.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		KeyLength:   32,
	}
}

// PasswordHasher produces and checks self-describing password hash records.
type PasswordHasher struct {
	params Argon2Params
}

func NewPasswordHasher(params Argon2Params) *PasswordHasher {
	return &PasswordHasher{params: params}
}

// Hash hashes a password using Argon2id.
// Format: $argon2id$v=19$m=65536,t=3,p=2$salt$hash
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	p := h.params
	hash := argon2.IDKey([]byte(password), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Iterations, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// Verify reports whether password matches record. Malformed records never match.
// bcrypt records written by the previous Node backend are still accepted.
func (h *PasswordHasher) Verify(password, record string) bool {
	if isBcryptRecord(record) {
		return bcrypt.CompareHashAndPassword([]byte(record), []byte(password)) == nil
	}

	p, salt, hash, err := decodeArgon2Record(record)
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)
	return subtle.ConstantTimeCompare(computed, hash) == 1
}

func isBcryptRecord(record string) bool {
	return strings.HasPrefix(record, "$2a$") ||
		strings.HasPrefix(record, "$2b$") ||
		strings.HasPrefix(record, "$2y$")
}

func decodeArgon2Record(record string) (Argon2Params, []byte, []byte, error) {
	var p Argon2Params

	parts := strings.Split(record, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return p, nil, nil, fmt.Errorf("invalid hash format")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, nil, nil, err
	}
	if version != argon2.Version {
		return p, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return p, nil, nil, err
	}
	if p.Memory == 0 || p.Iterations == 0 || p.Parallelism == 0 {
		return p, nil, nil, fmt.Errorf("invalid argon2 parameters")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, err
	}

	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return p, nil, nil, err
	}
	if len(hash) == 0 {
		return p, nil, nil, fmt.Errorf("empty hash")
	}
	p.KeyLength = uint32(len(hash))

	return p, salt, hash, nil
}
