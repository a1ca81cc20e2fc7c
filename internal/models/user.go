package models

import "time"

// User is the persisted account record. Password holds a hash record and
// Aadhaar holds a cipher envelope; neither is ever the raw value.
type User struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"` // Don't return password in JSON
	Aadhaar  string `json:"-"` // Encrypted; decrypted only for the profile read
}

// Profile is the plaintext projection returned to the account owner.
type Profile struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Aadhaar string `json:"aadhaar"`
}
