package models

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Address is an embedded value, stored flattened on users and orders.
type Address struct {
	Street  string `json:"street" db:"street"`
	City    string `json:"city" db:"city"`
	ZipCode string `json:"zipCode" db:"zip_code"`
}

// User Model. IDs are document-style strings: federated accounts keep the
// identity provider's subject, direct accounts get a fresh UUID.
type User struct {
	ID           string  `json:"id" db:"id"`
	Email        string  `json:"email" db:"email"`
	PasswordHash *string `json:"-" db:"password_hash"` // NULL for federated accounts
	Name         string  `json:"name" db:"name"`
	UserType     string  `json:"userType" db:"user_type"` // 'consumer' or 'provider'
	PhoneNumber  string  `json:"phoneNumber" db:"phone_number"`
	Address      Address `json:"address"`

	// Identity provider tag, e.g. "password", "google.com", "facebook.com"
	Provider string  `json:"provider" db:"provider"`
	PhotoURL *string `json:"photoURL,omitempty" db:"photo_url"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Password Helper (Standard)
type Password struct {
	Plaintext *string
	Hash      string
}

func (p *Password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Hash = string(hash)
	p.Plaintext = &plaintextPassword
	return nil
}

func (p *Password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(plaintextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
