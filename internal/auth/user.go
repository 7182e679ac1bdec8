// Package auth holds the server's user accounts. A user carries an
// ordered clearance level: admins may do anything, read-write users may
// change schemas and rows, read-only users may only run queries.
package auth

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role is an ordered clearance level; a lower value clears everything a
// higher one does.
type Role int

const (
	RoleAdmin Role = iota
	RoleReadWrite
	RoleReadOnly
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleReadWrite:
		return "read-write"
	case RoleReadOnly:
		return "read-only"
	}
	return "unknown"
}

type User struct {
	Id       string
	Name     string
	Password []byte
	Role     Role
}

// NewUser hashes the password with bcrypt (which caps passwords at 72
// bytes) and assigns a fresh uuid.
func NewUser(name, password string, role Role) *User {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return &User{uuid.New().String(), name, hashed, role}
}

func (u *User) ValidatePassword(password string) bool {
	return bcrypt.CompareHashAndPassword(u.Password, []byte(password)) == nil
}

// HasClearance reports whether the user's role clears the required one.
func (u *User) HasClearance(r Role) bool { return u.Role <= r }
