package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the closed set of session roles. The zero value is unauthenticated.
type Role string

const (
	RoleNone    Role = ""
	RoleStaff   Role = "staff"
	RoleStudent Role = "student"
	RoleSupport Role = "support"
)

// Valid reports whether r is one of the authenticated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStaff, RoleStudent, RoleSupport:
		return true
	case RoleNone:
		return false
	default:
		return false
	}
}

// AuthUser is the signed-in principal. ID and Name are empty for support.
type AuthUser struct {
	Role Role   `json:"role"`
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Authenticated reports whether the user carries a real role.
func (u AuthUser) Authenticated() bool {
	return u.Role.Valid()
}

// StudentLoginRequest authenticates a student or parent.
type StudentLoginRequest struct {
	CPF       string `json:"cpf" validate:"required"`
	BirthDate string `json:"birthDate" validate:"required"`
}

// StaffLoginRequest authenticates a staff member by CPF alone.
type StaffLoginRequest struct {
	CPF string `json:"cpf" validate:"required"`
}

// SupportLoginRequest authenticates the support tier.
type SupportLoginRequest struct {
	Secret string `json:"secret" validate:"required"`
}

// LoginResponse returns the issued token and user info.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	User        AuthUser  `json:"user"`
	IssuedAt    time.Time `json:"issued_at"`
}

// JWTClaims represents the JWT payload; the subject holds AuthUser.ID.
type JWTClaims struct {
	Role Role   `json:"role"`
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// User converts the claims back into the session principal.
func (c JWTClaims) User() AuthUser {
	return AuthUser{Role: c.Role, ID: c.Subject, Name: c.Name}
}
