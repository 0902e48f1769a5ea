package model

import (
	"time"

	"github.com/secmon-lab/aegis/pkg/domain/types"
)

// User is an account of the service
type User struct {
	ID           string
	Email        string
	FullName     string
	JobTitle     string
	Area         string
	Phone        string
	Role         types.Role
	Active       bool
	PasswordHash string `masq:"secret"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Registration is the sign-up form of a new user
type Registration struct {
	Email           string
	FullName        string
	JobTitle        string
	Area            string
	Phone           string
	Password        string `masq:"secret"`
	PasswordConfirm string `masq:"secret"`
}

func (x *Registration) Fields() Fields {
	return Fields{
		"email":            x.Email,
		"full_name":        x.FullName,
		"password":         x.Password,
		"password_confirm": x.PasswordConfirm,
	}
}
