package user

import "time"

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

type User struct {
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"`
	FirstName    *string `json:"firstName,omitempty"`
	LastName     *string `json:"lastName,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	Role         Role    `json:"role"`
	Enabled      bool    `json:"enabled"`
	CreatedAt    time.Time
}

type RegisterParams struct {
	Username  string
	Email     string
	Password  string
	FirstName *string
	LastName  *string
	Phone     *string
	Address   *string
}
