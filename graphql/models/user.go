package models

import (
	"strconv"
	"time"

	gql "github.com/graph-gophers/graphql-go"

	entity "forum.GO/model/entity"
)

// --- User ---

type User struct {
	ID       gql.ID
	Username string
	Slug     string
	Email    string
	JoinedAt string
	IsAdmin  bool
}

// NewUser maps a user row to its GraphQL shape.
func NewUser(u *entity.User) *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:       gql.ID(strconv.FormatUint(uint64(u.UserID), 10)),
		Username: u.Username,
		Slug:     u.Slug,
		Email:    u.Email,
		JoinedAt: u.JoinedAt.Format(time.RFC3339),
		IsAdmin:  u.IsAdmin,
	}
}

// --- Auth payloads ---

type LoginPayload struct {
	User  *User
	Token *string
	Error *string
}

type ValidationError struct {
	Field    string
	Messages []string
}

type RegisterPayload struct {
	User   *User
	Errors *[]ValidationError
}
