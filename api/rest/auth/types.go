package auth

import "codeberg.org/iamhere/server/iamhere/users"

// AuthResponse is returned after a successful OAuth callback
type AuthResponse struct {
	User  *users.User `json:"user"`
	Token string      `json:"token"`
}
