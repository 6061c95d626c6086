package service

import (
	"github.com/JoshuaHenriques/store-management-rest-api/internal/server"
	"github.com/clerk/clerk-sdk-go/v2"
)

// AuthService configures Clerk for verifying admin session tokens.
type AuthService struct {
	server *server.Server
}

func NewAuthService(s *server.Server) *AuthService {
	clerk.SetKey(s.Config.Auth.SecretKey)
	return &AuthService{
		server: s,
	}
}
