package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/kenmaca/frrand-api/internal/users"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type Service struct {
	directory users.Directory
}

func NewService(directory users.Directory) *Service {
	return &Service{directory: directory}
}

// Login verifies credentials against the user directory and returns the
// matching user. Account registration is handled out of band.
func (s *Service) Login(ctx context.Context, username, password string) (*users.User, error) {
	user, err := s.directory.FindByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(user.Password),
		[]byte(password),
	)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
