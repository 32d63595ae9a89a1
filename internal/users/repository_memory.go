package users

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type InMemoryDirectory struct {
	users map[string]*User
}

func NewInMemoryDirectory() *InMemoryDirectory {
	return &InMemoryDirectory{
		users: make(map[string]*User),
	}
}

// Add seeds a user into the directory, generating an ID if unset.
func (d *InMemoryDirectory) Add(user *User) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	d.users[user.Username] = user
}

func (d *InMemoryDirectory) Exists(ctx context.Context, username string) (bool, error) {
	_, exists := d.users[username]
	return exists, nil
}

func (d *InMemoryDirectory) FindByUsername(ctx context.Context, username string) (*User, error) {
	user, ok := d.users[username]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}
