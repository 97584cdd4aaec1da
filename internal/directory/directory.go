package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/akazarov/authgate/internal/common"
	"github.com/akazarov/authgate/internal/kvstore"
)

// Directory is the user-record repository.
type Directory interface {
	// FindByEmail returns the user whose stored email is exactly equal to
	// email (no case folding), or common.ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Create registers a new user with role "user" and a fresh id. Fails
	// with common.ErrDuplicateEmail when the email is already taken.
	Create(ctx context.Context, name, email string) (*User, error)

	// List returns all users in insertion order.
	List(ctx context.Context) ([]User, error)
}

// usersKey is the kvstore key holding the whole directory as one JSON array.
const usersKey = "db_users"

// KVDirectory persists the directory as a single JSON document in a
// kvstore.Store. Reads and writes cover the whole collection; the last
// write wins.
type KVDirectory struct {
	store kvstore.Store
}

func NewKVDirectory(store kvstore.Store) *KVDirectory {
	return &KVDirectory{store: store}
}

// seedUsers are the fixed accounts present on first run, before anything has
// been written to the store.
func seedUsers() []User {
	now := time.Now().UTC()
	return []User{
		{ID: "1", Name: "Admin User", Email: "admin@example.com", Role: RoleAdmin, CreatedAt: now},
		{ID: "2", Name: "Jane Doe", Email: "user@example.com", Role: RoleUser, CreatedAt: now},
	}
}

func (d *KVDirectory) load(ctx context.Context) ([]User, error) {
	raw, err := d.store.Get(ctx, usersKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load user directory: %w", err)
	}
	if raw == nil {
		return seedUsers(), nil
	}

	var users []User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("failed to decode user directory: %w", err)
	}
	return users, nil
}

func (d *KVDirectory) save(ctx context.Context, users []User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode user directory: %w", err)
	}
	if err := d.store.Set(ctx, usersKey, raw); err != nil {
		return fmt.Errorf("failed to save user directory: %w", err)
	}
	return nil
}

func (d *KVDirectory) FindByEmail(ctx context.Context, email string) (*User, error) {
	users, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			u := users[i]
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (d *KVDirectory) Create(ctx context.Context, name, email string) (*User, error) {
	users, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return nil, common.ErrDuplicateEmail
		}
	}

	user := User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Role:      RoleUser,
		CreatedAt: time.Now().UTC(),
	}

	users = append(users, user)
	if err := d.save(ctx, users); err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *KVDirectory) List(ctx context.Context) ([]User, error) {
	return d.load(ctx)
}
