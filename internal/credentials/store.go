package credentials

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/akazarov/authgate/internal/kvstore"
)

// credsKey is the kvstore key holding all credential records as one JSON
// object (email → hash).
const credsKey = "db_creds"

// Store keeps exactly one credential record per registered email, persisted
// as a single JSON document next to the user directory. Like the directory,
// the collection is read and written whole.
type Store struct {
	store  kvstore.Store
	hasher Hasher

	seedOnce sync.Once
	seed     map[string]string
	seedErr  error
}

func NewStore(store kvstore.Store, hasher Hasher) *Store {
	return &Store{store: store, hasher: hasher}
}

// seedCreds builds the credential records for the fixed first-run accounts.
// Hashed lazily, once per Store, since bcrypt is not free.
func (s *Store) seedCreds() (map[string]string, error) {
	s.seedOnce.Do(func() {
		seed := make(map[string]string, 2)
		for email, password := range map[string]string{
			"admin@example.com": "admin123",
			"user@example.com":  "user123",
		} {
			hash, err := s.hasher.Hash(password)
			if err != nil {
				s.seedErr = fmt.Errorf("failed to seed credentials: %w", err)
				return
			}
			seed[email] = hash
		}
		s.seed = seed
	})
	return s.seed, s.seedErr
}

func (s *Store) load(ctx context.Context) (map[string]string, error) {
	raw, err := s.store.Get(ctx, credsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	if raw == nil {
		return s.seedCreds()
	}

	var creds map[string]string
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, fmt.Errorf("failed to decode credentials: %w", err)
	}
	return creds, nil
}

func (s *Store) save(ctx context.Context, creds map[string]string) error {
	raw, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	if err := s.store.Set(ctx, credsKey, raw); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	return nil
}

// Set hashes password and stores it as the credential record for email,
// replacing any previous record.
func (s *Store) Set(ctx context.Context, email, password string) error {
	creds, err := s.load(ctx)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	creds[email] = hash
	return s.save(ctx, creds)
}

// Verify reports whether a credential record exists for email and matches
// password. A missing record is (false, nil), not an error.
func (s *Store) Verify(ctx context.Context, email, password string) (bool, error) {
	creds, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	hash, ok := creds[email]
	if !ok {
		return false, nil
	}
	return s.hasher.Compare(hash, password), nil
}
