// Package session persists the logged-in user's credentials between runs.
//
// The Store is the single owner of the cached state: bearer token, user
// profile and the two provider API keys. Workflows receive it explicitly and
// never read the database themselves.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/nexuspost/internal/client/models"
	"github.com/dmitrijs2005/nexuspost/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/nexuspost/internal/dbx"
)

// Persisted key names. They are fixed so that every component sees the same
// state.
const (
	KeyToken     = "token"
	KeyUser      = "user"
	KeyHFAPIKey  = "hf_api_key"
	KeyGeminiKey = "gemini_api_key"
)

// Store is an SQLite-backed session store.
type Store struct {
	db *sql.DB
}

// NewStore wraps an already migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) repo(tx dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(tx)
}

// Get returns the current snapshot. Missing fields come back as zero values;
// the user and keys are nil when nothing was stored for them.
func (s *Store) Get(ctx context.Context) (models.Session, error) {
	values, err := s.repo(s.db).List(ctx)
	if err != nil {
		return models.Session{}, err
	}

	sess := models.Session{Token: values[KeyToken]}

	if raw := values[KeyUser]; raw != "" {
		var u models.User
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			return models.Session{}, fmt.Errorf("decode stored user: %w", err)
		}
		sess.User = &u
	}

	hf, gm := values[KeyHFAPIKey], values[KeyGeminiKey]
	if hf != "" || gm != "" {
		sess.ProviderKeys = &models.ProviderKeys{HuggingFace: hf, Gemini: gm}
	}

	return sess, nil
}

// Set writes every present field of sess in one transaction. An empty token
// is skipped, as are nil User and ProviderKeys; use Clear to remove state.
func (s *Store) Set(ctx context.Context, sess models.Session) error {
	var userJSON string
	if sess.User != nil {
		b, err := json.Marshal(sess.User)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		userJSON = string(b)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if sess.Token != "" {
			if err := repo.Set(ctx, KeyToken, sess.Token); err != nil {
				return err
			}
		}
		if sess.User != nil {
			if err := repo.Set(ctx, KeyUser, userJSON); err != nil {
				return err
			}
		}
		if sess.ProviderKeys != nil {
			if err := setKeys(ctx, repo, *sess.ProviderKeys); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetProviderKeys stores both provider keys atomically.
func (s *Store) SetProviderKeys(ctx context.Context, keys models.ProviderKeys) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return setKeys(ctx, s.repo(tx), keys)
	})
}

func setKeys(ctx context.Context, repo metadata.Repository, keys models.ProviderKeys) error {
	if err := repo.Set(ctx, KeyHFAPIKey, keys.HuggingFace); err != nil {
		return err
	}
	return repo.Set(ctx, KeyGeminiKey, keys.Gemini)
}

// Clear removes the token, the user and both provider keys.
func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		for _, k := range []string{KeyToken, KeyUser, KeyHFAPIKey, KeyGeminiKey} {
			if err := repo.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	})
}

// Token returns the cached bearer token, or "" when logged out.
func (s *Store) Token(ctx context.Context) (string, error) {
	return s.repo(s.db).Get(ctx, KeyToken)
}

// IsAuthenticated reports whether a token is cached. Read errors count as
// logged out.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	t, err := s.Token(ctx)
	return err == nil && t != ""
}
