package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bookmatch/bookmatch/internal/auth"
	"github.com/bookmatch/bookmatch/internal/catalog"
	"github.com/bookmatch/bookmatch/internal/database"
	"github.com/bookmatch/bookmatch/internal/logging"
	"github.com/bookmatch/bookmatch/internal/validation"
)

type UserService struct {
	repo      *database.UserRepository
	hasher    *auth.Hasher
	validator *validation.Validator
}

func NewUserService(dbCtx *database.Context, hasher *auth.Hasher) *UserService {
	return &UserService{
		repo:      database.NewUserRepository(dbCtx),
		hasher:    hasher,
		validator: validation.New(),
	}
}

// Exists reports whether username is registered.
func (s *UserService) Exists(username string) bool {
	return s.repo.Exists(strings.TrimSpace(username))
}

// Get returns the user or an error wrapping database.ErrNotFound.
func (s *UserService) Get(username string) (catalog.User, error) {
	username = strings.TrimSpace(username)
	user, ok := s.repo.Load(username)
	if !ok {
		return catalog.User{}, fmt.Errorf("user %s: %w", username, database.ErrNotFound)
	}
	return user, nil
}

// Register hashes password and creates the user. It fails with ErrUserExists
// when the username is taken. A hashing failure aborts before anything is
// written.
func (s *UserService) Register(username, password string) (catalog.User, error) {
	user := catalog.User{Username: strings.TrimSpace(username)}
	if err := s.validator.Validate(user); err != nil {
		return catalog.User{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return catalog.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash

	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, database.ErrAlreadyExists) {
			return catalog.User{}, fmt.Errorf("user %s: %w", user.Username, ErrUserExists)
		}
		return catalog.User{}, fmt.Errorf("failed to save user: %w", err)
	}

	logging.Info().Str("user", user.Username).Msg("user registered")
	return user, nil
}

// Authenticate checks password against the stored hash. A hash written with a
// different algorithm than the configured one is replaced after a successful
// check; failing to replace it is logged and does not fail the login.
func (s *UserService) Authenticate(username, password string) (catalog.User, error) {
	user, err := s.Get(username)
	if err != nil {
		return catalog.User{}, err
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		logging.Debug().Str("user", username).Msg("password mismatch")
		return catalog.User{}, ErrInvalidCredentials
	}

	if s.hasher.NeedsRehash(user.PasswordHash) {
		s.rehash(&user, password)
	}

	return user, nil
}

func (s *UserService) rehash(user *catalog.User, password string) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		logging.Warn().Err(err).Str("user", user.Username).Msg("failed to upgrade password hash")
		return
	}

	upgraded := *user
	upgraded.PasswordHash = hash
	if err := s.repo.Save(upgraded); err != nil {
		logging.Warn().Err(err).Str("user", user.Username).Msg("failed to upgrade password hash")
		return
	}

	*user = upgraded
	logging.Info().
		Str("user", user.Username).
		Str("algorithm", string(s.hasher.Algorithm())).
		Msg("password hash upgraded")
}
