package database

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/bookmatch/bookmatch/internal/catalog"
	"github.com/bookmatch/bookmatch/internal/logging"
)

// UserRepository maps users to and from users.json.
type UserRepository struct {
	ctx *Context
}

func NewUserRepository(dbCtx *Context) *UserRepository {
	return &UserRepository{ctx: dbCtx}
}

func (r *UserRepository) Exists(username string) bool {
	return r.ctx.Users.Has(username)
}

func (r *UserRepository) Load(username string) (catalog.User, bool) {
	raw, ok := r.ctx.Users.Get(username)
	if !ok {
		return catalog.User{}, false
	}

	var rec userRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		logging.Warn().Err(err).Str("user", username).Msg("ignoring malformed user")
		return catalog.User{}, false
	}
	return catalog.User{Username: username, PasswordHash: rec.Password}, true
}

// Save writes user, leaving every other user untouched.
func (r *UserRepository) Save(user catalog.User) error {
	return r.put(user, false)
}

// Create writes user unless the username is taken, in which case it returns
// ErrAlreadyExists. The check and the write share one load-modify-save cycle.
func (r *UserRepository) Create(user catalog.User) error {
	return r.put(user, true)
}

func (r *UserRepository) put(user catalog.User, mustBeNew bool) error {
	if user.Username == "" {
		return fmt.Errorf("user repository: missing username")
	}

	return r.ctx.Users.Update(func(doc Document) error {
		if _, ok := doc[user.Username]; ok && mustBeNew {
			return ErrAlreadyExists
		}
		raw, err := json.Marshal(userRecord{Password: user.PasswordHash})
		if err != nil {
			return fmt.Errorf("failed to encode user: %w", err)
		}
		doc[user.Username] = raw
		return nil
	})
}
