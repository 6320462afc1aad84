package database

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/bookmatch/bookmatch/internal/catalog"
	"github.com/bookmatch/bookmatch/internal/logging"
)

// HistoryRepository maps view histories to and from history.json.
type HistoryRepository struct {
	ctx *Context
}

func NewHistoryRepository(dbCtx *Context) *HistoryRepository {
	return &HistoryRepository{ctx: dbCtx}
}

// Load returns the history of username. A user without history gets an empty
// one.
func (r *HistoryRepository) Load(username string) catalog.History {
	history := catalog.History{Username: username}

	raw, ok := r.ctx.History.Get(username)
	if !ok {
		return history
	}

	var isbns []string
	if err := json.Unmarshal(raw, &isbns); err != nil {
		logging.Warn().Err(err).Str("user", username).Msg("ignoring malformed history")
		return history
	}
	for _, isbn := range isbns {
		history.Add(isbn)
	}
	return history
}

// Save writes history, leaving other users' histories untouched.
func (r *HistoryRepository) Save(history catalog.History) error {
	if history.Username == "" {
		return fmt.Errorf("history repository: missing username")
	}

	isbns := history.ISBNs
	if isbns == nil {
		isbns = []string{}
	}

	return r.ctx.History.Update(func(doc Document) error {
		raw, err := json.Marshal(isbns)
		if err != nil {
			return fmt.Errorf("failed to encode history: %w", err)
		}
		doc[history.Username] = raw
		return nil
	})
}

// Clear empties the history of username.
func (r *HistoryRepository) Clear(username string) error {
	return r.Save(catalog.History{Username: username})
}
