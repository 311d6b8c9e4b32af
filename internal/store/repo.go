package store

import (
	"context"
	"errors"

	"github.com/Zweer/pill-bot/internal/domain"
)

var (
	// ErrNotFound is returned when no record exists for the requested key.
	ErrNotFound = errors.New("not found")
	// ErrNoQuotes is returned when a pick is requested against an empty
	// quote collection.
	ErrNoQuotes = errors.New("quote collection is empty")
)

// Users defines storage operations for user registration records.
type Users interface {
	// Get returns the record for chatID or ErrNotFound.
	Get(ctx context.Context, chatID int64) (*domain.User, error)
	// Put is a full upsert keyed by chat id, no partial patch semantics.
	Put(ctx context.Context, u *domain.User) error
	// ScanEligible returns every user with notifications enabled whose
	// alert hour equals hour. The underlying storage may paginate; the
	// result is still complete.
	ScanEligible(ctx context.Context, hour int) ([]domain.User, error)
}

// Quotes defines storage operations for the quote collection.
type Quotes interface {
	// LoadAll bulk-writes texts under the given category. Records are
	// keyed by content hash, so re-running with the same texts is
	// idempotent. Returns the number of records written.
	LoadAll(ctx context.Context, category string, texts []string) (int, error)
	// PickOne returns the first quote at or after seed in the cyclic id
	// keyspace, or ErrNoQuotes.
	PickOne(ctx context.Context, seed string) (*domain.Quote, error)
}
