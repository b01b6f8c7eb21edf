// Package store persists analysis sessions as opaque JSON snapshots.
// A restored snapshot is byte-for-byte equivalent to what was saved, so
// re-evaluation after reload is deterministic.
package store

import (
	"context"
	"time"

	"github.com/licita-tools/pesquisa-cli/internal/model"
)

// SessionInfo is the listing view of a stored session.
type SessionInfo struct {
	ID            string             `json:"id"`
	ProcessNumber string             `json:"process_number,omitempty"`
	Type          model.AnalysisType `json:"type"`
	ItemCount     int                `json:"item_count"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// SessionFilter specifies criteria for listing sessions.
type SessionFilter struct {
	Type   model.AnalysisType `json:"type,omitempty"`
	Limit  int                `json:"limit,omitempty"`
	Offset int                `json:"offset,omitempty"`
}

// Store defines the persistence interface for analysis sessions.
type Store interface {
	SaveSession(ctx context.Context, sess *model.AnalysisSession) error
	GetSession(ctx context.Context, id string) (*model.AnalysisSession, error)
	ListSessions(ctx context.Context, filter SessionFilter) ([]SessionInfo, error)
	DeleteSession(ctx context.Context, id string) error

	Migrate(ctx context.Context) error
	Close() error
}
