package domain

import (
	"context"
)

// interface for workspace storage
type WorkspaceRepository interface {
	// Replace swaps every collection for the given ones
	Replace(ctx context.Context, ws Workspace) error
	Snapshot(ctx context.Context) (*Workspace, error)
	// Update applies fn to a copy of the workspace and stores the result atomically.
	// An error from fn leaves the store untouched.
	Update(ctx context.Context, fn func(ws *Workspace) error) error
}

// the interface for negative keyword list storage
type NegativeListRepository interface {
	List(ctx context.Context) ([]NegativeKeywordList, error)
	Get(ctx context.Context, id string) (*NegativeKeywordList, error)
	// Save inserts or replaces by ID, keeping insertion order
	Save(ctx context.Context, list NegativeKeywordList) error
	// Insert adds a new list and fails with ErrInvalidInput when the ID is taken
	Insert(ctx context.Context, list NegativeKeywordList) error
	// Update applies fn to a copy of the list and stores it atomically.
	// An error from fn leaves the list untouched.
	Update(ctx context.Context, id string, fn func(list *NegativeKeywordList) error) (*NegativeKeywordList, error)
	Delete(ctx context.Context, id string) error
}

// interface for the optional remote provider
type RemoteClient interface {
	FetchRows(ctx context.Context) ([]Row, error)
	PushSnapshot(ctx context.Context, doc ExportDocument) error
}
