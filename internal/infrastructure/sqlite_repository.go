package infrastructure

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"adsplanner/internal/domain"
	"adsplanner/pkg/logger"

	"github.com/mattn/go-sqlite3"
)

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// loadPayloads decodes every row of table in position order
func loadPayloads[T any](ctx context.Context, q queryer, table string) ([]T, error) {
	rows, err := q.QueryContext(ctx, "SELECT payload FROM "+table+" ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		var item T
		if err := json.Unmarshal([]byte(payload), &item); err != nil {
			return nil, fmt.Errorf("failed to decode %s row: %w", table, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// writePayloads replaces the content of table with items
func writePayloads[T any](ctx context.Context, tx *sql.Tx, table string, items []T, idOf func(T) string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO "+table+" (position, id, payload) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare %s insert: %w", table, err)
	}
	defer stmt.Close()

	for i, item := range items {
		payload, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to encode %s row: %w", table, err)
		}
		if _, err := stmt.ExecContext(ctx, i, idOf(item), string(payload)); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}
	return nil
}

func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SQLiteWorkspaceRepository stores each collection in its own table
type SQLiteWorkspaceRepository struct {
	db     *SQLiteDB
	logger *logger.Logger
}

func NewSQLiteWorkspaceRepository(db *SQLiteDB, logger *logger.Logger) *SQLiteWorkspaceRepository {
	return &SQLiteWorkspaceRepository{db: db, logger: logger}
}

func (r *SQLiteWorkspaceRepository) Replace(ctx context.Context, ws domain.Workspace) error {
	err := withTx(ctx, r.db.DB, func(tx *sql.Tx) error {
		return writeWorkspace(ctx, tx, ws)
	})
	if err != nil {
		return err
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"campaigns": len(ws.Campaigns),
		"ad_groups": len(ws.AdGroups),
		"keywords":  len(ws.Keywords),
		"ads":       len(ws.Ads),
	}).Debug("Replaced workspace in sqlite")
	return nil
}

func (r *SQLiteWorkspaceRepository) Snapshot(ctx context.Context) (*domain.Workspace, error) {
	return readWorkspace(ctx, r.db.DB)
}

func (r *SQLiteWorkspaceRepository) Update(ctx context.Context, fn func(ws *domain.Workspace) error) error {
	return withTx(ctx, r.db.DB, func(tx *sql.Tx) error {
		ws, err := readWorkspace(ctx, tx)
		if err != nil {
			return err
		}
		if err := fn(ws); err != nil {
			return err
		}
		return writeWorkspace(ctx, tx, *ws)
	})
}

func readWorkspace(ctx context.Context, q queryer) (*domain.Workspace, error) {
	var ws domain.Workspace
	var err error

	if ws.Campaigns, err = loadPayloads[domain.Campaign](ctx, q, "campaigns"); err != nil {
		return nil, err
	}
	if ws.AdGroups, err = loadPayloads[domain.AdGroup](ctx, q, "ad_groups"); err != nil {
		return nil, err
	}
	if ws.Keywords, err = loadPayloads[domain.Keyword](ctx, q, "keywords"); err != nil {
		return nil, err
	}
	if ws.Ads, err = loadPayloads[domain.Ad](ctx, q, "ads"); err != nil {
		return nil, err
	}
	return &ws, nil
}

func writeWorkspace(ctx context.Context, tx *sql.Tx, ws domain.Workspace) error {
	if err := writePayloads(ctx, tx, "campaigns", ws.Campaigns, func(c domain.Campaign) string { return c.ID }); err != nil {
		return err
	}
	if err := writePayloads(ctx, tx, "ad_groups", ws.AdGroups, func(ag domain.AdGroup) string { return ag.ID }); err != nil {
		return err
	}
	if err := writePayloads(ctx, tx, "keywords", ws.Keywords, func(kw domain.Keyword) string { return kw.ID }); err != nil {
		return err
	}
	return writePayloads(ctx, tx, "ads", ws.Ads, func(ad domain.Ad) string { return ad.ID })
}

type SQLiteNegativeListRepository struct {
	db     *SQLiteDB
	logger *logger.Logger
}

func NewSQLiteNegativeListRepository(db *SQLiteDB, logger *logger.Logger) *SQLiteNegativeListRepository {
	return &SQLiteNegativeListRepository{db: db, logger: logger}
}

func (r *SQLiteNegativeListRepository) List(ctx context.Context) ([]domain.NegativeKeywordList, error) {
	return loadPayloads[domain.NegativeKeywordList](ctx, r.db.DB, "negative_lists")
}

func (r *SQLiteNegativeListRepository) Get(ctx context.Context, id string) (*domain.NegativeKeywordList, error) {
	return readList(ctx, r.db.DB, id)
}

type rowQueryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func readList(ctx context.Context, q rowQueryer, id string) (*domain.NegativeKeywordList, error) {
	var payload string
	err := q.QueryRowContext(ctx, "SELECT payload FROM negative_lists WHERE id = ?", id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("negative list %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query negative list: %w", err)
	}

	var list domain.NegativeKeywordList
	if err := json.Unmarshal([]byte(payload), &list); err != nil {
		return nil, fmt.Errorf("failed to decode negative list: %w", err)
	}
	return &list, nil
}

func (r *SQLiteNegativeListRepository) Insert(ctx context.Context, list domain.NegativeKeywordList) error {
	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode negative list: %w", err)
	}

	_, err = r.db.ExecContext(ctx, "INSERT INTO negative_lists (id, payload) VALUES (?, ?)", list.ID, string(payload))
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("%w: negative list %s already exists", domain.ErrInvalidInput, list.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert negative list: %w", err)
	}
	return nil
}

func (r *SQLiteNegativeListRepository) Update(ctx context.Context, id string, fn func(list *domain.NegativeKeywordList) error) (*domain.NegativeKeywordList, error) {
	var updated *domain.NegativeKeywordList
	err := withTx(ctx, r.db.DB, func(tx *sql.Tx) error {
		list, err := readList(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(list); err != nil {
			return err
		}
		list.ID = id

		payload, err := json.Marshal(list)
		if err != nil {
			return fmt.Errorf("failed to encode negative list: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "UPDATE negative_lists SET payload = ? WHERE id = ?", string(payload), id); err != nil {
			return fmt.Errorf("failed to update negative list: %w", err)
		}
		updated = list
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.WithContext(ctx).WithField("list_id", id).Debug("Updated negative list in sqlite")
	return updated, nil
}

// Save updates in place so an existing list keeps its position
func (r *SQLiteNegativeListRepository) Save(ctx context.Context, list domain.NegativeKeywordList) error {
	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode negative list: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO negative_lists (id, payload) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload`,
		list.ID, string(payload))
	if err != nil {
		return fmt.Errorf("failed to save negative list: %w", err)
	}

	r.logger.WithContext(ctx).WithField("list_id", list.ID).Debug("Stored negative list in sqlite")
	return nil
}

func (r *SQLiteNegativeListRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM negative_lists WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete negative list: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("negative list %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
