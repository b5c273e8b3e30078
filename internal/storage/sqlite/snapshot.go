package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/GustavoCaso/finbot/internal/ledger"
	"github.com/GustavoCaso/finbot/internal/storage"
)

// Load reads the saved snapshot. Rows come back in the order they were saved.
func (s *DB) Load(ctx context.Context) (storage.Snapshot, error) {
	var savedAt int64
	err := s.db.QueryRowContext(ctx, "SELECT saved_at FROM snapshot_meta WHERE id = 1").Scan(&savedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Snapshot{}, &storage.NotFoundError{}
		}
		return storage.Snapshot{}, err
	}

	transactions, err := s.loadTransactions(ctx)
	if err != nil {
		return storage.Snapshot{}, err
	}

	categories, err := s.loadCategories(ctx)
	if err != nil {
		return storage.Snapshot{}, err
	}

	snapshot := storage.Snapshot{Transactions: transactions, Categories: categories}
	if err = snapshot.Validate(); err != nil {
		return storage.Snapshot{}, &storage.CorruptSnapshotError{Err: err}
	}

	return snapshot, nil
}

func (s *DB) loadTransactions(ctx context.Context) ([]ledger.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, amount, description, category_id, date, type, created_at FROM transactions ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []ledger.Transaction{}
	for rows.Next() {
		var t ledger.Transaction
		var date, txType, createdAt string

		if err = rows.Scan(&t.ID, &t.Amount, &t.Description, &t.Category, &date, &txType, &createdAt); err != nil {
			return nil, err
		}

		if t.Date, err = ledger.ParseDate(date); err != nil {
			return nil, &storage.CorruptSnapshotError{Err: err}
		}

		if t.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, &storage.CorruptSnapshotError{Err: err}
		}

		t.Type = ledger.Type(txType)
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}

func (s *DB) loadCategories(ctx context.Context) ([]ledger.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, color, icon, type FROM categories ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []ledger.Category{}
	for rows.Next() {
		var c ledger.Category
		var categoryType string

		if err = rows.Scan(&c.ID, &c.Name, &c.Color, &c.Icon, &categoryType); err != nil {
			return nil, err
		}

		c.Type = ledger.CategoryType(categoryType)
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// Save replaces the stored snapshot inside a single database transaction.
func (s *DB) Save(ctx context.Context, snapshot storage.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err = replaceSnapshot(ctx, tx, snapshot); err != nil {
		rErr := tx.Rollback()
		if rErr != nil {
			return rErr
		}
		return err
	}

	return tx.Commit()
}

func replaceSnapshot(ctx context.Context, tx *sql.Tx, snapshot storage.Snapshot) error {
	for _, table := range []string{"transactions", "categories"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	insertTransaction, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions(id, position, amount, description, category_id, date, type, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insertTransaction.Close()

	for i, t := range snapshot.Transactions {
		_, err = insertTransaction.ExecContext(ctx,
			t.ID, i, t.Amount, t.Description, t.Category, t.Date.String(), string(t.Type),
			t.CreatedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", t.ID, err)
		}
	}

	insertCategory, err := tx.PrepareContext(ctx, `
		INSERT INTO categories(id, position, name, color, icon, type)
		VALUES(?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insertCategory.Close()

	for i, c := range snapshot.Categories {
		_, err = insertCategory.ExecContext(ctx, c.ID, i, c.Name, c.Color, c.Icon, string(c.Type))
		if err != nil {
			return fmt.Errorf("failed to insert category %s: %w", c.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshot_meta(id, saved_at) VALUES(1, ?)
		ON CONFLICT(id) DO UPDATE SET saved_at = excluded.saved_at`,
		time.Now().Unix(),
	)

	return err
}
