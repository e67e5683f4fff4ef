package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// List returns all todos ordered by ascending ID, which matches insertion
// order since IDs are monotonic. Returns an empty slice if the table has
// no rows.
func (s *Store) List(ctx context.Context) ([]Todo, error) {
	var rows []todoRow

	err := s.db.SelectContext(ctx, &rows,
		"SELECT id, title, completed FROM todos ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}

	todos := make([]Todo, len(rows))
	for i, r := range rows {
		todos[i] = r.todo()
	}

	return todos, nil
}

// Add inserts a new todo and returns it with the database-assigned ID.
// The title is trimmed and must be non-empty; Add returns ErrTitleRequired
// otherwise. An unspecified completed value defaults to false.
//
// IDs are never reused: the AUTOINCREMENT counter advances permanently even
// if the row is later deleted.
func (s *Store) Add(ctx context.Context, title string, completed Completion) (*Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	done := completed.OrDefault(false)

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO todos (title, completed) VALUES (?, ?)",
		title, boolToInt(done))
	if err != nil {
		return nil, fmt.Errorf("failed to insert todo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get insert ID: %w", err)
	}

	return &Todo{ID: id, Title: title, Completed: done}, nil
}

// Update merges the patch into the stored row and writes it back. Fields
// the patch omits keep their stored values. Returns false, without error,
// when the ID is not positive or no such row exists.
//
// A patched title is trimmed and must be non-empty; Update returns
// ErrTitleRequired otherwise.
func (s *Store) Update(ctx context.Context, id int64, patch Patch) (bool, error) {
	if id <= 0 {
		return false, nil
	}

	var row todoRow
	err := s.db.GetContext(ctx, &row,
		"SELECT id, title, completed FROM todos WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get todo %d: %w", id, err)
	}

	title := row.Title
	if patch.Title != nil {
		title = strings.TrimSpace(*patch.Title)
		if title == "" {
			return false, ErrTitleRequired
		}
	}
	completed := patch.Completed.OrDefault(row.Completed != 0)

	result, err := s.db.ExecContext(ctx,
		"UPDATE todos SET title = ?, completed = ? WHERE id = ?",
		title, boolToInt(completed), id)
	if err != nil {
		return false, fmt.Errorf("failed to update todo %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	// A concurrent delete between the read and the write leaves zero rows
	// affected; the row is gone, so report not-found.
	return affected > 0, nil
}

// Delete removes the todo with the given ID. Returns true if a row was
// removed, false if no such ID existed.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete todo %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected > 0, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
