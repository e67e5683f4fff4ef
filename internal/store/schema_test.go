package store

import (
	"context"
	"testing"
)

func TestInitSchemaIdempotent(t *testing.T) {
	s := newTestStore(t)

	// New already ran InitSchema; running it again must not fail or wipe data
	if _, err := s.Add(context.Background(), "survivor", CompletionUnspecified); err != nil {
		t.Fatalf("failed to add todo: %v", err)
	}

	if err := InitSchema(s.getDB()); err != nil {
		t.Fatalf("second InitSchema failed: %v", err)
	}

	todos, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("failed to list todos: %v", err)
	}
	if len(todos) != 1 {
		t.Errorf("expected 1 todo after re-init, got %d", len(todos))
	}
}

func TestCompletedColumnDefault(t *testing.T) {
	s := newTestStore(t)

	// A raw insert that omits completed takes the column default of 0
	if _, err := s.getDB().Exec("INSERT INTO todos (title) VALUES (?)", "raw insert"); err != nil {
		t.Fatalf("raw insert failed: %v", err)
	}

	todos, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("failed to list todos: %v", err)
	}
	if len(todos) != 1 || todos[0].Completed {
		t.Errorf("expected default completed=false, got %+v", todos)
	}
}

func TestLegacyNonzeroCompletedReadsAsTrue(t *testing.T) {
	s := newTestStore(t)

	// Rows written by older clients may hold values other than 0/1; any
	// nonzero value normalizes to true on the way out.
	if _, err := s.getDB().Exec(
		"INSERT INTO todos (title, completed) VALUES (?, ?)", "legacy row", 2); err != nil {
		t.Fatalf("raw insert failed: %v", err)
	}

	todos, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("failed to list todos: %v", err)
	}
	if len(todos) != 1 || !todos[0].Completed {
		t.Errorf("expected legacy nonzero completed to read as true, got %+v", todos)
	}
}
