package store

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	return s
}

// TestCompleteWorkflow exercises the entire store end-to-end:
// add items, list them, patch one, delete one, verify the survivors.
func TestCompleteWorkflow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Step 1: Add three items with a mix of completed inputs
	milk, err := s.Add(ctx, "Buy milk", CompletionUnspecified)
	if err != nil {
		t.Fatalf("failed to add first todo: %v", err)
	}
	if milk.ID <= 0 {
		t.Errorf("expected positive ID, got %d", milk.ID)
	}
	if milk.Completed {
		t.Errorf("unspecified completed should default to false")
	}

	dishes, err := s.Add(ctx, "Do the dishes", CompletionTrue)
	if err != nil {
		t.Fatalf("failed to add second todo: %v", err)
	}
	if !dishes.Completed {
		t.Errorf("expected second todo to be completed")
	}

	taxes, err := s.Add(ctx, "File taxes", CompletionFalse)
	if err != nil {
		t.Fatalf("failed to add third todo: %v", err)
	}

	// Step 2: List returns all three in insertion order
	todos, err := s.List(ctx)
	if err != nil {
		t.Fatalf("failed to list todos: %v", err)
	}
	if len(todos) != 3 {
		t.Fatalf("expected 3 todos, got %d", len(todos))
	}
	for i, want := range []int64{milk.ID, dishes.ID, taxes.ID} {
		if todos[i].ID != want {
			t.Errorf("position %d: expected ID %d, got %d", i, want, todos[i].ID)
		}
	}

	// Step 3: Patch only the completed flag
	updated, err := s.Update(ctx, milk.ID, Patch{Completed: CompletionTrue})
	if err != nil {
		t.Fatalf("failed to update todo: %v", err)
	}
	if !updated {
		t.Errorf("expected update of existing todo to report true")
	}

	// Step 4: Delete one item
	deleted, err := s.Delete(ctx, dishes.ID)
	if err != nil {
		t.Fatalf("failed to delete todo: %v", err)
	}
	if !deleted {
		t.Errorf("expected delete of existing todo to report true")
	}

	// Step 5: Verify final state
	todos, err = s.List(ctx)
	if err != nil {
		t.Fatalf("failed to list todos: %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("expected 2 todos after delete, got %d", len(todos))
	}
	if todos[0].ID != milk.ID || !todos[0].Completed || todos[0].Title != "Buy milk" {
		t.Errorf("unexpected first todo after update: %+v", todos[0])
	}
	if todos[1].ID != taxes.ID || todos[1].Completed {
		t.Errorf("unexpected second todo: %+v", todos[1])
	}
}

func TestAddRequiresTitle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"", "   ", "\t\n"} {
		if _, err := s.Add(ctx, title, CompletionTrue); !errors.Is(err, ErrTitleRequired) {
			t.Errorf("Add(%q): expected ErrTitleRequired, got %v", title, err)
		}
	}

	// Nothing was written
	todos, err := s.List(ctx)
	if err != nil {
		t.Fatalf("failed to list todos: %v", err)
	}
	if len(todos) != 0 {
		t.Errorf("expected empty store after rejected adds, got %d todos", len(todos))
	}
}

func TestAddTrimsTitle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	todo, err := s.Add(ctx, "  Buy milk  ", CompletionUnspecified)
	if err != nil {
		t.Fatalf("failed to add todo: %v", err)
	}
	if todo.Title != "Buy milk" {
		t.Errorf("expected trimmed title %q, got %q", "Buy milk", todo.Title)
	}
}

func TestListEmpty(t *testing.T) {
	s := newTestStore(t)

	todos, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("failed to list todos: %v", err)
	}
	if todos == nil {
		t.Errorf("expected empty slice, got nil")
	}
	if len(todos) != 0 {
		t.Errorf("expected 0 todos, got %d", len(todos))
	}
}

func TestUpdatePatchSemantics(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	todo, err := s.Add(ctx, "Buy milk", CompletionFalse)
	if err != nil {
		t.Fatalf("failed to add todo: %v", err)
	}

	// Completed-only patch leaves the title alone
	updated, err := s.Update(ctx, todo.ID, Patch{Completed: CompletionTrue})
	if err != nil {
		t.Fatalf("failed to update completed: %v", err)
	}
	if !updated {
		t.Fatalf("expected update to report true")
	}

	todos, _ := s.List(ctx)
	if todos[0].Title != "Buy milk" {
		t.Errorf("completed-only patch changed title to %q", todos[0].Title)
	}
	if !todos[0].Completed {
		t.Errorf("completed flag not updated")
	}

	// Title-only patch leaves the completed flag alone
	newTitle := "Buy oat milk"
	updated, err = s.Update(ctx, todo.ID, Patch{Title: &newTitle})
	if err != nil {
		t.Fatalf("failed to update title: %v", err)
	}
	if !updated {
		t.Fatalf("expected update to report true")
	}

	todos, _ = s.List(ctx)
	if todos[0].Title != "Buy oat milk" {
		t.Errorf("title not updated, got %q", todos[0].Title)
	}
	if !todos[0].Completed {
		t.Errorf("title-only patch reset completed flag")
	}
}

func TestUpdateMissingID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Add(ctx, "Buy milk", CompletionFalse); err != nil {
		t.Fatalf("failed to add todo: %v", err)
	}

	for _, id := range []int64{0, -1, 999} {
		updated, err := s.Update(ctx, id, Patch{Completed: CompletionTrue})
		if err != nil {
			t.Fatalf("Update(%d): unexpected error: %v", id, err)
		}
		if updated {
			t.Errorf("Update(%d): expected false for missing ID", id)
		}
	}

	// Nothing was mutated
	todos, _ := s.List(ctx)
	if len(todos) != 1 || todos[0].Completed {
		t.Errorf("update of missing ID mutated the store: %+v", todos)
	}
}

func TestUpdateRejectsEmptyTitle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	todo, err := s.Add(ctx, "Buy milk", CompletionFalse)
	if err != nil {
		t.Fatalf("failed to add todo: %v", err)
	}

	empty := "   "
	if _, err := s.Update(ctx, todo.ID, Patch{Title: &empty}); !errors.Is(err, ErrTitleRequired) {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}

	todos, _ := s.List(ctx)
	if todos[0].Title != "Buy milk" {
		t.Errorf("rejected update mutated title to %q", todos[0].Title)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	todo, err := s.Add(ctx, "Buy milk", CompletionUnspecified)
	if err != nil {
		t.Fatalf("failed to add todo: %v", err)
	}

	deleted, err := s.Delete(ctx, todo.ID)
	if err != nil {
		t.Fatalf("failed to delete todo: %v", err)
	}
	if !deleted {
		t.Errorf("expected first delete to report true")
	}

	// Second delete of the same ID reports false
	deleted, err = s.Delete(ctx, todo.ID)
	if err != nil {
		t.Fatalf("unexpected error on second delete: %v", err)
	}
	if deleted {
		t.Errorf("expected second delete to report false")
	}

	todos, _ := s.List(ctx)
	if len(todos) != 0 {
		t.Errorf("deleted todo still listed: %+v", todos)
	}
}

// TestIDsNeverReused verifies the AUTOINCREMENT counter survives deletes.
func TestIDsNeverReused(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.Add(ctx, "First", CompletionUnspecified)
	if err != nil {
		t.Fatalf("failed to add todo: %v", err)
	}
	if _, err := s.Delete(ctx, first.ID); err != nil {
		t.Fatalf("failed to delete todo: %v", err)
	}

	second, err := s.Add(ctx, "Second", CompletionUnspecified)
	if err != nil {
		t.Fatalf("failed to add todo: %v", err)
	}
	if second.ID <= first.ID {
		t.Errorf("expected fresh ID after delete, got %d (previous %d)", second.ID, first.ID)
	}
}

func TestRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	added, err := s.Add(ctx, "Water the plants", ParseCompletion("TRUE"))
	if err != nil {
		t.Fatalf("failed to add todo: %v", err)
	}

	todos, err := s.List(ctx)
	if err != nil {
		t.Fatalf("failed to list todos: %v", err)
	}
	if len(todos) != 1 {
		t.Fatalf("expected exactly 1 todo, got %d", len(todos))
	}
	if todos[0] != *added {
		t.Errorf("round trip mismatch: added %+v, listed %+v", *added, todos[0])
	}
	if !todos[0].Completed {
		t.Errorf("string input \"TRUE\" should have stored completed=1")
	}
}

// TestConcurrentAdds verifies the shared handle is safe under parallel
// writers; the busy timeout keeps contending writes from failing.
func TestConcurrentAdds(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Add(ctx, "concurrent item", CompletionUnspecified); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent add failed: %v", err)
	}

	todos, err := s.List(ctx)
	if err != nil {
		t.Fatalf("failed to list todos: %v", err)
	}
	if len(todos) != workers {
		t.Errorf("expected %d todos, got %d", workers, len(todos))
	}

	// IDs are unique and ascending
	for i := 1; i < len(todos); i++ {
		if todos[i].ID <= todos[i-1].ID {
			t.Errorf("IDs not strictly ascending: %d then %d", todos[i-1].ID, todos[i].ID)
		}
	}
}
