package store

// Todo represents a single to-do item.
type Todo struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// todoRow mirrors the todos table. The completed column is INTEGER 0/1;
// scanning through int64 keeps legacy nonzero values readable as true.
type todoRow struct {
	ID        int64  `db:"id"`
	Title     string `db:"title"`
	Completed int64  `db:"completed"`
}

func (r todoRow) todo() Todo {
	return Todo{ID: r.ID, Title: r.Title, Completed: r.Completed != 0}
}

// Patch carries the fields Update may change. A nil Title keeps the stored
// title; CompletionUnspecified keeps the stored completed flag.
type Patch struct {
	Title     *string
	Completed Completion
}
