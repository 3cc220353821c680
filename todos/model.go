// Package todos owns the todo entity and its persistence.
package todos

import "time"

// Todo is a single to-do item. Every todo belongs to exactly one user
// (UserID), assigned at creation and never changed afterwards. DueDate is a
// pointer because the column is nullable: a todo without a due date carries
// nil, not a zero time.
type Todo struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"dueDate"`
	UserID      int        `json:"userId"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateParams carries the fields for inserting a new todo. Completed always
// starts false; the store sets it, not the caller.
type CreateParams struct {
	Title       string
	Description string
	DueDate     *time.Time
	UserID      int
}

// UpdateParams describes a partial update. Nil pointer fields are left
// untouched in the stored row. DueDate needs the extra SetDueDate flag
// because its column is nullable: a nil DueDate with SetDueDate true clears
// the stored value, while a nil DueDate with SetDueDate false leaves it
// alone. This mirrors the GraphQL distinction between `dueDate: null` and an
// absent argument.
type UpdateParams struct {
	Title       *string
	Description *string
	Completed   *bool
	DueDate     *time.Time
	SetDueDate  bool
}

// Order selects the id ordering of list queries.
type Order int

const (
	// OrderAsc sorts by ascending id, oldest first.
	OrderAsc Order = iota
	// OrderDesc sorts by descending id, newest first.
	OrderDesc
)
