package todos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/todoserve-go/apperror"
)

// Store is the persistence interface for todos. Ownership is not enforced
// here: the resolver layer checks existence and ownership before calling
// Update or Delete, so those methods operate on ids unconditionally.
type Store interface {
	Create(ctx context.Context, params CreateParams) (*Todo, error)
	// GetByID fetches a todo by id; missing todos yield a not-found error.
	GetByID(ctx context.Context, id int) (*Todo, error)
	// ListByUser returns the todos owned by userID in the given id order.
	ListByUser(ctx context.Context, userID int, order Order) ([]Todo, error)
	// ListAll returns every todo of every user, ordered by ascending id.
	ListAll(ctx context.Context) ([]Todo, error)
	// Update applies the present fields of params to the stored row and
	// returns the updated todo.
	Update(ctx context.Context, id int, params UpdateParams) (*Todo, error)
	Delete(ctx context.Context, id int) error
}

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	db *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a PostgresStore.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const todoColumns = `id, title, description, completed, due_date, user_id, created_at`

func scanTodo(row pgx.Row) (*Todo, error) {
	var todo Todo
	err := row.Scan(&todo.ID, &todo.Title, &todo.Description, &todo.Completed, &todo.DueDate, &todo.UserID, &todo.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

func (s *PostgresStore) Create(ctx context.Context, params CreateParams) (*Todo, error) {
	query := `INSERT INTO todos (title, description, due_date, user_id)
	          VALUES ($1, $2, $3, $4)
	          RETURNING ` + todoColumns
	todo, err := scanTodo(s.db.QueryRow(ctx, query, params.Title, params.Description, params.DueDate, params.UserID))
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create todo", err)
	}
	return todo, nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id int) (*Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1`
	todo, err := scanTodo(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("todo with id %d not found", id), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get todo by id", err)
	}
	return todo, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID int, order Order) ([]Todo, error) {
	direction := "ASC"
	if order == OrderDesc {
		direction = "DESC"
	}
	query := `SELECT ` + todoColumns + ` FROM todos WHERE user_id = $1 ORDER BY id ` + direction
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list todos by user", err)
	}
	return collectTodos(rows)
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos ORDER BY id ASC`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list todos", err)
	}
	return collectTodos(rows)
}

func collectTodos(rows pgx.Rows) ([]Todo, error) {
	defer rows.Close()

	var result []Todo
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, apperror.NewDatabaseError("failed to scan todo row", err)
		}
		result = append(result, *todo)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to iterate todo rows", err)
	}
	return result, nil
}

// Update builds the SET clause dynamically from the present fields, the same
// pattern a Prisma `update` with a sparse data object compiles down to.
func (s *PostgresStore) Update(ctx context.Context, id int, params UpdateParams) (*Todo, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	if params.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", argID))
		args = append(args, *params.Title)
		argID++
	}
	if params.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", argID))
		args = append(args, *params.Description)
		argID++
	}
	if params.Completed != nil {
		setClauses = append(setClauses, fmt.Sprintf("completed = $%d", argID))
		args = append(args, *params.Completed)
		argID++
	}
	if params.SetDueDate {
		// params.DueDate may be nil here: that clears the column.
		setClauses = append(setClauses, fmt.Sprintf("due_date = $%d", argID))
		args = append(args, params.DueDate)
		argID++
	}

	if len(setClauses) == 0 {
		// Nothing to change: return the current row.
		return s.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE todos SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), argID, todoColumns)

	todo, err := scanTodo(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("todo with id %d not found", id), nil)
		}
		return nil, apperror.NewDatabaseError("failed to update todo", err)
	}
	return todo, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete todo", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("todo with id %d not found", id), nil)
	}
	return nil
}
