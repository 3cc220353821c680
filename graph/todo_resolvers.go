package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/user/todoserve-go/apperror"
	"github.com/user/todoserve-go/todos"
	"github.com/user/todoserve-go/validation"
)

// todoNotFound is the client-visible message for a missing todo. Not-found
// is an input error, distinct from forbidden, and existence is always
// checked before ownership so the two never blur.
const todoNotFound = "Todo not found"

// fetchOwnedTodo implements the owned-resource check shared by todo,
// updateTodo and deleteTodo: fetch by id, translate missing rows into the
// not-found input error, then compare owners. forbiddenMsg names the
// operation ("You can only update your own todos", ...).
func (r *Resolver) fetchOwnedTodo(p graphql.ResolveParams, id, viewerID int, forbiddenMsg string) (*todos.Todo, error) {
	todo, err := r.Todos.GetByID(p.Context, id)
	if err != nil {
		if apperror.IsNotFoundError(err) {
			return nil, apperror.NewInputError(todoNotFound, nil)
		}
		return nil, err
	}
	if todo.UserID != viewerID {
		return nil, apperror.NewForbiddenError(forbiddenMsg, nil)
	}
	return todo, nil
}

// resolveTodos lists the caller's own todos, oldest first.
func (r *Resolver) resolveTodos(p graphql.ResolveParams) (interface{}, error) {
	viewer, err := requireViewer(p, "You must be logged in to view todos")
	if err != nil {
		return nil, err
	}
	return r.Todos.ListByUser(p.Context, viewer.ID, todos.OrderAsc)
}

// resolveTodo fetches a single todo the caller owns.
func (r *Resolver) resolveTodo(p graphql.ResolveParams) (interface{}, error) {
	viewer, err := requireViewer(p, "You must be logged in to view a todo")
	if err != nil {
		return nil, err
	}
	return r.fetchOwnedTodo(p, intArg(p, "id"), viewer.ID, "You can only view your own todos")
}

// resolveGetAllTodos lists every todo of every user. Authenticated only,
// unfiltered, like getAllUsers.
func (r *Resolver) resolveGetAllTodos(p graphql.ResolveParams) (interface{}, error) {
	if _, err := requireViewer(p, "You must be logged in"); err != nil {
		return nil, err
	}
	return r.Todos.ListAll(p.Context)
}

// resolveUserTodos lists the todos of the user named by the userId argument.
// Despite being parameterized, only self-access is permitted: the argument
// exists for client convenience, not for reading other users' lists.
func (r *Resolver) resolveUserTodos(p graphql.ResolveParams) (interface{}, error) {
	viewer, err := requireViewer(p, "You must be logged in")
	if err != nil {
		return nil, err
	}
	userID := intArg(p, "userId")
	if viewer.ID != userID {
		return nil, apperror.NewForbiddenError("You can only view your own todos", nil)
	}
	return r.Todos.ListByUser(p.Context, userID, todos.OrderAsc)
}

// resolveCreateTodo creates a todo owned by the caller. The owner is always
// the viewer; there is no way to create a todo for someone else. completed
// starts false, description defaults to the empty string.
func (r *Resolver) resolveCreateTodo(p graphql.ResolveParams) (interface{}, error) {
	viewer, err := requireViewer(p, "You must be logged in to create a todo")
	if err != nil {
		return nil, err
	}

	title, _ := stringArg(p, "title")
	description, _ := stringArg(p, "description")
	dueDate, _, err := timeArg(p, "dueDate")
	if err != nil {
		return nil, err
	}

	input := validation.CreateTodoInput{
		Title:       title,
		Description: description,
		DueDate:     dueDate,
	}
	if ferr := validation.CreateTodo(input); ferr != nil {
		return nil, apperror.NewInputError(ferr.Message, nil)
	}

	return r.Todos.Create(p.Context, todos.CreateParams{
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		UserID:      viewer.ID,
	})
}

// resolveUpdateTodo applies a partial update to a todo the caller owns.
// Only arguments the client actually sent are touched; an explicit
// `dueDate: null` clears the stored due date while an absent dueDate leaves
// it alone.
func (r *Resolver) resolveUpdateTodo(p graphql.ResolveParams) (interface{}, error) {
	viewer, err := requireViewer(p, "You must be logged in to update a todo")
	if err != nil {
		return nil, err
	}

	id := intArg(p, "id")
	params := todos.UpdateParams{}

	if title, present := stringArg(p, "title"); present {
		params.Title = &title
	}
	if description, present := stringArg(p, "description"); present {
		params.Description = &description
	}
	if completed, present := boolArg(p, "completed"); present {
		params.Completed = &completed
	}
	dueDate, duePresent, err := timeArg(p, "dueDate")
	if err != nil {
		return nil, err
	}
	if duePresent {
		params.DueDate = dueDate
		params.SetDueDate = true
	}

	input := validation.UpdateTodoInput{
		ID:          id,
		Title:       params.Title,
		Description: params.Description,
		Completed:   params.Completed,
		DueDate:     params.DueDate,
		SetDueDate:  params.SetDueDate,
	}
	if ferr := validation.UpdateTodo(input); ferr != nil {
		return nil, apperror.NewInputError(ferr.Message, nil)
	}

	if _, err := r.fetchOwnedTodo(p, id, viewer.ID, "You can only update your own todos"); err != nil {
		return nil, err
	}

	return r.Todos.Update(p.Context, id, params)
}

// resolveDeleteTodo removes a todo the caller owns.
func (r *Resolver) resolveDeleteTodo(p graphql.ResolveParams) (interface{}, error) {
	viewer, err := requireViewer(p, "You must be logged in to delete a todo")
	if err != nil {
		return nil, err
	}

	id := intArg(p, "id")
	if _, err := r.fetchOwnedTodo(p, id, viewer.ID, "You can only delete your own todos"); err != nil {
		return nil, err
	}

	if err := r.Todos.Delete(p.Context, id); err != nil {
		if apperror.IsNotFoundError(err) {
			// Raced with another delete between fetch and remove.
			return nil, apperror.NewInputError(todoNotFound, nil)
		}
		return nil, err
	}
	return true, nil
}

// resolveUserTodosField is the User.todos relationship resolver. It orders
// by descending id, the reverse of the todos query. The asymmetry is
// deliberate wire behavior: direct lists read oldest-first, the nested list
// under a user reads newest-first.
func (r *Resolver) resolveUserTodosField(p graphql.ResolveParams) (interface{}, error) {
	user, err := userSource(p)
	if err != nil {
		return nil, err
	}
	return r.Todos.ListByUser(p.Context, user.ID, todos.OrderDesc)
}

// resolveTodoUserField is the Todo.user relationship resolver.
func (r *Resolver) resolveTodoUserField(p graphql.ResolveParams) (interface{}, error) {
	switch todo := p.Source.(type) {
	case *todos.Todo:
		return r.Users.GetByID(p.Context, todo.UserID)
	case todos.Todo:
		return r.Users.GetByID(p.Context, todo.UserID)
	}
	return nil, apperror.NewInternalError("unexpected source type for Todo field", nil)
}
