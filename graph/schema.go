// Package graph defines the GraphQL schema and its resolver layer. The
// resolvers are the authorization core of the service: every operation is
// public, authenticated, or owned-resource, and the checks run here, against
// the viewer the auth middleware attached to the request context, before any
// store call. The schema itself is built programmatically with
// graphql-go, the Go counterpart of the SDL type definitions an Apollo
// server would load.
package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/user/todoserve-go/auth"
	"github.com/user/todoserve-go/todos"
	"github.com/user/todoserve-go/users"
)

// Resolver bundles the dependencies every resolve function needs. It is
// what Apollo would pass to resolvers as the shared context, minus the
// per-request viewer, which travels in the request context instead so no
// mutable state is shared between requests.
type Resolver struct {
	Users  users.Store
	Todos  todos.Store
	Tokens *auth.TokenService
}

// authPayload is the register/login result: the created or authenticated
// user together with a signed bearer token.
type authPayload struct {
	User  *users.User `json:"user"`
	Token string      `json:"token"`
}

// NewSchema builds the executable schema around a Resolver.
//
// Wire shape preserved exactly:
//
//	type User { id: Int!  username: String!  todos: [Todo!]! }
//	type Todo { id: Int!  title: String!  description: String
//	            completed: Boolean!  dueDate: DateTime
//	            userId: Int!  user: User! }
//	type AuthPayload { user: User!  token: String! }
func NewSchema(r *Resolver) (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
			},
			"username": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
			},
		},
	})

	todoType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Todo",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
			},
			"title": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
			},
			"description": &graphql.Field{
				Type: graphql.String,
			},
			"completed": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
			},
			"dueDate": &graphql.Field{
				Type: graphql.DateTime,
			},
			"userId": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
			},
		},
	})

	// The relationship fields close the User<->Todo cycle, so they are
	// attached after both object types exist.
	userType.AddFieldConfig("todos", &graphql.Field{
		Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(todoType))),
		Resolve: r.resolveUserTodosField,
	})
	todoType.AddFieldConfig("user", &graphql.Field{
		Type:    graphql.NewNonNull(userType),
		Resolve: r.resolveTodoUserField,
	})

	authPayloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"user": &graphql.Field{
				Type: graphql.NewNonNull(userType),
			},
			"token": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
			},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type:    userType,
				Resolve: r.resolveMe,
			},
			"getAllUsers": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
				Resolve: r.resolveGetAllUsers,
			},
			"todos": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(todoType))),
				Resolve: r.resolveTodos,
			},
			"todo": &graphql.Field{
				Type: todoType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.resolveTodo,
			},
			"getAllTodos": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(todoType))),
				Resolve: r.resolveGetAllTodos,
			},
			"userTodos": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(todoType))),
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.resolveUserTodos,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"register": &graphql.Field{
				Type: graphql.NewNonNull(authPayloadType),
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveRegister,
			},
			"login": &graphql.Field{
				Type: graphql.NewNonNull(authPayloadType),
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveLogin,
			},
			"logout": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Boolean),
				Resolve: r.resolveLogout,
			},
			"createTodo": &graphql.Field{
				Type: graphql.NewNonNull(todoType),
				Args: graphql.FieldConfigArgument{
					"title":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
					"dueDate":     &graphql.ArgumentConfig{Type: graphql.DateTime},
				},
				Resolve: r.resolveCreateTodo,
			},
			"updateTodo": &graphql.Field{
				Type: graphql.NewNonNull(todoType),
				Args: graphql.FieldConfigArgument{
					"id":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"title":       &graphql.ArgumentConfig{Type: graphql.String},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
					"completed":   &graphql.ArgumentConfig{Type: graphql.Boolean},
					"dueDate":     &graphql.ArgumentConfig{Type: graphql.DateTime},
				},
				Resolve: r.resolveUpdateTodo,
			},
			"deleteTodo": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.resolveDeleteTodo,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}
