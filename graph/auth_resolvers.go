package graph

import (
	"log"

	"github.com/graphql-go/graphql"

	"github.com/user/todoserve-go/apperror"
	"github.com/user/todoserve-go/auth"
	"github.com/user/todoserve-go/users"
	"github.com/user/todoserve-go/validation"
)

// invalidCredentials is the one message for both "no such user" and "wrong
// password". Distinguishing them would let an attacker enumerate usernames.
const invalidCredentials = "Invalid username or password"

// requireViewer enforces the Authenticated operation class: it returns the
// request's viewer or an authentication-required error carrying msg.
func requireViewer(p graphql.ResolveParams, msg string) (*auth.Viewer, error) {
	viewer := auth.ViewerFromContext(p.Context)
	if viewer == nil {
		return nil, apperror.NewAuthenticationError(msg, nil)
	}
	return viewer, nil
}

// resolveRegister implements the register mutation: validate, reject taken
// usernames, hash, create, and sign the first token in one step so a fresh
// account is immediately logged in.
func (r *Resolver) resolveRegister(p graphql.ResolveParams) (interface{}, error) {
	username, _ := stringArg(p, "username")
	password, _ := stringArg(p, "password")

	if ferr := validation.Register(validation.RegisterInput{Username: username, Password: password}); ferr != nil {
		return nil, apperror.NewInputError(ferr.Message, nil)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := r.Users.Create(p.Context, username, hashed)
	if err != nil {
		if apperror.IsConflictError(err) {
			return nil, apperror.NewInputError("Username is already taken", nil)
		}
		return nil, err
	}

	token, err := r.Tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &authPayload{User: user, Token: token}, nil
}

// resolveLogin implements the login mutation.
func (r *Resolver) resolveLogin(p graphql.ResolveParams) (interface{}, error) {
	username, _ := stringArg(p, "username")
	password, _ := stringArg(p, "password")

	if ferr := validation.Login(validation.LoginInput{Username: username, Password: password}); ferr != nil {
		return nil, apperror.NewInputError(ferr.Message, nil)
	}

	user, err := r.Users.GetByUsername(p.Context, username)
	if err != nil {
		if apperror.IsNotFoundError(err) {
			return nil, apperror.NewInputError(invalidCredentials, nil)
		}
		return nil, err
	}

	ok, err := auth.CheckPassword(password, user.HashedPassword)
	if err != nil {
		// A malformed stored hash is a server fault, not a login failure.
		return nil, err
	}
	if !ok {
		return nil, apperror.NewInputError(invalidCredentials, nil)
	}

	token, err := r.Tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &authPayload{User: user, Token: token}, nil
}

// resolveLogout implements the logout mutation. Bearer tokens are not
// tracked server-side, so there is nothing to invalidate: the client drops
// its token and the operation always reports success.
func (r *Resolver) resolveLogout(p graphql.ResolveParams) (interface{}, error) {
	if viewer := auth.ViewerFromContext(p.Context); viewer != nil {
		log.Printf("logout: user %d", viewer.ID)
	}
	return true, nil
}

// resolveMe returns the caller's own projection, or null when anonymous.
// Anonymity here is an answer ("I am nobody"), not an error.
func (r *Resolver) resolveMe(p graphql.ResolveParams) (interface{}, error) {
	viewer := auth.ViewerFromContext(p.Context)
	if viewer == nil {
		return nil, nil
	}
	return &users.User{ID: viewer.ID, Username: viewer.Username}, nil
}

// resolveGetAllUsers lists every user. Authenticated only: there is no
// ownership filter here on purpose. It is an admin-style listing, and the
// User.todos relationship it exposes is equally unfiltered.
func (r *Resolver) resolveGetAllUsers(p graphql.ResolveParams) (interface{}, error) {
	if _, err := requireViewer(p, "You must be logged in"); err != nil {
		return nil, err
	}
	return r.Users.List(p.Context)
}
