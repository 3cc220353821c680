package graph

import (
	"time"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"

	"github.com/user/todoserve-go/apperror"
	"github.com/user/todoserve-go/users"
)

// The helpers below read coerced argument values out of ResolveParams.
// GraphQL's own type system guarantees the declared types for non-null
// arguments, so failed assertions are treated as absent rather than
// panicking on a malformed executor state.

// intArg returns an Int argument. Zero when absent.
func intArg(p graphql.ResolveParams, name string) int {
	v, _ := p.Args[name].(int)
	return v
}

// stringArg returns a String argument and whether it was provided.
func stringArg(p graphql.ResolveParams, name string) (string, bool) {
	raw, present := p.Args[name]
	if !present || raw == nil {
		return "", false
	}
	s, ok := raw.(string)
	return s, ok
}

// boolArg returns a Boolean argument and whether it was provided.
func boolArg(p graphql.ResolveParams, name string) (bool, bool) {
	raw, present := p.Args[name]
	if !present || raw == nil {
		return false, false
	}
	b, ok := raw.(bool)
	return b, ok
}

// argWritten reports whether the client wrote the named argument in the
// operation text, even when its value resolved to null. The executor drops
// null-valued arguments from p.Args entirely, so presence has to be read
// off the field's AST: a literal value counts, and a variable counts when
// the argument references one the executor coerced. The parser rejects a
// literal `null` outright, so a null can only ever arrive through a
// variable.
func argWritten(p graphql.ResolveParams, name string) bool {
	for _, fieldAST := range p.Info.FieldASTs {
		if fieldAST == nil {
			continue
		}
		for _, arg := range fieldAST.Arguments {
			if arg == nil || arg.Name == nil || arg.Name.Value != name {
				continue
			}
			if variable, ok := arg.Value.(*ast.Variable); ok {
				if variable.Name == nil {
					return false
				}
				_, coerced := p.Info.VariableValues[variable.Name.Value]
				return coerced
			}
			return true
		}
	}
	return false
}

// timeArg returns a DateTime argument. present distinguishes an absent
// argument from an explicit null: (nil, true, nil) means the client sent
// null on purpose. A present value that did not coerce to a time is a
// user-correctable input error.
func timeArg(p graphql.ResolveParams, name string) (value *time.Time, present bool, err error) {
	raw, inArgs := p.Args[name]
	if !inArgs {
		// Null-valued arguments never make it into p.Args, so the AST
		// decides whether the client sent the argument at all.
		return nil, argWritten(p, name), nil
	}
	if raw == nil {
		return nil, true, nil
	}
	t, ok := raw.(time.Time)
	if !ok {
		return nil, true, apperror.NewInputError("Due date must be a valid date", nil)
	}
	return &t, true, nil
}

// userSource extracts the User a relationship field hangs off. List fields
// hand over values, single-object fields hand over pointers.
func userSource(p graphql.ResolveParams) (*users.User, error) {
	switch u := p.Source.(type) {
	case *users.User:
		return u, nil
	case users.User:
		return &u, nil
	}
	return nil, apperror.NewInternalError("unexpected source type for User field", nil)
}
