// Package validation declares the per-operation input rules and evaluates
// them with go-playground/validator. Each API operation has a typed input
// struct whose validate tags are the rule table; a violated rule maps to a
// fixed human-readable message, the same texts a Joi schema with custom
// messages would produce. Validation is fail-fast: the first violated rule
// yields exactly one FieldError and later rules are not reported.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// FieldError associates a single human-readable message with the input field
// that triggered it.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// passwordPattern is the allowed password shape: 6-30 characters drawn from
// letters, digits, and a fixed set of specials.
var passwordPattern = regexp.MustCompile(`^[a-zA-Z0-9!@#$%^&*]{6,30}$`)

// validate is the shared validator instance. validator.New is expensive and
// the instance caches struct metadata, so one per process.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return passwordPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("validation: registering password rule: %v", err))
	}
	return v
}

// RegisterInput is the payload of the register mutation.
type RegisterInput struct {
	Username string `validate:"required,alphanum,min=3,max=30"`
	Password string `validate:"required,password"`
}

// LoginInput is the payload of the login mutation. Beyond presence there is
// no shape check: a stored username never needs to re-pass registration
// rules to log in.
type LoginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// CreateTodoInput is the payload of the createTodo mutation. The due date
// arrives already coerced by the DateTime scalar, so there is nothing left
// to validate about its shape here.
type CreateTodoInput struct {
	Title       string `validate:"required,min=1,max=100"`
	Description string `validate:"max=500"`
	DueDate     *time.Time
}

// UpdateTodoInput is the payload of the updateTodo mutation. Every field but
// the id is optional; nil means "leave the stored value alone" and is
// skipped by omitnil, while a present pointer re-checks the create-time
// shape rules.
type UpdateTodoInput struct {
	ID          int     `validate:"required"`
	Title       *string `validate:"omitnil,min=1,max=100"`
	Description *string `validate:"omitnil,max=500"`
	Completed   *bool
	DueDate     *time.Time
	SetDueDate  bool
}

// wireNames maps struct field names to the GraphQL argument names clients
// see in error payloads.
var wireNames = map[string]string{
	"Username":    "username",
	"Password":    "password",
	"Title":       "title",
	"Description": "description",
	"DueDate":     "dueDate",
	"Completed":   "completed",
	"ID":          "id",
}

// messages maps "Struct.Field.tag" to the client-visible message for that
// violated rule.
var messages = map[string]string{
	"RegisterInput.Username.required": "Username is required",
	"RegisterInput.Username.alphanum": "Username must only contain alphanumeric characters",
	"RegisterInput.Username.min":      "Username must be at least 3 characters long",
	"RegisterInput.Username.max":      "Username cannot be more than 30 characters long",
	"RegisterInput.Password.required": "Password is required",
	"RegisterInput.Password.password": "Password must be between 6-30 characters and may contain letters, numbers, and special characters (!@#$%^&*)",

	"LoginInput.Username.required": "Username is required",
	"LoginInput.Password.required": "Password is required",

	"CreateTodoInput.Title.required":  "Title is required",
	"CreateTodoInput.Title.min":       "Title cannot be empty",
	"CreateTodoInput.Title.max":       "Title cannot be more than 100 characters long",
	"CreateTodoInput.Description.max": "Description cannot be more than 500 characters long",
	"UpdateTodoInput.ID.required":     "Id is required",
	"UpdateTodoInput.Title.min":       "Title cannot be empty",
	"UpdateTodoInput.Title.max":       "Title cannot be more than 100 characters long",
	"UpdateTodoInput.Description.max": "Description cannot be more than 500 characters long",
}

// check runs the validator and converts the first violation into a
// FieldError. A nil return means the input passed every rule.
func check(input interface{}) *FieldError {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		// validator returns InvalidValidationError only for non-struct
		// input, which would be a programming error here.
		panic(fmt.Sprintf("validation: unexpected validator error: %v", err))
	}

	first := verrs[0]
	key := first.StructNamespace() + "." + first.Tag()
	field := wireNames[first.StructField()]
	if field == "" {
		field = strings.ToLower(first.StructField())
	}

	message, found := messages[key]
	if !found {
		message = fmt.Sprintf("%s is invalid", first.StructField())
	}
	return &FieldError{Field: field, Message: message}
}

// Register validates a registration payload.
func Register(input RegisterInput) *FieldError { return check(input) }

// Login validates a login payload.
func Login(input LoginInput) *FieldError { return check(input) }

// CreateTodo validates a todo-creation payload.
func CreateTodo(input CreateTodoInput) *FieldError { return check(input) }

// UpdateTodo validates a partial todo-update payload.
func UpdateTodo(input UpdateTodoInput) *FieldError { return check(input) }
