// Package validation evaluates typed, ordered rule sets against request input.
//
// A rule set maps each field to an ordered list of named constraints.
// Constraints run in order and evaluation of a field stops at the first
// failure, so every failing field reports exactly one message. Constraints
// other than Required are skipped for empty values, which makes every
// field optional unless it is explicitly required.
package validation

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Input holds the raw field values of a request. Values are strings for
// plain fields and arbitrary types (for example uploads) otherwise.
type Input map[string]interface{}

// CheckFunc reports whether value satisfies a constraint. A non-nil error
// aborts validation and is returned as-is.
type CheckFunc func(ctx context.Context, field string, value interface{}, input Input) (bool, error)

// Constraint is a single named rule. Exactly one of Tag or Check is set.
type Constraint struct {
	Name string
	// Tag is a go-playground/validator tag evaluated with Var.
	Tag   string
	Check CheckFunc
	// Message is a format string receiving the human readable field label.
	Message string
	// Implicit constraints also run when the value is empty.
	Implicit bool
}

// Field binds a field name to its ordered constraints.
type Field struct {
	Name        string
	Constraints []Constraint
}

// Rules is an ordered rule set.
type Rules []Field

// Error carries per-field messages of a failed validation.
type Error struct {
	Fields map[string][]string
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(e.Fields[name], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field failed validation.
func (e *Error) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

// NewError builds an Error for a single field.
func NewError(field, message string) *Error {
	return &Error{Fields: map[string][]string{field: {message}}}
}

var integerRegex = regexp.MustCompile(`^[-+]?[0-9]+$`)

// Validator evaluates Rules. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator with the custom tags used by the built-in constraints.
func New() *Validator {
	v := validator.New()
	// validator's own "number" tag rejects signs; integer accepts them but
	// still has to fit an int.
	_ = v.RegisterValidation("integer", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if !integerRegex.MatchString(s) {
			return false
		}
		_, err := strconv.ParseInt(s, 10, strconv.IntSize)
		return err == nil
	})
	// "numeric" only checks the shape; finite rejects values that overflow a float64.
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f, err := strconv.ParseFloat(fl.Field().String(), 64)
		return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
	})
	return &Validator{validate: v}
}

// Validate checks input against rules and returns *Error when any field fails.
func (v *Validator) Validate(ctx context.Context, input Input, rules Rules) error {
	var failed map[string][]string
	for _, field := range rules {
		value := input[field.Name]
		empty := isEmpty(value)
		for _, c := range field.Constraints {
			if empty && !c.Implicit {
				continue
			}
			ok, err := v.check(ctx, field.Name, value, input, c)
			if err != nil {
				return err
			}
			if !ok {
				if failed == nil {
					failed = make(map[string][]string)
				}
				failed[field.Name] = append(failed[field.Name], fmt.Sprintf(c.Message, label(field.Name)))
				break
			}
		}
	}
	if failed != nil {
		return &Error{Fields: failed}
	}
	return nil
}

func (v *Validator) check(ctx context.Context, field string, value interface{}, input Input, c Constraint) (bool, error) {
	if c.Check != nil {
		return c.Check(ctx, field, value, input)
	}
	if err := v.validate.VarCtx(ctx, value, c.Tag); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return false, nil
		}
		return false, fmt.Errorf("constraint %s on %s: %w", c.Name, field, err)
	}
	return true, nil
}

func isEmpty(value interface{}) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

func label(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}
