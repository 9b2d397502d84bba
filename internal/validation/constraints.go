package validation

import (
	"context"
	"fmt"
)

// Required fails for absent, nil and blank values.
func Required() Constraint {
	return Constraint{
		Name:     "required",
		Message:  "The %s field is required.",
		Implicit: true,
		Check: func(_ context.Context, _ string, value interface{}, _ Input) (bool, error) {
			return !isEmpty(value), nil
		},
	}
}

// Email requires a syntactically valid address.
func Email() Constraint {
	return Constraint{Name: "email", Tag: "email", Message: "The %s must be a valid email address."}
}

// Max limits a string to n characters.
func Max(n int) Constraint {
	return Constraint{
		Name:    "max",
		Tag:     fmt.Sprintf("max=%d", n),
		Message: "The %s must not be greater than " + fmt.Sprint(n) + " characters.",
	}
}

// Integer requires an optionally signed whole number within the range of int.
func Integer() Constraint {
	return Constraint{Name: "integer", Tag: "integer", Message: "The %s must be an integer."}
}

// Numeric requires an optionally signed decimal number that fits a float64.
func Numeric() Constraint {
	return Constraint{Name: "numeric", Tag: "numeric,finite", Message: "The %s must be a number."}
}

// Confirmed requires "<field>_confirmation" to hold the same value.
func Confirmed() Constraint {
	return Constraint{
		Name:    "confirmed",
		Message: "The %s confirmation does not match.",
		Check: func(_ context.Context, field string, value interface{}, input Input) (bool, error) {
			return input[field+"_confirmation"] == value, nil
		},
	}
}

// Unique fails when exists reports the value as already taken.
func Unique(exists func(ctx context.Context, value string) (bool, error)) Constraint {
	return Constraint{
		Name:    "unique",
		Message: "The %s has already been taken.",
		Check: func(ctx context.Context, _ string, value interface{}, _ Input) (bool, error) {
			s, _ := value.(string)
			taken, err := exists(ctx, s)
			if err != nil {
				return false, err
			}
			return !taken, nil
		},
	}
}

// Func wraps an arbitrary check under a name and message.
func Func(name, message string, check CheckFunc) Constraint {
	return Constraint{Name: name, Message: message, Check: check}
}
