// Package validate holds the input checks applied before any network call.
package validate

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/learnquest/internal/common"
	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
	})
	return v
}

// Code accepts exactly eight ASCII digits.
func Code(code string) error {
	if err := Validator().Var(code, "required,len=8,number"); err != nil {
		return common.ErrInvalidCode
	}
	return nil
}

func Email(email string) error {
	if err := Validator().Var(email, "required,email"); err != nil {
		return fmt.Errorf("%w: %q", common.ErrInvalidEmail, email)
	}
	return nil
}

// LocalPart returns the part of an address before the last '@'.
func LocalPart(email string) string {
	if i := strings.LastIndex(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
