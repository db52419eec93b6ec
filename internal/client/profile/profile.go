// Package profile turns the free-form signup metadata returned by the auth
// provider into the fields of a new user record.
package profile

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/learnquest/internal/client/models"
	"github.com/dmitrijs2005/learnquest/internal/validate"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// Metadata is the optional-field schema of the provider payload. A field
// that is missing, has the wrong shape, or fails validation counts as unset.
type Metadata struct {
	Name     string `mapstructure:"name" validate:"omitempty,max=120"`
	FullName string `mapstructure:"full_name" validate:"omitempty,max=120"`
	Username string `mapstructure:"username" validate:"omitempty,max=64,excludesall= @"`
	Role     string `mapstructure:"role" validate:"omitempty,oneof=learner instructor admin"`
}

// Profile is the normalized result.
type Profile struct {
	Email    string
	Name     string
	Username string
	Role     models.Role
}

// User builds the record to insert for the given identity id.
func (p Profile) User(id string, verified bool) *models.User {
	return &models.User{
		ID:         id,
		Email:      p.Email,
		Name:       p.Name,
		Username:   p.Username,
		Role:       p.Role,
		IsVerified: verified,
	}
}

// Decode reads raw into Metadata, dropping invalid fields.
func Decode(raw map[string]any) Metadata {
	var md Metadata
	if len(raw) == 0 {
		return md
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &md,
	})
	if err == nil {
		// partial decodes are kept; fields that failed stay empty
		_ = dec.Decode(raw)
	}

	md.Name = strings.TrimSpace(md.Name)
	md.FullName = strings.TrimSpace(md.FullName)
	md.Username = strings.TrimSpace(md.Username)
	md.Role = strings.ToLower(strings.TrimSpace(md.Role))

	var verrs validator.ValidationErrors
	if err := validate.Validator().Struct(md); errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.StructField() {
			case "Name":
				md.Name = ""
			case "FullName":
				md.FullName = ""
			case "Username":
				md.Username = ""
			case "Role":
				md.Role = ""
			}
		}
	}
	return md
}

// Normalize applies the defaulting rules: name falls back to full_name and
// then to the e-mail local part, username to the local part, role to
// learner.
func Normalize(email string, raw map[string]any) (Profile, error) {
	if err := validate.Email(email); err != nil {
		return Profile{}, err
	}

	md := Decode(raw)
	local := validate.LocalPart(email)

	p := Profile{Email: email, Name: md.Name, Username: md.Username, Role: models.RoleLearner}
	if p.Name == "" {
		p.Name = md.FullName
	}
	if p.Name == "" {
		p.Name = local
	}
	if p.Username == "" {
		p.Username = local
	}
	if r, ok := models.ParseRole(md.Role); ok {
		p.Role = r
	}
	return p, nil
}
