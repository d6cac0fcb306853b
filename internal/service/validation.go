package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/maxviazov/lead-service/internal/model"
)

func newValidator() *validator.Validate {
	v := validator.New()
	// report json names so field errors match the request body
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// normalizeInput trims surrounding whitespace; blank optional fields become nil.
func normalizeInput(in model.LeadInput) model.LeadInput {
	in.Name = strings.TrimSpace(in.Name)
	in.JobTitle = strings.TrimSpace(in.JobTitle)
	in.Company = strings.TrimSpace(in.Company)
	in.Email = strings.TrimSpace(in.Email)
	in.Industry = strings.TrimSpace(in.Industry)
	if in.PhoneNumber != nil {
		p := strings.TrimSpace(*in.PhoneNumber)
		if p == "" {
			in.PhoneNumber = nil
		} else {
			in.PhoneNumber = &p
		}
	}
	return in
}

// fieldErrors converts validator output into FieldErrors, prefixing names
// (e.g. "leads[2].") for batch items.
func fieldErrors(err error, prefix string) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: strings.TrimSuffix(prefix, "."), Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: prefix + fe.Field(), Message: describe(fe)})
	}
	return out
}

func describe(fe validator.FieldError) string {
	numeric := fe.Kind() == reflect.Int || fe.Kind() == reflect.Int64
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if numeric {
			return fmt.Sprintf("must be >= %s", fe.Param())
		}
		return fmt.Sprintf("length must be at least %s", fe.Param())
	case "max":
		if numeric {
			return fmt.Sprintf("must be <= %s", fe.Param())
		}
		return fmt.Sprintf("length must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
