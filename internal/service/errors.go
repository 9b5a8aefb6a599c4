package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
)

const fkViolationCode = "23503"

// isForeignKeyViolation reports whether the error is a postgres
// foreign-key rejection, which callers surface as a conflict.
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == fkViolationCode
	}
	return false
}

// fieldErrors converts validator failures into a field -> messages map.
func fieldErrors(err error) map[string][]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string][]string, len(verrs))
	for _, verr := range verrs {
		field := strings.ToLower(verr.Field())
		var message string
		switch verr.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", field, verr.Param())
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}
		fields[field] = append(fields[field], message)
	}
	return fields
}
