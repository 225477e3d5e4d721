package handler

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/polinatih/school-proj/pkg/errors"
	"github.com/polinatih/school-proj/pkg/response"
)

// Validation errors report JSON field names instead of Go field names.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
	}
}

// renderError writes err as a failure envelope. Unclassified errors become
// a 500 whose message echoes the cause.
func renderError(c *gin.Context, err error, fallback string) {
	e, ok := pkgerrors.As(err)
	if !ok {
		response.InternalError(c, fallback, err)
		return
	}
	if e.Kind == pkgerrors.KindInternal {
		cause := e.Err
		if cause == nil {
			cause = errors.New(e.Message)
		}
		response.InternalError(c, e.Message, cause)
		return
	}
	response.Fail(c, e)
}

// bindError classifies a request binding failure. required is the full
// list of required fields for the operation.
func bindError(err error, required []string) *pkgerrors.Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		var missing []string
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				missing = append(missing, fe.Field())
			}
		}
		if len(missing) > 0 {
			return pkgerrors.MissingFields(required, missing)
		}
		return pkgerrors.Validation("Invalid value for " + verrs[0].Field())
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return pkgerrors.Validation("Invalid value for " + typeErr.Field)
	}
	return pkgerrors.Validation("Invalid request body").Wrap(err)
}
