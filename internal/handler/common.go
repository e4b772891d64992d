package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	customError "github.com/acff/debt-engine/pkg/errors"
	"github.com/acff/debt-engine/pkg/response"
)

// newValidator registers decimal.Decimal as a float64-compatible type so
// the standard numeric tags (gt, gte) apply to money fields.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// respondError maps business errors onto the HTTP status conventions:
// 404 for missing records, 400 for rejected input, 409 for duplicates,
// 500 for everything unexpected.
func respondError(w http.ResponseWriter, err error) {
	var businessErr *customError.BusinessError
	if errors.As(err, &businessErr) {
		switch businessErr.Code {
		case customError.ErrCodeLoanNotFound,
			customError.ErrCodePaymentNotFound,
			customError.ErrCodeDebtorNotFound,
			customError.ErrCodeUserNotFound:
			response.NotFound(w, businessErr.Message)
		case customError.ErrCodeInvalidPaymentAmount,
			customError.ErrCodeInvalidLoanAmount,
			customError.ErrCodeInvalidReference:
			response.BadRequest(w, businessErr.Message, nil)
		case customError.ErrCodeDebtorAlreadyExists:
			response.Conflict(w, businessErr.Message)
		default:
			response.InternalServerError(w, "unexpected error", err)
		}
		return
	}

	response.InternalServerError(w, "unexpected error", err)
}

// pathID parses a UUID path variable.
func pathID(r *http.Request, key string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[key])
}
