package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"rondasapi/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bind decodes the JSON body into dst and runs struct validation.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return &paramError{"INVALID_BODY", "corpo da requisição inválido"}
	}
	if err := validate.Struct(dst); err != nil {
		return &paramError{"VALIDATION_ERROR", validationMessage(err)}
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "dados inválidos"
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s é obrigatório", fe.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s deve ser um email válido", fe.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s deve ter ao menos %s caracteres", fe.Field(), fe.Param()))
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("%s deve estar no formato HH:MM", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s inválido", fe.Field()))
		}
	}
	return strings.Join(msgs, "; ")
}

// paramError is a malformed path or query value. writeServiceError renders it as 400.
type paramError struct {
	code    string
	message string
}

func (e *paramError) Error() string { return e.message }

func idParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, &paramError{"INVALID_ID", fmt.Sprintf("%s inválido", name)}
	}
	return id, nil
}

// dateParam reads a YYYY-MM-DD path value. Calendar days are kept in UTC,
// as model.Date scans them.
func dateParam(c *fiber.Ctx, name string) (model.Date, error) {
	d, err := model.ParseDate(c.Params(name), time.UTC)
	if err != nil {
		return model.Date{}, &paramError{"INVALID_DATE", "data deve estar no formato YYYY-MM-DD"}
	}
	return d, nil
}

// optionalDate reads a YYYY-MM-DD query value; absent yields nil.
func optionalDate(c *fiber.Ctx, name string) (*model.Date, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	d, err := model.ParseDate(raw, time.UTC)
	if err != nil {
		return nil, &paramError{"INVALID_DATE", fmt.Sprintf("%s deve estar no formato YYYY-MM-DD", name)}
	}
	return &d, nil
}

func optionalID(c *fiber.Ctx, name string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, &paramError{"INVALID_ID", fmt.Sprintf("%s inválido", name)}
	}
	return &id, nil
}

// condoDateParams reads the :condominio_id/:data pair shared by the per-day routes.
func condoDateParams(c *fiber.Ctx) (int64, model.Date, error) {
	id, err := idParam(c, "condominio_id")
	if err != nil {
		return 0, model.Date{}, err
	}
	d, err := dateParam(c, "data")
	if err != nil {
		return 0, model.Date{}, err
	}
	return id, d, nil
}
