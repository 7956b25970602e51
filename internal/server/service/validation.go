package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/IvanChernomyrdin/go-users-api/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-users-api/internal/shared/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// NormalizeUser приводит поля к каноническому виду: имя и email без
// пробелов по краям, email в нижнем регистре.
func NormalizeUser(u *models.User) {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
}

// NormalizePatch делает то же самое для переданных полей патча.
func NormalizePatch(p *models.UserPatch) {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		p.Name = &name
	}
	if p.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*p.Email))
		p.Email = &email
	}
}

// ValidateUser проверяет запись перед сохранением.
// Возвращает *serr.ValidationError либо nil.
func ValidateUser(u *models.User) error {
	return toValidationError(getValidator().Struct(u))
}

// ValidatePatch проверяет только те поля, которые есть в патче.
func ValidatePatch(p *models.UserPatch) error {
	return toValidationError(getValidator().Struct(p))
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", serr.ErrInvalidInput, err)
	}

	out := &serr.ValidationError{Fields: make([]serr.FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, serr.FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: fieldMessage(fe),
		})
	}
	return out
}

// fieldMessage переводит правило validator в человекочитаемое сообщение.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Param() == "1" {
			return "is required"
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed on %q rule", fe.Tag())
	}
}
