package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/MKhiriev/go-cinema/models"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RequestValidator checks inbound payloads: struct tag rules through
// go-playground/validator followed by the rules tags cannot express.
type RequestValidator struct {
	validate  *validator.Validate
	maxMonths int
}

// NewRequestValidator returns a Validator for the catalog payload models.
// maxMonths caps a single premium purchase; zero disables the cap.
func NewRequestValidator(maxMonths int) Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// report JSON names rather than Go field names
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &RequestValidator{validate: validate, maxMonths: maxMonths}
}

// Validate checks obj. When fields are given only those struct fields (Go
// names) are checked and the domain rules are skipped.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	if obj == nil {
		return ErrUnsupportedType
	}
	if reflect.ValueOf(obj).Kind() == reflect.Pointer && reflect.ValueOf(obj).IsNil() {
		return ErrUnsupportedType
	}

	switch value := obj.(type) {
	case models.Credentials, *models.Credentials,
		models.RegisterRequest, *models.RegisterRequest,
		models.LevelChangeRequest, *models.LevelChangeRequest,
		models.AccessLevelChangeRequest, *models.AccessLevelChangeRequest,
		models.NewMovie, *models.NewMovie,
		models.NewComment, *models.NewComment:
		return v.validateStruct(value, fields...)

	case models.RoleChangeRequest:
		return v.validateRoleChange(value, fields...)
	case *models.RoleChangeRequest:
		return v.validateRoleChange(*value, fields...)

	case models.NewEpisode:
		return v.validateNewEpisode(value, fields...)
	case *models.NewEpisode:
		return v.validateNewEpisode(*value, fields...)

	case models.PremiumPurchaseRequest:
		return v.validatePremiumPurchase(value, fields...)
	case *models.PremiumPurchaseRequest:
		return v.validatePremiumPurchase(*value, fields...)

	case models.AddMoneyRequest:
		return v.validateAddMoney(value)
	case *models.AddMoneyRequest:
		return v.validateAddMoney(*value)

	case models.UserPatch:
		return v.validatePatch(value, value.IsEmpty(), fields...)
	case *models.UserPatch:
		return v.validatePatch(value, value.IsEmpty(), fields...)

	case models.MoviePatch:
		return v.validatePatch(value, value.IsEmpty(), fields...)
	case *models.MoviePatch:
		return v.validatePatch(value, value.IsEmpty(), fields...)

	case models.CommentPatch:
		return v.validatePatch(value, value.IsEmpty(), fields...)
	case *models.CommentPatch:
		return v.validatePatch(value, value.IsEmpty(), fields...)

	case models.EpisodePatch:
		return v.validateEpisodePatch(value, fields...)
	case *models.EpisodePatch:
		return v.validateEpisodePatch(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateStruct(obj any, fields ...string) error {
	var err error
	if len(fields) > 0 {
		if err = checkFieldsExist(obj, fields); err != nil {
			return err
		}
		err = v.validate.StructPartial(obj, fields...)
	} else {
		err = v.validate.Struct(obj)
	}

	return translate(err)
}

func (v *RequestValidator) validateRoleChange(req models.RoleChangeRequest, fields ...string) error {
	if err := v.validateStruct(req, fields...); err != nil {
		return err
	}
	if len(fields) == 0 && !req.Role.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, req.Role)
	}
	return nil
}

func (v *RequestValidator) validateNewEpisode(req models.NewEpisode, fields ...string) error {
	if err := v.validateStruct(req, fields...); err != nil {
		return err
	}
	if len(fields) == 0 && req.Cost != nil && req.Cost.IsNegative() {
		return ErrNegativeCost
	}
	return nil
}

func (v *RequestValidator) validatePremiumPurchase(req models.PremiumPurchaseRequest, fields ...string) error {
	if err := v.validateStruct(req, fields...); err != nil {
		return err
	}
	if len(fields) > 0 {
		return nil
	}
	if req.Months < 1 || (v.maxMonths > 0 && req.Months > v.maxMonths) {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidMonths, req.Months, v.maxMonths)
	}
	return nil
}

func (v *RequestValidator) validateAddMoney(req models.AddMoneyRequest) error {
	if !req.Amount.GreaterThan(decimal.Zero) {
		return ErrNonPositiveAmount
	}
	return nil
}

func (v *RequestValidator) validatePatch(patch any, empty bool, fields ...string) error {
	if len(fields) == 0 && empty {
		return ErrNoFieldsToUpdate
	}
	return v.validateStruct(patch, fields...)
}

func (v *RequestValidator) validateEpisodePatch(patch models.EpisodePatch, fields ...string) error {
	if err := v.validatePatch(patch, patch.IsEmpty(), fields...); err != nil {
		return err
	}
	if len(fields) == 0 && patch.Cost != nil && patch.Cost.IsNegative() {
		return ErrNegativeCost
	}
	return nil
}

func checkFieldsExist(obj any, fields []string) error {
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for _, f := range fields {
		if _, ok := t.FieldByName(f); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}
	return nil
}

// translate turns validator.ValidationErrors into an ErrInvalidInput
// carrying one readable message per violation.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is a required field", fe.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid e-mail", fe.Field()))
		case "min", "gte", "gt":
			msgs = append(msgs, fmt.Sprintf("field %s must be at least %s", fe.Field(), fe.Param()))
		case "max", "lte":
			msgs = append(msgs, fmt.Sprintf("field %s must be at most %s", fe.Field(), fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("field %s must be one of [%s]", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", fe.Field()))
		}
	}

	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, ", "))
}
