// Package validation checks user input and configuration before anything
// reaches the network.
package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/dmitrijs2005/docdesk/internal/client/models"
	"github.com/dmitrijs2005/docdesk/internal/logging"
	"github.com/go-playground/validator"
)

// ErrValidation matches every *Error with errors.Is.
var ErrValidation = errors.New("validation failed")

// Error is a user-facing validation failure.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Is(target error) bool { return target == ErrValidation }

type Validator struct {
	validator   *validator.Validate
	logger      logging.Logger
	tagsOnce    sync.Once
	tagsDetails map[string]tagDetails
}

type tagDetails struct {
	fn      validator.Func
	message string
}

func New(logger logging.Logger) (*Validator, error) {
	v := &Validator{validator: validator.New(), logger: logger}
	v.validator.RegisterTagNameFunc(useFieldNames)
	for tag, d := range v.tags() {
		if err := v.validator.RegisterValidation(tag, d.fn); err != nil {
			logger.Error(context.Background(), "failed to register validator", "tag", tag, "err", err.Error())
			return nil, err
		}
	}
	return v, nil
}

// Validate checks i against its `validate` struct tags and returns an *Error
// describing the first violation.
func (v *Validator) Validate(ctx context.Context, i any) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}
	v.logger.Debug(ctx, "validation failed", "err", err.Error())

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}

	first := errs[0]
	if d, ok := v.tags()[first.Tag()]; ok {
		return &Error{Field: first.Field(), Message: d.message}
	}

	switch first.Tag() {
	case "required":
		return &Error{Field: first.Field(), Message: fmt.Sprintf("missing required field '%s'", first.Field())}
	case "url":
		return &Error{Field: first.Field(), Message: fmt.Sprintf("field '%s' must be an absolute URL", first.Field())}
	case "oneof":
		return &Error{Field: first.Field(), Message: fmt.Sprintf("field '%s' must be one of: %s", first.Field(), first.Param())}
	case "min", "max":
		return &Error{Field: first.Field(), Message: fmt.Sprintf("value of field '%s' is not in the expected range", first.Field())}
	}
	return &Error{Field: first.Field(), Message: fmt.Sprintf("invalid value for field '%s'", first.Field())}
}

// ValidateUpload applies the extension whitelist to a file picked for upload.
func (v *Validator) ValidateUpload(ctx context.Context, f models.UploadFile) error {
	return v.Validate(ctx, f)
}

func (v *Validator) tags() map[string]tagDetails {
	v.tagsOnce.Do(func() {
		v.tagsDetails = map[string]tagDetails{
			"document_ext": {
				fn:      isSupportedDocument,
				message: "Only PDF, DOCX and PPTX files are supported",
			},
		}
	})
	return v.tagsDetails
}

func isSupportedDocument(fl validator.FieldLevel) bool {
	return models.IsSupportedDocument(fl.Field().String())
}

// useFieldNames reports fields by their json (or mapstructure) name so
// config errors name the key the user actually wrote.
func useFieldNames(fld reflect.StructField) string {
	for _, key := range []string{"json", "mapstructure"} {
		name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}
