package record

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	cerr "github.com/next-trace/scg-message-catalog/contract/errors"
	"github.com/next-trace/scg-message-catalog/internal/structs"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		if name == "" {
			return f.Name
		}

		return name
	})

	return v
}

// Validate checks v against its `validate` struct tags. identity lists the record's target identity
// fields (logical or Go names): a violation on one of them wraps ErrMalformedIdentity, any other
// violation wraps ErrInvalidRecord.
func Validate(v any, identity ...string) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("validate %T: not a record: %w", v, cerr.ErrInvalidRecord)
	}

	err := validate.Struct(rv.Interface())
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate %s: %w", rv.Type().Name(), errors.Join(cerr.ErrInvalidRecord, err))
	}

	schema := structs.Of(rv.Type())
	ids := make(map[string]struct{}, len(identity))

	for _, name := range identity {
		if f, ok := schema.Lookup(name); ok {
			ids[f.Name] = struct{}{}
		}
	}

	sentinel := cerr.ErrInvalidRecord

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+":"+fe.Tag())

		if _, ok := ids[fe.Field()]; ok {
			sentinel = cerr.ErrMalformedIdentity
		}
	}

	return fmt.Errorf("validate %s: %s: %w", rv.Type().Name(), strings.Join(fields, ","), sentinel)
}
