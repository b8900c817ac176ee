package services

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"storefront/internal/apperror"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON name so rules can be keyed on it.
	v.RegisterTagNameFunc(jsonName)
	return v
}

// fieldRule describes how a failing field is reported.
type fieldRule struct {
	code    string
	message string
	// missingCode, when set, reports an absent required field. Missing
	// fields are reported before any other failure.
	missingCode    string
	missingMessage string
	// tagCodes overrides code for specific validator tags.
	tagCodes map[string]fieldRule
}

type fieldRules map[string]fieldRule

// bodyState records the fields of a decoded body whose JSON value had the
// wrong type. Request structs embed it.
type bodyState struct {
	badType map[string]bool
}

func (b *bodyState) state() *bodyState { return b }

func (b *bodyState) markBadType(field string) {
	if b.badType == nil {
		b.badType = make(map[string]bool)
	}
	b.badType[field] = true
}

// Request is a typed request body with per-field error reporting.
type Request interface {
	rules() fieldRules
	state() *bodyState
}

// Decode fills req from a JSON object body. A field holding a value of the
// wrong type is left unset and reported by validation in its field order.
// A body that is not a JSON object is rejected with INVALID_BODY.
func Decode(req Request, body []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return apperror.Validation(apperror.CodeInvalidBody, "Invalid JSON body")
	}

	v := reflect.ValueOf(req).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := jsonName(f)
		if !f.IsExported() || name == "" {
			continue
		}
		value, ok := raw[name]
		if !ok {
			continue
		}
		field := v.Field(i)
		if err := json.Unmarshal(value, field.Addr().Interface()); err != nil {
			field.Set(reflect.Zero(f.Type))
			req.state().markBadType(name)
		}
	}
	return nil
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// check validates req and converts the first failing field into an
// apperror.Error. Missing required fields with a missingCode come first,
// then the first failing field in declaration order.
func check(req Request) error {
	failures := make(map[string]validator.FieldError)
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return apperror.Internal(err)
		}
		for _, fe := range verrs {
			if _, seen := failures[fe.Field()]; !seen {
				failures[fe.Field()] = fe
			}
		}
	}
	rules := req.rules()
	badType := req.state().badType

	fields := orderedFields(req)
	for _, name := range fields {
		fe, failed := failures[name]
		rule := rules[name]
		if failed && fe.Tag() == "required" && rule.missingCode != "" && !badType[name] {
			return apperror.Validation(rule.missingCode, rule.missingMessage)
		}
	}

	for _, name := range fields {
		rule, known := rules[name]
		if badType[name] {
			return apperror.Validation(rule.code, rule.message)
		}
		fe, failed := failures[name]
		if !failed {
			continue
		}
		if !known {
			return apperror.Validation(apperror.CodeInvalidBody, "Invalid value for "+name)
		}
		if override, ok := rule.tagCodes[fe.Tag()]; ok {
			rule = override
		}
		return apperror.Validation(rule.code, rule.message)
	}
	return nil
}

// orderedFields lists the JSON names of req's fields in declaration order.
func orderedFields(req Request) []string {
	t := reflect.TypeOf(req).Elem()
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if name := jsonName(f); f.IsExported() && name != "" {
			names = append(names, name)
		}
	}
	return names
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// blankToNil trims s and drops it when nothing is left.
func blankToNil(s *string) *string {
	s = trimPtr(s)
	if s == nil || *s == "" {
		return nil
	}
	return s
}
