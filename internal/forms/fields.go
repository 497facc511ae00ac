// Package forms declares data-driven field specs and their validators.
//
// Each wizard step is a list of Field specs; labels are i18n keys resolved at
// render time, so nothing is rebuilt per request to re-localize. Validators
// return typed results (Values or Errors), never panics or sentinel flows.
package forms

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kudimara/kudimara/internal/i18n"
)

// Kind selects the validator for a field.
type Kind int

const (
	KindString Kind = iota
	KindEmail
	KindMoney
	KindInt
	KindEnum
	KindBool
	KindDate
)

// Field describes one form input.
type Field struct {
	Name     string
	LabelKey string
	Kind     Kind
	Optional bool
	// Options lists the allowed values for KindEnum.
	Options []string
	// Min and Max bound KindInt values when MaxSet is true.
	Min    int
	Max    int
	MaxSet bool
}

// IsEnum and IsBool pick the widget in templates.
func (f Field) IsEnum() bool { return f.Kind == KindEnum }
func (f Field) IsBool() bool { return f.Kind == KindBool }

// InputType maps the field kind to an HTML input type.
func (f Field) InputType() string {
	switch f.Kind {
	case KindEmail:
		return "email"
	case KindInt:
		return "number"
	case KindDate:
		return "date"
	default:
		return "text"
	}
}

// Values holds the raw (but validated) submitted strings for one step.
type Values map[string]string

// Errors maps field name to a localized message. Empty means valid.
type Errors map[string]string

// MaxAmount bounds every monetary input.
var MaxAmount = decimal.New(1, 10) // 10^10

// emailRe is deliberately loose: one @, a dot in the domain part.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validate runs every field's validator against the submitted form and
// returns either the cleaned values or per-field localized errors.
func Validate(fields []Field, form url.Values, lang string) (Values, Errors) {
	values := make(Values, len(fields))
	errs := make(Errors)
	for _, f := range fields {
		raw := strings.TrimSpace(form.Get(f.Name))
		if raw == "" {
			if f.Kind == KindBool {
				values[f.Name] = "false"
				continue
			}
			if f.Optional {
				continue
			}
			errs[f.Name] = i18n.T("core_field_required", lang)
			continue
		}
		clean, msgKey := f.check(raw)
		if msgKey != "" {
			errs[f.Name] = i18n.T(msgKey, lang)
			continue
		}
		values[f.Name] = clean
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return values, nil
}

// check validates one raw value and returns the normalized value or the i18n
// key of the failure message.
func (f Field) check(raw string) (string, string) {
	switch f.Kind {
	case KindString:
		return raw, ""
	case KindEmail:
		if !emailRe.MatchString(raw) {
			return "", "core_field_email"
		}
		return strings.ToLower(raw), ""
	case KindMoney:
		d, err := ParseAmount(raw)
		if err != nil {
			return "", "core_field_amount"
		}
		return d.String(), ""
	case KindInt:
		n, err := strconv.Atoi(strings.ReplaceAll(raw, ",", ""))
		if err != nil {
			return "", "core_field_integer"
		}
		if n < f.Min || (f.MaxSet && n > f.Max) {
			return "", "core_field_integer"
		}
		return strconv.Itoa(n), ""
	case KindEnum:
		for _, opt := range f.Options {
			if raw == opt {
				return raw, ""
			}
		}
		return "", "core_field_choice"
	case KindBool:
		switch raw {
		case "true", "on", "1", "yes":
			return "true", ""
		default:
			return "false", ""
		}
	case KindDate:
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return "", "core_field_date"
		}
		return d.Format("2006-01-02"), ""
	}
	return raw, ""
}

// ParseAmount parses a monetary amount with commas stripped and enforces
// 0 <= x <= 10^10.
func ParseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() || d.GreaterThan(MaxAmount) {
		return decimal.Zero, errOutOfRange
	}
	return d, nil
}

var errOutOfRange = &amountRangeError{}

type amountRangeError struct{}

func (*amountRangeError) Error() string { return "amount out of range" }

// Amount reads a validated monetary value as a decimal. Missing or
// unparsable values read as zero; validation has already run by the time
// finalizers call this.
func (v Values) Amount(name string) decimal.Decimal {
	d, err := decimal.NewFromString(v[name])
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Float reads a validated monetary value as float64 for storage.
func (v Values) Float(name string) float64 {
	f, _ := v.Amount(name).Float64()
	return f
}

// Int reads a validated integer value, zero when absent.
func (v Values) Int(name string) int {
	n, _ := strconv.Atoi(v[name])
	return n
}

// Bool reads a validated boolean value.
func (v Values) Bool(name string) bool {
	return v[name] == "true"
}
