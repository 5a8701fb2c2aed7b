// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package recommendation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	cnserrors "github.com/NVIDIA/dbmatch/pkg/errors"
)

// Importance bounds shared by every importance field.
const (
	MinImportance = 1
	MaxImportance = 10
)

// Rule names reported in violations.
const (
	RuleRequired = "required"
	RuleString   = "string"
	RuleNumber   = "number"
	RuleInteger  = "integer"
	RuleRange    = "range"
)

// Kind is the value type a field rule expects.
type Kind string

const (
	KindText   Kind = "text"
	KindNumber Kind = "number"
)

// FieldRule is one row of the request rule table.
type FieldRule struct {
	Field    string
	Kind     Kind
	Required bool
	Min      int
	Max      int

	// assign stores a checked value into the typed request.
	assign func(r *Request, v any)
}

// Tag returns the validator tag the rule compiles to.
func (fr FieldRule) Tag() string {
	var parts []string
	if fr.Required {
		parts = append(parts, "required")
	}
	if fr.Kind == KindNumber {
		parts = append(parts, fmt.Sprintf("min=%d", fr.Min), fmt.Sprintf("max=%d", fr.Max))
	}
	return strings.Join(parts, ",")
}

// Label returns a human readable name for the field ("dataSize" -> "Data Size").
func (fr FieldRule) Label() string {
	return fieldLabel(fr.Field)
}

func textRule(field string, assign func(r *Request, s string)) FieldRule {
	return FieldRule{
		Field:    field,
		Kind:     KindText,
		Required: true,
		assign:   func(r *Request, v any) { assign(r, v.(string)) },
	}
}

func importanceRule(field string, assign func(r *Request, n int)) FieldRule {
	return FieldRule{
		Field:    field,
		Kind:     KindNumber,
		Required: true,
		Min:      MinImportance,
		Max:      MaxImportance,
		assign:   func(r *Request, v any) { assign(r, v.(int)) },
	}
}

// rules is evaluated top to bottom; violations are reported in this order.
var rules = []FieldRule{
	textRule(FieldProductCategory, func(r *Request, s string) { r.ProductCategory = s }),
	textRule(FieldDataSize, func(r *Request, s string) { r.DataSize = s }),
	textRule(FieldInitialUsers, func(r *Request, s string) { r.InitialUsers = s }),
	textRule(FieldReadWritePattern, func(r *Request, s string) { r.ReadWritePattern = s }),
	textRule(FieldSchemaChangeFrequency, func(r *Request, s string) { r.SchemaChangeFrequency = s }),
	importanceRule(FieldDataAccuracyImportance, func(r *Request, n int) { r.DataAccuracyImportance = n }),
	importanceRule(FieldScalabilityImportance, func(r *Request, n int) { r.ScalabilityImportance = n }),
	textRule(FieldBudget, func(r *Request, s string) { r.Budget = s }),
	textRule(FieldUserGeography, func(r *Request, s string) { r.UserGeography = s }),
	importanceRule(FieldLatencyImportance, func(r *Request, n int) { r.LatencyImportance = n }),
}

// Rules returns a copy of the request rule table.
func Rules() []FieldRule {
	out := make([]FieldRule, len(rules))
	copy(out, rules)
	return out
}

// Violation is a single failed rule for a single field.
type Violation struct {
	Field   string `json:"field" yaml:"field"`
	Rule    string `json:"rule" yaml:"rule"`
	Message string `json:"message" yaml:"message"`
}

// ContextKeyViolations is the structured error context key carrying []Violation.
const ContextKeyViolations = "violations"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks a decoded request object against the rule table.
// Every violation is collected before returning. On success the typed
// request is returned; on failure the error is a StructuredError with code
// INVALID_REQUEST and the violations under ContextKeyViolations.
func Validate(input map[string]any) (*Request, error) {
	req := &Request{}
	var violations []Violation

	for _, fr := range rules {
		v, err := fr.check(input[fr.Field])
		if err != nil {
			violations = append(violations, *err)
			continue
		}
		if v != nil {
			fr.assign(req, v)
		}
	}

	if len(violations) > 0 {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"Request validation failed", map[string]any{
				ContextKeyViolations: violations,
			})
	}
	return req, nil
}

// ViolationsOf extracts the violations carried by a validation error.
func ViolationsOf(err error) []Violation {
	var se *cnserrors.StructuredError
	if !errors.As(err, &se) || se.Context == nil {
		return nil
	}
	v, _ := se.Context[ContextKeyViolations].([]Violation)
	return v
}

// check returns the normalized value (string or int) or the first violation.
func (fr FieldRule) check(raw any) (any, *Violation) {
	if raw == nil {
		if fr.Required {
			return nil, fr.violation(RuleRequired, "is required")
		}
		return nil, nil
	}

	switch fr.Kind {
	case KindText:
		s, ok := raw.(string)
		if !ok {
			return nil, fr.violation(RuleString, "must be a string")
		}
		if err := getValidator().Var(strings.TrimSpace(s), fr.Tag()); err != nil {
			return nil, fr.violation(RuleRequired, "is required")
		}
		return s, nil

	case KindNumber:
		f, ok := toNumber(raw)
		if !ok {
			return nil, fr.violation(RuleNumber, "must be a number")
		}
		if f != math.Trunc(f) {
			return nil, fr.violation(RuleInteger, "must be a whole number")
		}
		if f < math.MinInt32 || f > math.MaxInt32 {
			return nil, fr.rangeViolation()
		}
		n := int(f)
		if err := getValidator().Var(n, fr.Tag()); err != nil {
			return nil, fr.rangeViolation()
		}
		return n, nil
	}

	return nil, fr.violation(RuleString, fmt.Sprintf("has unsupported kind %q", fr.Kind))
}

func (fr FieldRule) rangeViolation() *Violation {
	return fr.violation(RuleRange, fmt.Sprintf("must be between %d and %d", fr.Min, fr.Max))
}

func (fr FieldRule) violation(rule, msg string) *Violation {
	return &Violation{
		Field:   fr.Field,
		Rule:    rule,
		Message: fmt.Sprintf("%s %s", fr.Label(), msg),
	}
}

// toNumber accepts JSON and YAML numbers as well as numeric strings.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		return toNumber(float64(n))
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return toNumber(f)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return toNumber(f)
	default:
		return 0, false
	}
}

// fieldLabel splits a camelCase field name into title-cased words.
func fieldLabel(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	// Casers are stateful and not safe for concurrent use.
	return cases.Title(language.English).String(b.String())
}
