package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
)

var validate = validator.New()

// prepare validates caller data against the schema and returns the document
// fields to store. With partial=false every declared field is present in the
// result: missing optional fields take their default or zero value.
func (s *Schema) prepare(data Record, partial bool) (bson.M, string) {
	out := bson.M{}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if reserved[k] {
			continue
		}
		f, ok := s.field(k)
		if !ok {
			return nil, fmt.Sprintf("unknown field %q", k)
		}
		v, reason := f.coerce(data[k])
		if reason != "" {
			return nil, reason
		}
		out[k] = v
	}

	if partial {
		return out, ""
	}
	for _, f := range s.Fields {
		if _, ok := out[f.Name]; ok {
			continue
		}
		if f.Required {
			return nil, fmt.Sprintf("%s is required", f.Name)
		}
		if f.Default != nil {
			v, reason := f.coerce(f.Default)
			if reason != "" {
				return nil, reason
			}
			out[f.Name] = v
			continue
		}
		out[f.Name] = f.zero()
	}
	return out, ""
}

func (f Field) zero() any {
	switch f.Kind {
	case Int:
		return int64(0)
	case Bool:
		return false
	case StringList:
		return []string{}
	default:
		return ""
	}
}

// coerce converts a decoded JSON value into the field's storage type and
// checks the field constraints. It returns a non-empty reason on failure.
func (f Field) coerce(v any) (any, string) {
	if v == nil {
		if f.Required {
			return nil, fmt.Sprintf("%s is required", f.Name)
		}
		if f.Default != nil {
			return f.coerce(f.Default)
		}
		if f.Kind == Enum {
			return nil, fmt.Sprintf("%s must be one of %s", f.Name, strings.Join(f.Values, ", "))
		}
		return f.zero(), ""
	}

	switch f.Kind {
	case String:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Sprintf("%s must be a string", f.Name)
		}
		if f.Required && strings.TrimSpace(s) == "" {
			return nil, fmt.Sprintf("%s is required", f.Name)
		}
		if s != "" {
			if reason := f.check(s); reason != "" {
				return nil, reason
			}
		}
		return s, ""

	case Enum:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Sprintf("%s must be a string", f.Name)
		}
		if !slices.Contains(f.Values, s) {
			return nil, fmt.Sprintf("%s must be one of %s", f.Name, strings.Join(f.Values, ", "))
		}
		return s, ""

	case Int:
		n, ok := toInt64(v)
		if !ok {
			return nil, fmt.Sprintf("%s must be an integer", f.Name)
		}
		if reason := f.check(n); reason != "" {
			return nil, reason
		}
		return n, ""

	case Bool:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Sprintf("%s must be a boolean", f.Name)
		}
		return b, ""

	case StringList:
		list, ok := toStrings(v)
		if !ok {
			return nil, fmt.Sprintf("%s must be a list of strings", f.Name)
		}
		if f.Required && len(list) == 0 {
			return nil, fmt.Sprintf("%s is required", f.Name)
		}
		return list, ""
	}
	return nil, fmt.Sprintf("%s has an unsupported type", f.Name)
}

func (f Field) check(v any) string {
	if f.Rules == "" {
		return ""
	}
	err := validate.Var(v, f.Rules)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Param() != "" {
			return fmt.Sprintf("%s failed %s=%s", f.Name, fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s is not a valid %s", f.Name, fe.Tag())
	}
	return fmt.Sprintf("%s is invalid", f.Name)
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || n >= math.MaxInt64 || n < math.MinInt64 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}
	return 0, false
}

func toStrings(v any) ([]string, bool) {
	switch l := v.(type) {
	case []string:
		return slices.Clone(l), true
	case []any:
		out := make([]string, 0, len(l))
		for _, item := range l {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	case bson.A:
		return toStrings([]any(l))
	}
	return nil, false
}
