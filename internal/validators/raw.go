package validators

import (
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Raw is untrusted input: decoded JSON or a flattened form post.
type Raw map[string]any

func FromForm(values url.Values) Raw {
	raw := make(Raw, len(values))
	for k, v := range values {
		if len(v) > 0 {
			raw[k] = v[0]
		}
	}
	return raw
}

const (
	msgExpectedString  = "Se așteaptă un text."
	msgExpectedNumber  = "Se așteaptă un număr."
	msgExpectedInteger = "Se așteaptă un număr întreg."
	msgExpectedBoolean = "Se așteaptă o valoare adevărat/fals."
	msgExpectedList    = "Se așteaptă o listă."
	msgExpectedObject  = "Se așteaptă un obiect."
)

// reader coerces raw values and records type errors; rule checks happen
// afterwards on the typed struct.
type reader struct {
	raw    Raw
	errs   FieldErrors
	prefix string
}

func newReader(raw Raw) *reader {
	if raw == nil {
		raw = Raw{}
	}
	return &reader{raw: raw, errs: FieldErrors{}}
}

// sub reads a nested object; its errors land in the parent under prefix.
func (r *reader) sub(prefix string, raw Raw) *reader {
	if raw == nil {
		raw = Raw{}
	}
	return &reader{raw: raw, errs: r.errs, prefix: r.prefix + prefix}
}

func (r *reader) fail(key, msg string) {
	r.errs.Add(r.prefix+key, msg)
}

func (r *reader) failed(key string) bool {
	return r.errs.Has(r.prefix + key)
}

// list returns the nested objects under key.
func (r *reader) list(key string) []Raw {
	v, ok := r.raw[key]
	if !ok || v == nil {
		r.fail(key, msgExpectedList)
		return nil
	}

	items, ok := v.([]any)
	if !ok {
		if typed, ok := v.([]map[string]any); ok {
			out := make([]Raw, len(typed))
			for i, m := range typed {
				out[i] = m
			}
			return out
		}
		r.fail(key, msgExpectedList)
		return nil
	}

	out := make([]Raw, 0, len(items))
	for i, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			r.fail(key+"."+strconv.Itoa(i), msgExpectedObject)
			out = append(out, nil)
			continue
		}
		out = append(out, m)
	}
	return out
}

func (r *reader) present(key string) bool {
	v, ok := r.raw[key]
	return ok && v != nil
}

func (r *reader) str(key string) string {
	v, ok := r.raw[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.fail(key, msgExpectedString)
		return ""
	}
	return s
}

func (r *reader) optStr(key string) *string {
	if !r.present(key) {
		return nil
	}
	s := r.str(key)
	if r.failed(key) {
		return nil
	}
	return &s
}

// number coerces like a form library would: numeric strings are parsed and
// an empty string reads as zero.
func (r *reader) number(key string) float64 {
	v, ok := r.raw[key]
	if !ok || v == nil {
		r.fail(key, msgExpectedNumber)
		return 0
	}

	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			r.fail(key, msgExpectedNumber)
		}
		return f
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			r.fail(key, msgExpectedNumber)
			return 0
		}
		return f
	case bool:
		if n {
			return 1
		}
		return 0
	default:
		r.fail(key, msgExpectedNumber)
		return 0
	}
}

func (r *reader) integer(key string) int64 {
	f := r.number(key)
	if r.failed(key) {
		return 0
	}
	if f != math.Trunc(f) {
		r.fail(key, msgExpectedInteger)
		return 0
	}
	return int64(f)
}

func (r *reader) boolean(key string) bool {
	v, ok := r.raw[key]
	if !ok || v == nil {
		r.fail(key, msgExpectedBoolean)
		return false
	}

	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "on":
			return true
		case "false", "off", "":
			return false
		}
	}

	r.fail(key, msgExpectedBoolean)
	return false
}
