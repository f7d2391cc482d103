package backend

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strconv"

	"github.com/spf13/cast"
)

// decodeLenient decodes one JSON object into T. A field whose JSON type does
// not match is coerced when it can be (numeric strings, whole floats for
// integer fields, numbers for string fields) and zeroed otherwise, so one
// loosely typed field never costs the whole record. It returns the names of
// the fields it had to repair.
func decodeLenient[T any](item []byte) (T, []string, error) {
	var v T
	err := json.Unmarshal(item, &v)
	var typeErr *json.UnmarshalTypeError
	if err == nil || !errors.As(err, &typeErr) {
		return v, nil, err
	}

	var fields map[string]json.RawMessage
	if json.Unmarshal(item, &fields) != nil {
		return v, nil, err
	}

	tried := make(map[string]bool)
	var repaired []string
	for range 2*len(fields) + 1 {
		if !errors.As(err, &typeErr) {
			break
		}
		name := typeErr.Field
		raw, ok := fields[name]
		if !ok {
			// nested field: what encoding/json managed to fill stays
			break
		}
		if !tried[name] {
			repaired = append(repaired, name)
		}
		if fixed, ok := coerce(raw, typeErr.Type); ok && !tried[name] {
			fields[name] = fixed
		} else {
			delete(fields, name)
		}
		tried[name] = true

		patched, mErr := json.Marshal(fields)
		if mErr != nil {
			break
		}
		var next T
		err = json.Unmarshal(patched, &next)
		v = next
	}
	if errors.As(err, &typeErr) {
		err = nil
	}
	return v, repaired, err
}

// coerce rewrites raw so that it decodes into target, if that is possible
// without guessing.
func coerce(raw json.RawMessage, target reflect.Type) (json.RawMessage, bool) {
	if target == nil {
		return nil, false
	}
	for target.Kind() == reflect.Pointer {
		target = target.Elem()
	}
	var value any
	if json.Unmarshal(raw, &value) != nil || value == nil {
		return nil, false
	}

	switch target.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f, err := cast.ToFloat64E(value)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return nil, false
		}
		return json.RawMessage(strconv.FormatInt(int64(f), 10)), true
	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(value)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false
		}
		return json.RawMessage(strconv.FormatFloat(f, 'f', -1, 64)), true
	case reflect.String:
		if _, isNumber := value.(float64); !isNumber {
			return nil, false
		}
		s, err := cast.ToStringE(value)
		if err != nil {
			return nil, false
		}
		b, err := json.Marshal(s)
		return b, err == nil
	}
	return nil, false
}
