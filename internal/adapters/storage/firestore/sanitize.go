package firestore

import (
	"fmt"
	"reflect"
	"strings"
)

// The merge writes in this package go through Set with map payloads, so
// every value must be something Firestore can encode. Typed nils inside
// interface values (a nil slice stored in an interface{}, a nil map, a
// nil pointer) are not: they reach the encoder as non-nil interfaces
// and fail or write garbage. sanitizeValue normalizes them to plain nil
// recursively; the pass is idempotent.

func sanitizeValue(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return sanitizeValue(rv.Elem().Interface())

	case reflect.Map:
		if rv.IsNil() {
			return nil, nil
		}
		out := make(map[string]interface{}, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key, ok := iter.Key().Interface().(string)
			if !ok {
				key = fmt.Sprintf("%v", iter.Key().Interface())
			}
			clean, err := sanitizeValue(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			out[key] = clean
		}
		return out, nil

	case reflect.Slice:
		if rv.IsNil() {
			return nil, nil
		}
		out := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			clean, err := sanitizeValue(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = clean
		}
		return out, nil

	case reflect.Struct:
		return v, nil

	default:
		return v, nil
	}
}

// sanitizeMap normalizes a merge payload in place of the raw map.
func sanitizeMap(m map[string]interface{}) (map[string]interface{}, error) {
	clean, err := sanitizeValue(m)
	if err != nil {
		return nil, err
	}
	if clean == nil {
		return map[string]interface{}{}, nil
	}
	out, ok := clean.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("sanitize: expected map, got %T", clean)
	}
	return out, nil
}

// structToMap flattens a firestore-tagged struct into a field map so it
// can be written with MergeAll. Struct-typed Sets replace the whole
// document; map Sets merge field by field, which is the contract the
// stores rely on.
func structToMap(v interface{}) map[string]interface{} {
	rv := reflect.ValueOf(v)
	rt := rv.Type()

	out := make(map[string]interface{}, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("firestore")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]

		value := rv.Field(i).Interface()
		if field.Type.Kind() == reflect.Struct && field.Type.String() != "time.Time" {
			value = structToMap(value)
		}
		if field.Type.Kind() == reflect.Slice && field.Type.Elem().Kind() == reflect.Struct {
			fv := rv.Field(i)
			items := make([]interface{}, fv.Len())
			for j := 0; j < fv.Len(); j++ {
				items[j] = structToMap(fv.Index(j).Interface())
			}
			value = items
		}
		if field.Type.Kind() == reflect.Map && field.Type.Elem().Kind() == reflect.Struct {
			fv := rv.Field(i)
			nested := make(map[string]interface{}, fv.Len())
			iter := fv.MapRange()
			for iter.Next() {
				nested[fmt.Sprintf("%v", iter.Key().Interface())] = structToMap(iter.Value().Interface())
			}
			value = nested
		}
		out[name] = value
	}
	return out
}
