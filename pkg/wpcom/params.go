package wpcom

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
)

// Params holds query or body fields for a call. Values are scalars, slices
// or nested maps; anything JSON can encode is accepted in bodies.
type Params map[string]any

// Truthy returns a copy without the entries WordPress treats as empty:
// nil, "", "0", false, numeric zero and empty slices or maps.
func (p Params) Truthy() Params {
	out := make(Params, len(p))
	for k, v := range p {
		if isFalsy(v) {
			continue
		}
		out[k] = v
	}
	return out
}

func isFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == "" || t == "0"
	case bool:
		return !t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return isFalsy(rv.Elem().Interface())
	case reflect.String:
		return rv.String() == "" || rv.String() == "0"
	case reflect.Bool:
		return !rv.Bool()
	}
	return false
}

// Values encodes p the way WordPress builds query strings: slices become
// key[0]=a&key[1]=b, maps become key[sub]=v, booleans become 1 or 0 and
// nil entries are skipped.
func (p Params) Values() url.Values {
	vals := url.Values{}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		appendValue(vals, k, p[k])
	}
	return vals
}

func appendValue(vals url.Values, key string, v any) {
	switch t := v.(type) {
	case nil:
		return
	case string:
		vals.Add(key, t)
		return
	case []string:
		for i, s := range t {
			vals.Add(fmt.Sprintf("%s[%d]", key, i), s)
		}
		return
	case bool:
		if t {
			vals.Add(key, "1")
		} else {
			vals.Add(key, "0")
		}
		return
	case json.Number:
		vals.Add(key, t.String())
		return
	case fmt.Stringer:
		vals.Add(key, t.String())
		return
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		vals.Add(key, strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		vals.Add(key, strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		vals.Add(key, strconv.FormatFloat(rv.Float(), 'f', -1, 64))
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			appendValue(vals, fmt.Sprintf("%s[%d]", key, i), rv.Index(i).Interface())
		}
	case reflect.Map:
		subKeys := make([]string, 0, rv.Len())
		byKey := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			sk := fmt.Sprint(iter.Key().Interface())
			subKeys = append(subKeys, sk)
			byKey[sk] = iter.Value().Interface()
		}
		sort.Strings(subKeys)
		for _, sk := range subKeys {
			appendValue(vals, key+"["+sk+"]", byKey[sk])
		}
	case reflect.Pointer, reflect.Interface:
		if !rv.IsNil() {
			appendValue(vals, key, rv.Elem().Interface())
		}
	default:
		vals.Add(key, fmt.Sprint(v))
	}
}
