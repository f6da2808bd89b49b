package dwolla

import (
	"fmt"
	"net/url"
	"reflect"
)

// Headers are extra request headers. They are applied after the defaults
// and replace them on conflict.
type Headers map[string]string

// IdempotencyKeyHeader deduplicates write requests on the API side.
const IdempotencyKeyHeader = "Idempotency-Key"

// Query is a flat set of query parameters. Nil values are dropped, slices
// become repeated keys (k=a&k=b) and everything else is formatted with fmt.
type Query map[string]any

// Encode renders the query string without the leading "?".
func (q Query) Encode() string {
	if len(q) == 0 {
		return ""
	}
	values := url.Values{}
	for key, value := range q {
		v, ok := indirect(value)
		if !ok {
			continue
		}
		if v.Kind() == reflect.Slice && v.Type().Elem().Kind() != reflect.Uint8 || v.Kind() == reflect.Array {
			for i := range v.Len() {
				if item, ok := indirect(v.Index(i).Interface()); ok {
					values.Add(key, fmt.Sprint(item.Interface()))
				}
			}
			continue
		}
		values.Add(key, fmt.Sprint(v.Interface()))
	}
	return values.Encode()
}

// indirect dereferences pointers and reports false for nil values.
func indirect(value any) (reflect.Value, bool) {
	v := reflect.ValueOf(value)
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}
