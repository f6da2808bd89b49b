package hal

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Decode populates target (a pointer) from a decoded JSON value. When the
// target declares a Schema the value is projected first, so fields the schema
// does not name never reach the struct. Schemas are applied once, from the
// top, and nested resources are covered by Nested and Each rules.
func Decode(raw any, target any) error {
	if s, ok := schemaOf(target); ok {
		raw = Project(raw, s)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339),
		WeaklyTypedInput: true,
		Squash:           true,
		TagName:          "json",
		Result:           target,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode resource: %w", err)
	}
	return nil
}

var schemerType = reflect.TypeFor[Schemer]()

// schemaOf resolves the Schema of the value target points to. Slices of
// schema-bearing types use the element schema.
func schemaOf(target any) (Schema, bool) {
	t := reflect.TypeOf(target)
	if t == nil || t.Kind() != reflect.Pointer {
		return nil, false
	}
	t = t.Elem()
	if t.Kind() == reflect.Slice {
		t = t.Elem()
	}
	switch {
	case t.Kind() == reflect.Interface:
		return nil, false
	case t.Implements(schemerType):
		if t.Kind() == reflect.Pointer {
			return reflect.New(t.Elem()).Interface().(Schemer).Schema(), true
		}
		return reflect.Zero(t).Interface().(Schemer).Schema(), true
	case reflect.PointerTo(t).Implements(schemerType):
		return reflect.New(t).Interface().(Schemer).Schema(), true
	}
	return nil, false
}
