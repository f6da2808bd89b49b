package hal

import (
	"slices"
	"time"
)

// Rule projects a single wire field. The boolean result reports whether
// the field is kept in the projection.
type Rule interface {
	apply(v any) (any, bool)
}

type ruleFunc func(v any) (any, bool)

func (f ruleFunc) apply(v any) (any, bool) { return f(v) }

// Schema maps wire field names to the rule applied to them. Fields that are
// not named are dropped.
type Schema map[string]Rule

// Schemer is implemented by models that declare their own projection.
type Schemer interface {
	Schema() Schema
}

// Copy keeps the value as is.
func Copy() Rule {
	return ruleFunc(func(v any) (any, bool) { return v, true })
}

// Nested projects an object value with a nested schema. Arrays of objects
// are projected element by element. Anything else is dropped.
func Nested(s Schema) Rule {
	return ruleFunc(func(v any) (any, bool) {
		switch val := v.(type) {
		case map[string]any:
			return Project(val, s), true
		case []any:
			for _, item := range val {
				if _, ok := item.(map[string]any); !ok {
					return nil, false
				}
			}
			return Project(val, s), true
		default:
			return nil, false
		}
	})
}

// Each projects every element of an array value with the schema. Non-array
// values are dropped.
func Each(s Schema) Rule {
	return ruleFunc(func(v any) (any, bool) {
		items, ok := v.([]any)
		if !ok {
			return nil, false
		}
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = Project(item, s)
		}
		return out, true
	})
}

// Time keeps RFC 3339 timestamps and drops any other value.
func Time() Rule {
	return ruleFunc(func(v any) (any, bool) {
		str, ok := v.(string)
		if !ok {
			return nil, false
		}
		if _, err := time.Parse(time.RFC3339, str); err != nil {
			return nil, false
		}
		return str, true
	})
}

// Transform converts the value with fn.
func Transform(fn func(v any) any) Rule {
	return ruleFunc(func(v any) (any, bool) { return fn(v), true })
}

// Enum keeps string values that belong to allowed and drops anything else.
func Enum[E ~string](allowed ...E) Rule {
	return ruleFunc(func(v any) (any, bool) {
		s, ok := v.(string)
		if !ok || !slices.Contains(allowed, E(s)) {
			return nil, false
		}
		return s, true
	})
}

// LinkSchema projects a single link object.
var LinkSchema = Schema{
	"href":          Copy(),
	"type":          Copy(),
	"resource-type": Copy(),
}

// LinksRule projects a "_links" object, keeping every relation.
func LinksRule() Rule {
	return ruleFunc(func(v any) (any, bool) {
		links, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		out := make(map[string]any, len(links))
		for name, link := range links {
			out[name] = Project(link, LinkSchema)
		}
		return out, true
	})
}

// WithLinks returns s with a "_links" rule added.
func WithLinks(s Schema) Schema {
	out := make(Schema, len(s)+1)
	for k, r := range s {
		out[k] = r
	}
	out["_links"] = LinksRule()
	return out
}

// Project applies the schema to a decoded JSON value. Objects keep only the
// fields named in the schema, arrays are projected per element, and scalars
// pass through unchanged.
func Project(raw any, s Schema) any {
	switch v := raw.(type) {
	case map[string]any:
		out := make(map[string]any, len(s))
		for name, rule := range s {
			field, ok := v[name]
			if !ok || field == nil {
				continue
			}
			if projected, keep := rule.apply(field); keep {
				out[name] = projected
			}
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Project(item, s)
		}
		return out
	default:
		return raw
	}
}
