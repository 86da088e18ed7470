package translator

import "strconv"

// NativeTrigger, NativeCondition and NativeAction are open-ended key-value
// records from the native schema: a discriminator (platform / condition /
// service) plus parameters. Keys this package does not understand are
// ignored on decode so foreign documents remain displayable.
type (
	NativeTrigger   map[string]any
	NativeCondition map[string]any
	NativeAction    map[string]any
)

// NativeDocument is the Home Assistant automation document persisted to
// storage. Field order matches the layout users see when they open the
// YAML file: alias, description, trigger, condition, action, mode.
//
// A document produced by EncodeDocument always has exactly one trigger and
// one action, and zero, one or two conditions (the second only exists to
// carry a synthesised weekday guard).
type NativeDocument struct {
	Alias       string            `yaml:"alias"              json:"alias"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
	Triggers    []NativeTrigger   `yaml:"trigger"            json:"trigger"`
	Conditions  []NativeCondition `yaml:"condition,omitempty" json:"condition,omitempty"`
	Actions     []NativeAction    `yaml:"action"             json:"action"`
	Mode        string            `yaml:"mode"               json:"mode"`
}

// stringField returns the string value for key, or "" when the key is
// absent or holds a non-string value.
func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// mapField returns the nested map for key, or nil when absent. Nested
// mappings inside a NativeTrigger/NativeCondition/NativeAction come back
// from yaml.v3 typed as the enclosing named map type, not as a plain
// map[string]any, so both shapes are accepted.
func mapField(m map[string]any, key string) map[string]any {
	switch v := m[key].(type) {
	case map[string]any:
		return v
	case NativeTrigger:
		return v
	case NativeCondition:
		return v
	case NativeAction:
		return v
	default:
		return nil
	}
}

// numberString renders a native numeric value as a string. Numeric fields
// in the simplified model are always strings, including "" for an absent
// value, never native numbers.
func numberString(v any) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32)
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case string:
		return n
	default:
		return ""
	}
}
