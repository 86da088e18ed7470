package translator

import (
	"fmt"
	"strings"
)

// Condition defaults applied on encode when fields are left blank.
const (
	defaultTimeAfter   = "00:00"
	defaultTimeBefore  = "23:59"
	defaultTargetState = "on"
)

// DecodeCondition projects a native condition list onto an optional
// simplified condition. Only the first element is inspected. A condition
// the UI does not understand is treated as absent, not as an error.
func DecodeCondition(natives []NativeCondition) *Condition {
	if len(natives) == 0 {
		return nil
	}
	first := natives[0]

	switch stringField(first, "condition") {
	case "time":
		return &Condition{
			Type:   ConditionTime,
			After:  stringField(first, "after"),
			Before: stringField(first, "before"),
		}

	case "state":
		return &Condition{
			Type:   ConditionState,
			Entity: stringField(first, "entity_id"),
			State:  stringField(first, "state"),
		}

	case "template":
		tmpl := stringField(first, "value_template")
		if !strings.Contains(tmpl, weekdayTestMarker) {
			return nil
		}
		return &Condition{Type: ConditionWeekday, Weekdays: weekdaysFromTemplate(tmpl)}

	default:
		return nil
	}
}

// EncodeCondition converts an optional simplified condition to a native
// condition list. nil encodes to an empty list. Blank fields are filled
// with defaults so the emitted document is always valid for the rule
// engine.
func EncodeCondition(c *Condition) ([]NativeCondition, error) {
	if c == nil {
		return nil, nil
	}

	switch c.Type {
	case ConditionTime:
		after := c.After
		if after == "" {
			after = defaultTimeAfter
		}
		before := c.Before
		if before == "" {
			before = defaultTimeBefore
		}
		return []NativeCondition{{
			"condition": "time",
			"after":     after,
			"before":    before,
		}}, nil

	case ConditionState:
		state := c.State
		if state == "" {
			state = defaultTargetState
		}
		return []NativeCondition{{
			"condition": "state",
			"entity_id": c.Entity,
			"state":     state,
		}}, nil

	case ConditionWeekday:
		days := c.Weekdays
		if len(days) == 0 {
			days = DefaultWeekdays()
		}
		// Identical in shape to the guard synthesised for weekday triggers.
		return []NativeCondition{{
			"condition":      "template",
			"value_template": weekdayTemplate(days),
		}}, nil

	default:
		return nil, fmt.Errorf("%w: unrecognised condition type %q", ErrInvalidFieldValue, c.Type)
	}
}
