package translator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// weekdayTestMarker is the canonical substring that identifies a weekday
// membership template in the native schema.
const weekdayTestMarker = "now().weekday()"

// defaultWeekdayTime is used when a weekday template trigger has no
// companion time trigger to take its time from.
const defaultWeekdayTime = "12:00"

// weekdayDigitPattern extracts the day numbers from a weekday template body.
var weekdayDigitPattern = regexp.MustCompile(`\d`)

// weekdayTemplate renders a weekday set as the native templated boolean
// expression. Day numbers are always emitted in canonical Monday=0 …
// Sunday=6 order, filtered to the days present in the set.
func weekdayTemplate(days []string) string {
	nums := WeekdayNumbers(days)
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return fmt.Sprintf("{{ %s in [%s] }}", weekdayTestMarker, strings.Join(parts, ", "))
}

// weekdaysFromTemplate recovers the weekday set from a template body by
// picking out the day digits. When nothing parses it falls back to the
// fixed mon-fri default, keeping decode deterministic and total.
func weekdaysFromTemplate(tmpl string) []string {
	var days []string
	seen := make(map[string]bool)
	for _, digit := range weekdayDigitPattern.FindAllString(tmpl, -1) {
		n, err := strconv.Atoi(digit)
		if err != nil {
			continue
		}
		name := weekdayName(n)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		days = append(days, name)
	}
	if len(days) == 0 {
		return DefaultWeekdays()
	}
	return WeekdaySort(days)
}

// WeekdaySort returns the given weekday set in canonical order.
func WeekdaySort(days []string) []string {
	present := make(map[string]bool, len(days))
	for _, d := range days {
		present[d] = true
	}
	var sorted []string
	for _, d := range weekdayOrder {
		if present[d] {
			sorted = append(sorted, d)
		}
	}
	return sorted
}

// DecodeTrigger projects a native trigger list onto a simplified trigger.
// Only the first element is inspected; longer lists are silently truncated
// to their first entry. An empty list or an unrecognised platform yields
// the unknown variant, never an error.
func DecodeTrigger(natives []NativeTrigger) Trigger {
	if len(natives) == 0 {
		return Trigger{Type: TriggerUnknown}
	}
	first := natives[0]

	switch stringField(first, "platform") {
	case "time":
		return Trigger{Type: TriggerTime, At: stringField(first, "at")}

	case "template":
		tmpl := stringField(first, "value_template")
		if !strings.Contains(tmpl, weekdayTestMarker) {
			return Trigger{Type: TriggerUnknown}
		}
		return Trigger{
			Type:     TriggerWeekday,
			Time:     companionTime(natives),
			Weekdays: weekdaysFromTemplate(tmpl),
		}

	case "sun":
		event := stringField(first, "event")
		if event == "" {
			event = SunEventSunrise
		}
		sign, minutes := OffsetAfter, 0
		if offset := stringField(first, "offset"); offset != "" {
			sign, minutes = ParseOffset(offset)
		}
		return Trigger{
			Type:          TriggerSun,
			Event:         event,
			OffsetSign:    sign,
			OffsetMinutes: minutes,
		}

	case "state":
		entity := stringField(first, "entity_id")
		to := stringField(first, "to")
		if to == "on" {
			return Trigger{Type: TriggerMotion, Entity: entity}
		}
		return Trigger{Type: TriggerState, Entity: entity, To: to}

	case "numeric_state":
		return Trigger{
			Type:   TriggerNumericState,
			Entity: stringField(first, "entity_id"),
			Above:  numberString(first["above"]),
			Below:  numberString(first["below"]),
		}

	case "zone":
		zone := stringField(first, "zone")
		if zone == "" {
			zone = "zone.home"
		}
		event := stringField(first, "event")
		if event == "" {
			event = ZoneEventEnter
		}
		return Trigger{
			Type:   TriggerZone,
			Entity: stringField(first, "entity_id"),
			Zone:   zone,
			Event:  event,
		}

	default:
		return Trigger{Type: TriggerUnknown}
	}
}

// companionTime finds the time of a companion time trigger for a weekday
// template. The template cannot carry a time itself, so one is expected to
// co-occur in the list; when it is absent a fixed default applies.
func companionTime(natives []NativeTrigger) string {
	for _, n := range natives {
		if stringField(n, "platform") == "time" {
			if at := stringField(n, "at"); at != "" {
				return at
			}
		}
	}
	return defaultWeekdayTime
}

// EncodeTrigger converts a simplified trigger to its native representation.
// The second return value is non-nil only for the weekday variant: the
// weekday restriction cannot live inside a native time trigger, so it is
// synthesised as a template condition the assembler must carry alongside.
func EncodeTrigger(t Trigger) (NativeTrigger, NativeCondition, error) {
	switch t.Type {
	case TriggerTime:
		return NativeTrigger{"platform": "time", "at": t.At}, nil, nil

	case TriggerWeekday:
		at := t.Time
		if at == "" {
			at = defaultWeekdayTime
		}
		days := t.Weekdays
		if len(days) == 0 {
			days = DefaultWeekdays()
		}
		guard := NativeCondition{
			"condition":      "template",
			"value_template": weekdayTemplate(days),
		}
		return NativeTrigger{"platform": "time", "at": at}, guard, nil

	case TriggerMotion:
		return NativeTrigger{"platform": "state", "entity_id": t.Entity, "to": "on"}, nil, nil

	case TriggerState:
		nt := NativeTrigger{"platform": "state", "entity_id": t.Entity}
		if t.To != "" {
			nt["to"] = t.To
		}
		return nt, nil, nil

	case TriggerSun:
		event := t.Event
		if event == "" {
			event = SunEventSunrise
		}
		nt := NativeTrigger{"platform": "sun", "event": event}
		if t.OffsetMinutes != 0 {
			sign := t.OffsetSign
			if sign == "" {
				sign = OffsetAfter
			}
			nt["offset"] = FormatOffset(sign, t.OffsetMinutes)
		}
		return nt, nil, nil

	case TriggerNumericState:
		nt := NativeTrigger{"platform": "numeric_state", "entity_id": t.Entity}
		if t.Above != "" {
			above, err := strconv.ParseFloat(t.Above, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: above bound %q is not numeric", ErrInvalidFieldValue, t.Above)
			}
			nt["above"] = above
		}
		if t.Below != "" {
			below, err := strconv.ParseFloat(t.Below, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: below bound %q is not numeric", ErrInvalidFieldValue, t.Below)
			}
			nt["below"] = below
		}
		return nt, nil, nil

	case TriggerZone:
		zone := t.Zone
		if zone == "" {
			zone = "zone.home"
		}
		event := t.Event
		if event == "" {
			event = ZoneEventEnter
		}
		return NativeTrigger{
			"platform":  "zone",
			"entity_id": t.Entity,
			"zone":      zone,
			"event":     event,
		}, nil, nil

	default:
		return nil, nil, fmt.Errorf("%w: unrecognised trigger type %q", ErrInvalidFieldValue, t.Type)
	}
}
