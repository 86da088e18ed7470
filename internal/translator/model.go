package translator

// TriggerType identifies the variant of a simplified trigger.
type TriggerType string

const (
	TriggerTime         TriggerType = "time"
	TriggerWeekday      TriggerType = "weekday"
	TriggerState        TriggerType = "state"
	TriggerMotion       TriggerType = "motion"
	TriggerSun          TriggerType = "sun"
	TriggerNumericState TriggerType = "numeric_state"
	TriggerZone         TriggerType = "zone"

	// TriggerUnknown is the catch-all for native triggers this package
	// does not understand. It keeps decoding total.
	TriggerUnknown TriggerType = "unknown"
)

// Offset signs for sun triggers.
const (
	OffsetBefore = "before"
	OffsetAfter  = "after"
)

// Sun events.
const (
	SunEventSunrise = "sunrise"
	SunEventSunset  = "sunset"
)

// Zone events.
const (
	ZoneEventEnter = "enter"
	ZoneEventLeave = "leave"
)

// Trigger is the simplified trigger variant. Type selects the variant;
// only the fields belonging to that variant are meaningful.
type Trigger struct {
	Type TriggerType `json:"type"`

	// Time
	At string `json:"at,omitempty"`

	// Weekday
	Time     string   `json:"time,omitempty"`
	Weekdays []string `json:"weekdays,omitempty"`

	// State / Motion / NumericState / Zone
	Entity string `json:"entity,omitempty"`

	// State
	To string `json:"to,omitempty"`

	// Sun / Zone
	Event string `json:"event,omitempty"`

	// Sun
	OffsetSign    string `json:"offset_sign,omitempty"`
	OffsetMinutes int    `json:"offset_minutes,omitempty"`

	// NumericState. Bounds are carried as strings so the UI never has to
	// deal with float formatting; empty string means no bound.
	Above string `json:"above,omitempty"`
	Below string `json:"below,omitempty"`

	// Zone
	Zone string `json:"zone,omitempty"`
}

// ConditionType identifies the variant of a simplified condition.
type ConditionType string

const (
	ConditionTime    ConditionType = "time"
	ConditionState   ConditionType = "state"
	ConditionWeekday ConditionType = "weekday"
)

// Condition is the simplified condition variant. A nil *Condition in an
// Automation means "no condition".
type Condition struct {
	Type ConditionType `json:"type"`

	// Time
	After  string `json:"after,omitempty"`
	Before string `json:"before,omitempty"`

	// State
	Entity string `json:"entity,omitempty"`
	State  string `json:"state,omitempty"`

	// Weekday
	Weekdays []string `json:"weekdays,omitempty"`
}

// ActionType identifies the variant of a simplified action.
type ActionType string

const (
	ActionTurnOn  ActionType = "turn_on"
	ActionTurnOff ActionType = "turn_off"
	ActionNotify  ActionType = "notify"
	ActionScene   ActionType = "scene"

	// ActionUnknown is the catch-all for native actions this package
	// does not understand.
	ActionUnknown ActionType = "unknown"
)

// Action is the simplified action variant.
type Action struct {
	Type ActionType `json:"type"`

	// TurnOn / TurnOff
	Entity string `json:"entity,omitempty"`

	// Notify
	Message string `json:"message,omitempty"`

	// Scene. Stored without the "scene." namespace prefix; the prefix is
	// reattached on encode.
	Scene string `json:"scene,omitempty"`
}

// Automation is the simplified, UI-facing model of a single rule. It is
// constructed from an inbound request or by decoding a NativeDocument,
// consumed synchronously, and never persisted directly.
type Automation struct {
	Name      string     `json:"name"`
	Trigger   Trigger    `json:"trigger"`
	Condition *Condition `json:"condition,omitempty"`
	Action    Action     `json:"action"`
}

// weekdayOrder is the canonical Monday=0 … Sunday=6 ordering used whenever
// weekday sets are rendered into the native schema.
var weekdayOrder = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// DefaultWeekdays returns the fixed mon-fri fallback set used when a
// weekday template cannot be parsed.
func DefaultWeekdays() []string {
	return []string{"mon", "tue", "wed", "thu", "fri"}
}

// WeekdayNumbers converts a weekday set to day numbers in canonical order.
// Unknown day names are ignored; duplicates collapse. Encoding
// {wed, mon, fri} therefore always yields [0, 2, 4] regardless of input
// order.
func WeekdayNumbers(days []string) []int {
	present := make(map[string]bool, len(days))
	for _, d := range days {
		present[d] = true
	}

	var nums []int
	for i, d := range weekdayOrder {
		if present[d] {
			nums = append(nums, i)
		}
	}
	return nums
}

// weekdayName returns the canonical name for a day number, or "" when the
// number is out of range.
func weekdayName(n int) string {
	if n < 0 || n >= len(weekdayOrder) {
		return ""
	}
	return weekdayOrder[n]
}
