package translator

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecodeTrigger(t *testing.T) {
	tests := []struct {
		name    string
		natives []NativeTrigger
		want    Trigger
	}{
		{
			name:    "empty list is unknown",
			natives: nil,
			want:    Trigger{Type: TriggerUnknown},
		},
		{
			name:    "unrecognised platform is unknown",
			natives: []NativeTrigger{{"platform": "webhook", "webhook_id": "abc"}},
			want:    Trigger{Type: TriggerUnknown},
		},
		{
			name:    "time trigger",
			natives: []NativeTrigger{{"platform": "time", "at": "07:00"}},
			want:    Trigger{Type: TriggerTime, At: "07:00"},
		},
		{
			name: "only first element counts",
			natives: []NativeTrigger{
				{"platform": "time", "at": "07:00"},
				{"platform": "state", "entity_id": "binary_sensor.hal", "to": "on"},
			},
			want: Trigger{Type: TriggerTime, At: "07:00"},
		},
		{
			name: "weekday template with companion time trigger",
			natives: []NativeTrigger{
				{"platform": "template", "value_template": "{{ now().weekday() in [0, 2, 4] }}"},
				{"platform": "time", "at": "07:30"},
			},
			want: Trigger{Type: TriggerWeekday, Time: "07:30", Weekdays: []string{"mon", "wed", "fri"}},
		},
		{
			name: "weekday template without companion defaults to noon",
			natives: []NativeTrigger{
				{"platform": "template", "value_template": "{{ now().weekday() in [5, 6] }}"},
			},
			want: Trigger{Type: TriggerWeekday, Time: "12:00", Weekdays: []string{"sat", "sun"}},
		},
		{
			name: "weekday template without parseable days falls back to mon-fri",
			natives: []NativeTrigger{
				{"platform": "template", "value_template": "{{ now().weekday() in [] }}"},
			},
			want: Trigger{Type: TriggerWeekday, Time: "12:00", Weekdays: DefaultWeekdays()},
		},
		{
			name:    "foreign template is unknown",
			natives: []NativeTrigger{{"platform": "template", "value_template": "{{ is_state('sun.sun', 'above_horizon') }}"}},
			want:    Trigger{Type: TriggerUnknown},
		},
		{
			name:    "sun trigger with offset",
			natives: []NativeTrigger{{"platform": "sun", "event": "sunset", "offset": "-00:20:00"}},
			want:    Trigger{Type: TriggerSun, Event: "sunset", OffsetSign: OffsetBefore, OffsetMinutes: 20},
		},
		{
			name:    "sun trigger defaults",
			natives: []NativeTrigger{{"platform": "sun"}},
			want:    Trigger{Type: TriggerSun, Event: SunEventSunrise, OffsetSign: OffsetAfter, OffsetMinutes: 0},
		},
		{
			name:    "state trigger",
			natives: []NativeTrigger{{"platform": "state", "entity_id": "light.keuken", "to": "off"}},
			want:    Trigger{Type: TriggerState, Entity: "light.keuken", To: "off"},
		},
		{
			name:    "state to on reclassifies as motion",
			natives: []NativeTrigger{{"platform": "state", "entity_id": "binary_sensor.gang", "to": "on"}},
			want:    Trigger{Type: TriggerMotion, Entity: "binary_sensor.gang"},
		},
		{
			name:    "numeric state stringifies bounds",
			natives: []NativeTrigger{{"platform": "numeric_state", "entity_id": "sensor.temp", "above": 21.5, "below": 30}},
			want:    Trigger{Type: TriggerNumericState, Entity: "sensor.temp", Above: "21.5", Below: "30"},
		},
		{
			name:    "numeric state with absent bounds",
			natives: []NativeTrigger{{"platform": "numeric_state", "entity_id": "sensor.temp"}},
			want:    Trigger{Type: TriggerNumericState, Entity: "sensor.temp", Above: "", Below: ""},
		},
		{
			name:    "zone trigger with defaults",
			natives: []NativeTrigger{{"platform": "zone", "entity_id": "person.jan"}},
			want:    Trigger{Type: TriggerZone, Entity: "person.jan", Zone: "zone.home", Event: ZoneEventEnter},
		},
		{
			name:    "zone trigger explicit",
			natives: []NativeTrigger{{"platform": "zone", "entity_id": "person.jan", "zone": "zone.werk", "event": "leave"}},
			want:    Trigger{Type: TriggerZone, Entity: "person.jan", Zone: "zone.werk", Event: ZoneEventLeave},
		},
		{
			name:    "unknown keys are ignored",
			natives: []NativeTrigger{{"platform": "time", "at": "07:00", "id": "t1", "variables": map[string]any{"x": 1}}},
			want:    Trigger{Type: TriggerTime, At: "07:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeTrigger(tt.natives)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeTrigger() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEncodeTrigger(t *testing.T) {
	t.Run("weekday synthesises guard with canonical day order", func(t *testing.T) {
		trigger, guard, err := EncodeTrigger(Trigger{
			Type:     TriggerWeekday,
			Time:     "07:30",
			Weekdays: []string{"fri", "mon", "wed"},
		})
		if err != nil {
			t.Fatalf("EncodeTrigger() error = %v", err)
		}
		if trigger["platform"] != "time" || trigger["at"] != "07:30" {
			t.Errorf("primary trigger = %v, want time trigger at 07:30", trigger)
		}
		if guard == nil {
			t.Fatal("expected synthesised weekday guard")
		}
		wantTemplate := "{{ now().weekday() in [0, 2, 4] }}"
		if guard["condition"] != "template" || guard["value_template"] != wantTemplate {
			t.Errorf("guard = %v, want template %q", guard, wantTemplate)
		}
	})

	t.Run("sun omits offset at zero minutes", func(t *testing.T) {
		trigger, guard, err := EncodeTrigger(Trigger{Type: TriggerSun, Event: "sunrise", OffsetSign: OffsetAfter})
		if err != nil {
			t.Fatalf("EncodeTrigger() error = %v", err)
		}
		if guard != nil {
			t.Errorf("unexpected guard %v", guard)
		}
		if _, present := trigger["offset"]; present {
			t.Errorf("offset should be omitted entirely at zero minutes, got %v", trigger["offset"])
		}
	})

	t.Run("sun carries negative offset", func(t *testing.T) {
		trigger, _, err := EncodeTrigger(Trigger{
			Type: TriggerSun, Event: "sunset", OffsetSign: OffsetBefore, OffsetMinutes: 20,
		})
		if err != nil {
			t.Fatalf("EncodeTrigger() error = %v", err)
		}
		if trigger["offset"] != "-00:20:00" {
			t.Errorf("offset = %v, want -00:20:00", trigger["offset"])
		}
	})

	t.Run("numeric bounds become native floats", func(t *testing.T) {
		trigger, _, err := EncodeTrigger(Trigger{
			Type: TriggerNumericState, Entity: "sensor.temp", Above: "21.5",
		})
		if err != nil {
			t.Fatalf("EncodeTrigger() error = %v", err)
		}
		if trigger["above"] != 21.5 {
			t.Errorf("above = %v (%T), want float64 21.5", trigger["above"], trigger["above"])
		}
		if _, present := trigger["below"]; present {
			t.Error("empty below bound should be omitted")
		}
	})

	t.Run("numeric bounds come back canonical", func(t *testing.T) {
		// Bounds travel through the native schema as floats, so the
		// string that comes back is the canonical rendering: "20.50"
		// in means "20.5" out. The round trip is only exact for
		// canonical numeric strings.
		trigger, _, err := EncodeTrigger(Trigger{
			Type: TriggerNumericState, Entity: "sensor.temp", Above: "20.50",
		})
		if err != nil {
			t.Fatalf("EncodeTrigger() error = %v", err)
		}

		got := DecodeTrigger([]NativeTrigger{trigger})
		if got.Above != "20.5" {
			t.Errorf("above = %q, want canonical %q", got.Above, "20.5")
		}
	})

	t.Run("non-numeric bound is a caller error", func(t *testing.T) {
		_, _, err := EncodeTrigger(Trigger{Type: TriggerNumericState, Entity: "sensor.temp", Above: "warm"})
		if !errors.Is(err, ErrInvalidFieldValue) {
			t.Errorf("error = %v, want ErrInvalidFieldValue", err)
		}
	})

	t.Run("unrecognised variant is a caller error", func(t *testing.T) {
		_, _, err := EncodeTrigger(Trigger{Type: "teleport"})
		if !errors.Is(err, ErrInvalidFieldValue) {
			t.Errorf("error = %v, want ErrInvalidFieldValue", err)
		}
	})

	t.Run("unknown variant cannot be encoded", func(t *testing.T) {
		_, _, err := EncodeTrigger(Trigger{Type: TriggerUnknown})
		if !errors.Is(err, ErrInvalidFieldValue) {
			t.Errorf("error = %v, want ErrInvalidFieldValue", err)
		}
	})
}
