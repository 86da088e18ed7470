package translator

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecodeCondition(t *testing.T) {
	tests := []struct {
		name    string
		natives []NativeCondition
		want    *Condition
	}{
		{
			name:    "empty list means no condition",
			natives: nil,
			want:    nil,
		},
		{
			name:    "time window",
			natives: []NativeCondition{{"condition": "time", "after": "08:00", "before": "22:00"}},
			want:    &Condition{Type: ConditionTime, After: "08:00", Before: "22:00"},
		},
		{
			name:    "time window with absent bounds",
			natives: []NativeCondition{{"condition": "time"}},
			want:    &Condition{Type: ConditionTime, After: "", Before: ""},
		},
		{
			name:    "state condition",
			natives: []NativeCondition{{"condition": "state", "entity_id": "person.jan", "state": "home"}},
			want:    &Condition{Type: ConditionState, Entity: "person.jan", State: "home"},
		},
		{
			name:    "weekday template",
			natives: []NativeCondition{{"condition": "template", "value_template": "{{ now().weekday() in [0, 2, 4] }}"}},
			want:    &Condition{Type: ConditionWeekday, Weekdays: []string{"mon", "wed", "fri"}},
		},
		{
			name:    "foreign template treated as absent",
			natives: []NativeCondition{{"condition": "template", "value_template": "{{ states('sensor.x') == 'y' }}"}},
			want:    nil,
		},
		{
			name:    "unrecognised condition treated as absent",
			natives: []NativeCondition{{"condition": "sun", "after": "sunset"}},
			want:    nil,
		},
		{
			name: "only first element counts",
			natives: []NativeCondition{
				{"condition": "state", "entity_id": "person.jan", "state": "home"},
				{"condition": "time", "after": "08:00"},
			},
			want: &Condition{Type: ConditionState, Entity: "person.jan", State: "home"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeCondition(tt.natives)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeCondition() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEncodeCondition(t *testing.T) {
	t.Run("nil encodes to empty list", func(t *testing.T) {
		got, err := EncodeCondition(nil)
		if err != nil {
			t.Fatalf("EncodeCondition(nil) error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("EncodeCondition(nil) = %v, want empty", got)
		}
	})

	t.Run("time window fills blank bounds", func(t *testing.T) {
		got, err := EncodeCondition(&Condition{Type: ConditionTime})
		if err != nil {
			t.Fatalf("EncodeCondition() error = %v", err)
		}
		if len(got) != 1 || got[0]["after"] != "00:00" || got[0]["before"] != "23:59" {
			t.Errorf("EncodeCondition() = %v, want full-day window", got)
		}
	})

	t.Run("state defaults to on", func(t *testing.T) {
		got, err := EncodeCondition(&Condition{Type: ConditionState, Entity: "light.hal"})
		if err != nil {
			t.Fatalf("EncodeCondition() error = %v", err)
		}
		if len(got) != 1 || got[0]["state"] != "on" {
			t.Errorf("EncodeCondition() = %v, want state on", got)
		}
	})

	t.Run("weekday matches trigger-side guard shape", func(t *testing.T) {
		got, err := EncodeCondition(&Condition{Type: ConditionWeekday, Weekdays: []string{"sat", "sun"}})
		if err != nil {
			t.Fatalf("EncodeCondition() error = %v", err)
		}
		_, guard, err := EncodeTrigger(Trigger{Type: TriggerWeekday, Time: "12:00", Weekdays: []string{"sat", "sun"}})
		if err != nil {
			t.Fatalf("EncodeTrigger() error = %v", err)
		}
		if len(got) != 1 || !reflect.DeepEqual(got[0], guard) {
			t.Errorf("condition guard %v differs from trigger guard %v", got, guard)
		}
	})

	t.Run("unrecognised variant is a caller error", func(t *testing.T) {
		_, err := EncodeCondition(&Condition{Type: "moon_phase"})
		if !errors.Is(err, ErrInvalidFieldValue) {
			t.Errorf("error = %v, want ErrInvalidFieldValue", err)
		}
	})
}
