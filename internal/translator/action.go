package translator

import (
	"fmt"
	"strings"
)

// scenePrefix is the namespace prefix stripped from scene names on decode
// and reattached on encode.
const scenePrefix = "scene."

// knownServices maps native service identifiers to simplified action
// variants. Matching is by exact equality against this closed set; anything
// else decodes to the unknown variant. The original implementation matched
// by substring in priority order, which could misclassify unrelated
// services whose identifier merely contained "turn_on".
var knownServices = map[string]ActionType{
	"scene.turn_on":          ActionScene,
	"homeassistant.turn_on":  ActionTurnOn,
	"light.turn_on":          ActionTurnOn,
	"switch.turn_on":         ActionTurnOn,
	"homeassistant.turn_off": ActionTurnOff,
	"light.turn_off":         ActionTurnOff,
	"switch.turn_off":        ActionTurnOff,
	"notify.notify":          ActionNotify,
}

// DecodeAction projects a native action list onto a simplified action.
// Only the first element is inspected; an empty list or an unrecognised
// service yields the unknown variant, never an error.
func DecodeAction(natives []NativeAction) Action {
	if len(natives) == 0 {
		return Action{Type: ActionUnknown}
	}
	first := natives[0]

	kind, ok := knownServices[stringField(first, "service")]
	if !ok {
		return Action{Type: ActionUnknown}
	}

	switch kind {
	case ActionScene:
		name := strings.TrimPrefix(targetEntity(first), scenePrefix)
		return Action{Type: ActionScene, Scene: name}

	case ActionNotify:
		return Action{Type: ActionNotify, Message: stringField(mapField(first, "data"), "message")}

	default: // turn_on / turn_off
		return Action{Type: kind, Entity: targetEntity(first)}
	}
}

// targetEntity reads the entity a service call addresses. Documents written
// by this service carry it under target.entity_id; older hand-written
// documents sometimes put it at the top level, so that is accepted too.
func targetEntity(m map[string]any) string {
	if entity := stringField(mapField(m, "target"), "entity_id"); entity != "" {
		return entity
	}
	return stringField(m, "entity_id")
}

// EncodeAction converts a simplified action to its native service call.
// Scene names are re-stripped of any existing "scene." prefix before the
// prefix is reattached, so double-prefixing cannot occur.
func EncodeAction(a Action) (NativeAction, error) {
	switch a.Type {
	case ActionTurnOn:
		return NativeAction{
			"service": "homeassistant.turn_on",
			"target":  map[string]any{"entity_id": a.Entity},
		}, nil

	case ActionTurnOff:
		return NativeAction{
			"service": "homeassistant.turn_off",
			"target":  map[string]any{"entity_id": a.Entity},
		}, nil

	case ActionNotify:
		return NativeAction{
			"service": "notify.notify",
			"data":    map[string]any{"message": a.Message},
		}, nil

	case ActionScene:
		name := strings.TrimPrefix(a.Scene, scenePrefix)
		return NativeAction{
			"service": "scene.turn_on",
			"target":  map[string]any{"entity_id": scenePrefix + name},
		}, nil

	default:
		return nil, fmt.Errorf("%w: unrecognised action type %q", ErrInvalidFieldValue, a.Type)
	}
}
