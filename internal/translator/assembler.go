package translator

import "fmt"

// Document constants.
const (
	// fallbackName is used when a document carries no alias. The Dutch
	// token is kept for compatibility with documents written by earlier
	// deployments of this service.
	fallbackName = "Onbekend"

	// documentDescription marks documents as managed by this service.
	documentDescription = "Managed by Plain Automation"

	// documentMode is the native execution mode; the simplified model only
	// expresses single-run rules.
	documentMode = "single"
)

// DecodeDocument projects a full native document onto the simplified
// model. It is total: every document, however malformed or foreign,
// decodes to some model. No cross-field correlation is attempted between a
// weekday trigger's implied condition and an independently decoded
// condition; the trigger codec owns the trigger field and the condition
// codec owns the condition field.
func DecodeDocument(doc NativeDocument) Automation {
	name := doc.Alias
	if name == "" {
		name = fallbackName
	}
	return Automation{
		Name:      name,
		Trigger:   DecodeTrigger(doc.Triggers),
		Condition: DecodeCondition(doc.Conditions),
		Action:    DecodeAction(doc.Actions),
	}
}

// EncodeDocument converts a simplified model into a persistable native
// document. When the trigger codec synthesises a weekday guard, that guard
// is prepended to the condition list before whatever the user's own
// condition encodes to, so a weekday trigger and an independent condition
// legitimately coexist as two native conditions.
func EncodeDocument(a Automation) (NativeDocument, error) {
	trigger, guard, err := EncodeTrigger(a.Trigger)
	if err != nil {
		return NativeDocument{}, fmt.Errorf("encoding trigger: %w", err)
	}

	var conditions []NativeCondition
	if guard != nil {
		conditions = append(conditions, guard)
	}
	userConditions, err := EncodeCondition(a.Condition)
	if err != nil {
		return NativeDocument{}, fmt.Errorf("encoding condition: %w", err)
	}
	conditions = append(conditions, userConditions...)

	action, err := EncodeAction(a.Action)
	if err != nil {
		return NativeDocument{}, fmt.Errorf("encoding action: %w", err)
	}

	return NativeDocument{
		Alias:       a.Name,
		Description: documentDescription,
		Triggers:    []NativeTrigger{trigger},
		Conditions:  conditions,
		Actions:     []NativeAction{action},
		Mode:        documentMode,
	}, nil
}
