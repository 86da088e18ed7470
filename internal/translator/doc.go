// Package translator converts between the simplified automation model shown
// to users and Home Assistant's native automation document schema.
//
// The simplified model is deliberately flat: one trigger, at most one
// condition, one action. The native schema allows lists of each; decoding
// takes only the first element of every list, which is a documented
// information-loss boundary rather than a bug.
//
// # Key Types
//
//   - Automation: the UI-facing model (name, trigger, condition, action)
//   - NativeDocument: the persisted Home Assistant automation document
//   - Trigger, Condition, Action: tagged variants of the simplified model
//
// # Contract
//
// Decoding is total: any native document, however malformed or foreign,
// decodes to some model without error. Unknown platforms, conditions and
// services degrade to the unknown/empty variants so the UI can always
// display something. Encoding, by contrast, rejects unrecognised variant
// tags and non-numeric numeric-state bounds with ErrInvalidFieldValue,
// since those originate from the caller.
//
// Encode followed by decode is the identity on trigger and action for every
// model this package produces itself. The weekday variant is the one
// exception: its native form (a time trigger paired with a synthesised
// template condition) is indistinguishable from a plain time trigger with a
// user-authored weekday condition, so it decodes to that equivalent shape.
// See assembler.go.
//
// All functions are pure and safe for concurrent use.
package translator
