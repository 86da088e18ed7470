package translator

import "errors"

// ErrInvalidFieldValue is returned by encode paths when the caller supplies
// an unrecognised variant tag, or a non-numeric string where a numeric
// bound is required. Decode paths never return it: unknown native shapes
// degrade to the unknown/empty variants instead of failing.
var ErrInvalidFieldValue = errors.New("translator: invalid field value")
