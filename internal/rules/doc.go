// Package rules manages the lifecycle of stored automations.
//
// Each automation is one YAML file in the Home Assistant configuration
// directory, holding a single-element list in the native schema. The
// Service layered on top of the Store translates between the flat rule
// model and that native form, derives file identifiers from rule names,
// records an audit entry for every change, notifies listeners, and
// asks Home Assistant to reload after writes.
//
// The filesystem is the single source of truth. Files edited by hand
// or by other tools show up on the next read; the service never caches
// documents and never locks files. Concurrent writers race and the
// last write wins, the same as editing the YAML directly.
package rules
