// Package api provides the HTTP REST API and WebSocket server for
// Plain Automation.
//
// It exposes automation CRUD in the flat rule model, an entity listing
// proxied from Home Assistant, the audit trail, and a WebSocket feed
// of change events for live UI updates.
//
// The server follows the same lifecycle pattern as the other
// infrastructure components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
package api
