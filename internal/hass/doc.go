// Package hass is a small REST client for a Home Assistant instance.
//
// It covers the two calls the service needs: reloading automations
// after a YAML file changes, and listing entity states so the UI can
// offer entity pickers. Authentication uses a long-lived access token
// sent as a Bearer header.
//
// The client is optional at runtime. When no base URL or token is
// configured, calls return ErrNotConfigured and the caller decides
// whether that matters; automation writes succeed either way.
package hass
