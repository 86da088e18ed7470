package hass

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Sentinel errors for Home Assistant operations.
var (
	ErrNotConfigured = errors.New("hass: not configured")
	ErrRequestFailed = errors.New("hass: request failed")
)

// defaultTimeout bounds individual API calls when the caller's context
// carries no deadline.
const defaultTimeout = 10 * time.Second

// Entity is the projection of a Home Assistant state the UI needs for
// entity pickers.
type Entity struct {
	EntityID     string `json:"entity_id"`
	FriendlyName string `json:"friendly_name"`
	Domain       string `json:"domain"`
	State        string `json:"state"`
}

// Config contains Home Assistant connection options.
// These map to the home_assistant section of config.yaml.
type Config struct {
	// BaseURL is the Home Assistant address, e.g. http://homeassistant.local:8123.
	BaseURL string

	// Token is a long-lived access token.
	Token string

	// Timeout is the per-request timeout in seconds.
	Timeout int
}

// Client talks to the Home Assistant REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a Home Assistant client. An empty base URL or token
// yields a client whose calls return ErrNotConfigured.
func NewClient(cfg Config) *Client {
	timeout := defaultTimeout
	if cfg.Timeout > 0 {
		timeout = time.Duration(cfg.Timeout) * time.Second
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Configured reports whether both a base URL and token are present.
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.token != ""
}

// ReloadAutomations asks Home Assistant to re-read its automation YAML
// from disk. Call this after writing or deleting an automation file.
func (c *Client) ReloadAutomations(ctx context.Context) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/services/automation/reload", strings.NewReader("{}"))
	if err != nil {
		return fmt.Errorf("building reload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: reload returned status %d", ErrRequestFailed, resp.StatusCode)
	}

	return nil
}

// ListEntities returns all entity states, optionally filtered to a
// single domain such as "light" or "scene".
func (c *Client) ListEntities(ctx context.Context, domain string) ([]Entity, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/states", nil)
	if err != nil {
		return nil, fmt.Errorf("building states request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: states returned status %d", ErrRequestFailed, resp.StatusCode)
	}

	var states []struct {
		EntityID   string         `json:"entity_id"`
		State      string         `json:"state"`
		Attributes map[string]any `json:"attributes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&states); err != nil {
		return nil, fmt.Errorf("decoding states response: %w", err)
	}

	entities := make([]Entity, 0, len(states))
	for _, s := range states {
		entityDomain, _, _ := strings.Cut(s.EntityID, ".")
		if domain != "" && entityDomain != domain {
			continue
		}

		name, _ := s.Attributes["friendly_name"].(string)
		if name == "" {
			name = s.EntityID
		}

		entities = append(entities, Entity{
			EntityID:     s.EntityID,
			FriendlyName: name,
			Domain:       entityDomain,
			State:        s.State,
		})
	}

	return entities, nil
}
