package api

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Development credentials. Real deployments front the API with their
// own identity provider and mint tokens against the shared secret.
const (
	devUsername = "admin"
	devPassword = "admin"
)

// wsTicketTTL is how long a WebSocket ticket remains valid after issue.
const wsTicketTTL = 30 * time.Second

// wsTicketBytes is the number of random bytes in a WebSocket ticket.
const wsTicketBytes = 16

// loginRequest is the POST /auth/login request body.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the POST /auth/login response body.
type loginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// wsTicket is a short-lived single-use credential for WebSocket
// connections, since browsers cannot set an Authorization header on
// the upgrade request.
type wsTicket struct {
	subject string
	expires time.Time
}

// handleLogin authenticates a user and issues a JWT access token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	if !validCredentials(req.Username, req.Password) {
		writeUnauthorized(w, "invalid credentials")
		return
	}

	ttl := time.Duration(s.secCfg.JWT.AccessTokenTTL) * time.Minute
	expires := time.Now().Add(ttl)

	claims := jwt.MapClaims{
		"sub":  req.Username,
		"iat":  time.Now().Unix(),
		"exp":  expires.Unix(),
		"role": "admin",
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secCfg.JWT.Secret))
	if err != nil {
		s.logger.Error("signing access token", "error", err)
		writeInternalError(w, "failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: expires.UTC().Format(time.RFC3339),
	})
}

// validCredentials checks the development credential pair in constant time.
func validCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(devUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(devPassword)) == 1
	return userOK && passOK
}

// handleWSTicket issues a single-use ticket for WebSocket authentication.
// The caller must already hold a valid access token.
func (s *Server) handleWSTicket(w http.ResponseWriter, r *http.Request) {
	subject, _ := r.Context().Value(ctxKeySubject).(string)

	ticket, err := generateTicket()
	if err != nil {
		s.logger.Error("generating websocket ticket", "error", err)
		writeInternalError(w, "failed to issue ticket")
		return
	}

	s.ticketsMu.Lock()
	if s.tickets == nil {
		s.tickets = make(map[string]wsTicket)
	}
	s.tickets[ticket] = wsTicket{
		subject: subject,
		expires: time.Now().Add(wsTicketTTL),
	}
	s.ticketsMu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"ticket":     ticket,
		"expires_in": int(wsTicketTTL.Seconds()),
	})
}

// validateTicket consumes a WebSocket ticket, returning the subject it
// was issued to. Tickets are single-use; a second validation fails.
func (s *Server) validateTicket(ticket string) (string, bool) {
	s.ticketsMu.Lock()
	defer s.ticketsMu.Unlock()

	entry, ok := s.tickets[ticket]
	if !ok {
		return "", false
	}
	delete(s.tickets, ticket)

	if time.Now().After(entry.expires) {
		return "", false
	}
	return entry.subject, true
}

// cleanTicketsLoop periodically removes expired tickets that were never
// redeemed.
func (s *Server) cleanTicketsLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()
			s.ticketsMu.Lock()
			for ticket, entry := range s.tickets {
				if now.After(entry.expires) {
					delete(s.tickets, ticket)
				}
			}
			s.ticketsMu.Unlock()
		}
	}
}

// generateTicket creates a random hex ticket string.
func generateTicket() (string, error) {
	b := make([]byte, wsTicketBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
