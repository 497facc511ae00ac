// Package session implements the signed cookie session.
//
// The whole session state (sid, language, flash messages, in-progress wizard
// partials) travels in one HS256-signed JWT cookie. A missing, expired, or
// tampered cookie simply yields a fresh anonymous session with a new sid.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kudimara/kudimara/internal/i18n"
)

// Flash levels map onto dashboard banner styles.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Session is the per-browser state. Partials is keyed tool → step number
// (as a string, JSON object keys) → field → submitted value.
type Session struct {
	SID      string                                  `json:"sid"`
	Lang     string                                  `json:"lang"`
	Flashes  []Flash                                 `json:"flashes,omitempty"`
	Partials map[string]map[string]map[string]string `json:"partials,omitempty"`
}

type claims struct {
	Session
	jwt.RegisteredClaims
}

// Manager signs and verifies session cookies.
type Manager struct {
	secret     []byte
	cookieName string
	lifetime   time.Duration
}

func NewManager(secret, cookieName string, lifetimeHours int) *Manager {
	if lifetimeHours < 24 {
		lifetimeHours = 24
	}
	return &Manager{
		secret:     []byte(secret),
		cookieName: cookieName,
		lifetime:   time.Duration(lifetimeHours) * time.Hour,
	}
}

// Load returns the session carried by the request, or a fresh one when the
// cookie is absent or fails verification.
func (m *Manager) Load(r *http.Request) *Session {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return m.fresh()
	}
	token, err := jwt.ParseWithClaims(cookie.Value, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return m.fresh()
	}
	c, ok := token.Claims.(*claims)
	if !ok || c.SID == "" {
		return m.fresh()
	}
	sess := c.Session
	if !i18n.Supported(sess.Lang) {
		sess.Lang = i18n.LangEnglish
	}
	return &sess
}

// Save signs the session and sets the cookie on the response.
func (m *Manager) Save(w http.ResponseWriter, sess *Session) error {
	now := time.Now()
	c := claims{
		Session: *sess,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.lifetime)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("signing session: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.lifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// CSRFToken derives a per-session form token from the signing secret.
func (m *Manager) CSRFToken(sess *Session) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte("csrf:" + sess.SID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyCSRF checks a submitted form token in constant time.
func (m *Manager) VerifyCSRF(sess *Session, token string) bool {
	return hmac.Equal([]byte(m.CSRFToken(sess)), []byte(token))
}

// emailClaims carries the address inside an unsubscribe link token.
type emailClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// EmailToken signs an unsubscribe token for reminder emails. The token has
// no expiry: an unsubscribe link in an old email should keep working.
func (m *Manager) EmailToken(email string) (string, error) {
	c := emailClaims{
		Email:            email,
		RegisteredClaims: jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(time.Now())},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

// VerifyEmailToken returns the address inside a valid unsubscribe token.
func (m *Manager) VerifyEmailToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &emailClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", fmt.Errorf("invalid unsubscribe token")
	}
	c, ok := parsed.Claims.(*emailClaims)
	if !ok || c.Email == "" {
		return "", fmt.Errorf("invalid unsubscribe token")
	}
	return c.Email, nil
}

func (m *Manager) fresh() *Session {
	return &Session{
		SID:  uuid.NewString(),
		Lang: i18n.LangEnglish,
	}
}

// AddFlash queues a message for the next rendered page.
func (s *Session) AddFlash(level, message string) {
	s.Flashes = append(s.Flashes, Flash{Level: level, Message: message})
}

// TakeFlashes drains and returns queued flashes.
func (s *Session) TakeFlashes() []Flash {
	f := s.Flashes
	s.Flashes = nil
	return f
}

// SetPartial stores the validated input of one wizard step.
func (s *Session) SetPartial(tool string, step int, values map[string]string) {
	if s.Partials == nil {
		s.Partials = make(map[string]map[string]map[string]string)
	}
	if s.Partials[tool] == nil {
		s.Partials[tool] = make(map[string]map[string]string)
	}
	s.Partials[tool][strconv.Itoa(step)] = values
}

// Partial returns the stored input for one step, if present.
func (s *Session) Partial(tool string, step int) (map[string]string, bool) {
	values, ok := s.Partials[tool][strconv.Itoa(step)]
	return values, ok
}

// HasSteps reports whether every step in 1..upto has stored input. This is
// the wizard's ordering precondition.
func (s *Session) HasSteps(tool string, upto int) bool {
	for k := 1; k <= upto; k++ {
		if _, ok := s.Partial(tool, k); !ok {
			return false
		}
	}
	return true
}

// ClearTool discards all partials for a tool after finalization.
func (s *Session) ClearTool(tool string) {
	delete(s.Partials, tool)
}
