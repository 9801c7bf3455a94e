package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/telco_shop/pkg/tokens"
)

const (
	AccessCookie = "accessToken"
	ClientCookie = "clientId"

	ctxUserID   = "user_id"
	ctxRole     = "role"
	ctxClientID = "client_id"

	clientCookieTTL = 365 * 24 * time.Hour
)

// Identity resolves who is calling. A valid access token makes the caller an
// authenticated user; everybody else is anonymous and is told apart only by
// a long-lived client id cookie.
type Identity struct {
	JWTSecret []byte
	Secure    bool
}

func NewIdentity(secret []byte) *Identity {
	return &Identity{JWTSecret: secret}
}

func (m *Identity) Resolve(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if ck, err := c.Cookie(AccessCookie); err == nil && ck.Value != "" {
			claims, err := tokens.AccessClaimsFromToken(ck.Value, m.JWTSecret)
			if err == nil {
				c.Set(ctxUserID, claims.Subject)
				c.Set(ctxRole, claims.Role)
			} else {
				c.SetCookie(m.expired(AccessCookie))
			}
		}

		clientID := ""
		if ck, err := c.Cookie(ClientCookie); err == nil {
			if _, perr := uuid.Parse(ck.Value); perr == nil {
				clientID = ck.Value
			}
		}
		if clientID == "" {
			clientID = uuid.NewString()
			c.SetCookie(&http.Cookie{
				Name:     ClientCookie,
				Value:    clientID,
				Path:     "/",
				Expires:  time.Now().Add(clientCookieTTL),
				HttpOnly: true,
				Secure:   m.Secure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		c.Set(ctxClientID, clientID)

		return next(c)
	}
}

func (m *Identity) expired(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// UserID is empty for anonymous callers.
func UserID(c echo.Context) string {
	s, _ := c.Get(ctxUserID).(string)
	return s
}

func ClientID(c echo.Context) string {
	s, _ := c.Get(ctxClientID).(string)
	return s
}

// Owner scopes browser-local state: the user when logged in, otherwise the
// anonymous client.
func Owner(c echo.Context) string {
	if uid := UserID(c); uid != "" {
		return "user:" + uid
	}
	return "client:" + ClientID(c)
}
