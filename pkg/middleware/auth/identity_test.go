package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/telco_shop/pkg/tokens"
)

var secret = []byte("identity-secret")

func run(t *testing.T, cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := NewIdentity(secret).Resolve(func(c echo.Context) error {
		called = true
		return nil
	})
	require.NoError(t, h(c))
	require.True(t, called)
	return c, rec
}

func TestIdentity_Anonymous_IssuesClientID(t *testing.T) {
	c, rec := run(t)

	assert.Empty(t, UserID(c))
	require.NotEmpty(t, ClientID(c))
	assert.Equal(t, "client:"+ClientID(c), Owner(c))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, ClientCookie, cookies[0].Name)
	assert.Equal(t, ClientID(c), cookies[0].Value)
}

func TestIdentity_KeepsExistingClientID(t *testing.T) {
	const id = "2b1b7f7c-6a44-4f5e-9d61-3d3c6f0f1a11"
	c, rec := run(t, &http.Cookie{Name: ClientCookie, Value: id})

	assert.Equal(t, id, ClientID(c))
	assert.Empty(t, rec.Result().Cookies())
}

func TestIdentity_ValidAccessToken(t *testing.T) {
	token, err := tokens.NewAccessToken("user-7", "customer", time.Now().Add(time.Minute), secret)
	require.NoError(t, err)

	c, _ := run(t, &http.Cookie{Name: AccessCookie, Value: token})

	assert.Equal(t, "user-7", UserID(c))
	assert.Equal(t, "user:user-7", Owner(c))
}

func TestIdentity_InvalidAccessToken_FallsBackToAnonymous(t *testing.T) {
	c, rec := run(t, &http.Cookie{Name: AccessCookie, Value: "garbage"})

	assert.Empty(t, UserID(c))
	var cleared bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == AccessCookie && ck.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}
