package auth_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycatalog/media-portal/internal/auth"
)

const casSuccessXML = `<cas:serviceResponse xmlns:cas="http://www.yale.edu/tp/cas">
	<cas:authenticationSuccess>
		<cas:user>jane.doe</cas:user>
		<cas:attributes>
			<cas:mail>jane@example.org</cas:mail>
			<cas:givenName>Jane</cas:givenName>
			<cas:sn>Doe</cas:sn>
			<cas:displayName>Jane Doe</cas:displayName>
		</cas:attributes>
	</cas:authenticationSuccess>
</cas:serviceResponse>`

const casFailureXML = `<cas:serviceResponse xmlns:cas="http://www.yale.edu/tp/cas">
	<cas:authenticationFailure code="INVALID_TICKET">
		Ticket ST-12345 not recognized
	</cas:authenticationFailure>
</cas:serviceResponse>`

func newTestClient(t *testing.T, handler http.HandlerFunc) *auth.CASClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return auth.NewCASClient(auth.CASConfig{
		ServerURL:      srv.URL,
		ServiceURL:     "http://portal.example.org/auth/callback",
		AppURL:         "http://portal.example.org",
		RequestTimeout: 5 * time.Second,
	})
}

func TestValidateTicketSuccess(t *testing.T) {
	var gotQuery url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/serviceValidate", r.URL.Path)
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(casSuccessXML))
	})

	user, err := client.ValidateTicket(t.Context(), "ST-12345")
	require.NoError(t, err)

	assert.Equal(t, "ST-12345", gotQuery.Get("ticket"))
	assert.Equal(t, "http://portal.example.org/auth/callback", gotQuery.Get("service"))

	assert.Equal(t, "jane.doe", user.Username)
	assert.Equal(t, "jane@example.org", user.Email)
	assert.Equal(t, "Jane", user.GivenName)
	assert.Equal(t, "Doe", user.Surname)
	assert.Equal(t, "Jane Doe", user.DisplayName)
}

func TestValidateTicketFallsBackToUsernameForDisplayName(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<cas:serviceResponse xmlns:cas="http://www.yale.edu/tp/cas">
			<cas:authenticationSuccess><cas:user>jane.doe</cas:user></cas:authenticationSuccess>
		</cas:serviceResponse>`))
	})

	user, err := client.ValidateTicket(t.Context(), "ST-1")
	require.NoError(t, err)
	assert.Equal(t, "jane.doe", user.DisplayName)
	assert.Empty(t, user.Email)
}

func TestValidateTicketFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(casFailureXML))
	})

	_, err := client.ValidateTicket(t.Context(), "ST-bad")
	require.Error(t, err)
	assert.Equal(t, auth.CodeInvalidTicket, errx.AsErrorX(err).Code())
	assert.Equal(t, errx.T_Authentication, errx.AsErrorX(err).Type())
}

func TestValidateTicketRetriesTransientFailures(t *testing.T) {
	attempts := 0
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(casSuccessXML))
	})

	user, err := client.ValidateTicket(t.Context(), "ST-1")
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, "jane.doe", user.Username)
}

func TestLoginAndLogoutURLs(t *testing.T) {
	client := auth.NewCASClient(auth.CASConfig{
		ServerURL:  "https://cas.example.org/cas",
		ServiceURL: "http://portal.example.org/auth/callback",
		AppURL:     "http://portal.example.org",
	})

	login, err := url.Parse(client.LoginURL())
	require.NoError(t, err)
	assert.Equal(t, "/cas/login", login.Path)
	assert.Equal(t, "http://portal.example.org/auth/callback", login.Query().Get("service"))

	logout, err := url.Parse(client.LogoutURL())
	require.NoError(t, err)
	assert.Equal(t, "/cas/logout", logout.Path)
	assert.Equal(t, "http://portal.example.org", logout.Query().Get("service"))
}
