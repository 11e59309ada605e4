package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/address-book/internal/application"
	"github.com/oksasatya/address-book/internal/infrastructure/github"
	"github.com/oksasatya/address-book/internal/infrastructure/memory"
	handlers "github.com/oksasatya/address-book/internal/interface/http"
	"github.com/oksasatya/address-book/internal/interface/middleware"
	"github.com/oksasatya/address-book/internal/router"
	"github.com/oksasatya/address-book/internal/router/modules"
	"github.com/oksasatya/address-book/pkg/helpers"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// testServer is the whole API wired against in-memory repositories and a
// fake GitHub. Authorization codes map to profiles registered up front.
type testServer struct {
	engine   *gin.Engine
	profiles map[string]github.Profile // code -> profile
}

func newTestServer(t *testing.T, admins []string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{profiles: map[string]github.Profile{}}

	mux := http.NewServeMux()
	mux.HandleFunc("/login/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if _, ok := ts.profiles[body["code"]]; !ok {
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "bad_verification_code"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-" + body["code"]})
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer tok-")
		p, ok := ts.profiles[code]
		if !ok {
			http.Error(w, "bad token", http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(p)
	})
	provider := httptest.NewServer(mux)
	t.Cleanup(provider.Close)

	gh := github.NewClient(github.Config{
		ClientID:     "cid",
		ClientSecret: "csecret",
		RedirectURI:  "http://localhost:3000/api/auth/github/callback",
		AuthorizeURL: provider.URL + "/login/oauth/authorize",
		TokenURL:     provider.URL + "/login/oauth/access_token",
		UserURL:      provider.URL + "/user",
	})

	users := memory.NewUserRepository()
	addrs := memory.NewAddressRepository()
	session := helpers.NewSessionManager("test-secret")
	logger := quietLogger()

	auth := application.NewAuthService(users, addrs, gh, session, admins, logger)
	addresses := application.NewAddressService(addrs, logger)

	r := gin.New()
	r.Use(middleware.ErrorResponder(logger))

	reg := router.NewRegistry(r)
	reg.Use(middleware.AuthSession(session, auth))
	reg.Add(modules.NewAuthModule(handlers.NewAuthHandler(auth, logger)))
	reg.Add(modules.NewUserModule(handlers.NewUserHandler(auth, addresses, logger)))
	reg.RegisterAll()

	ts.engine = r
	return ts
}

func (ts *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

// login runs the callback for code and returns the session token from the
// redirect.
func (ts *testServer) login(t *testing.T, code string) string {
	t.Helper()
	w := ts.do(http.MethodGet, "/api/auth/github/callback?code="+code, "", "")
	require.Equal(t, http.StatusFound, w.Code)

	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	token := loc.Query().Get("token")
	require.NotEmpty(t, token)
	return token
}

func TestAnonymousIdentityIsUnauthorized(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodGet, "/api/auth", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
}

func TestCallbackCreatesUserAndTokenAuthenticates(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.profiles["code-moe"] = github.Profile{ID: 42, Login: "moe"}

	token := ts.login(t, "code-moe")

	w := ts.do(http.MethodGet, "/api/auth", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var ident struct {
		ID        string            `json:"id"`
		Name      string            `json:"name"`
		IsAdmin   bool              `json:"is_admin"`
		Addresses []json.RawMessage `json:"addresses"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ident))
	assert.NotEmpty(t, ident.ID)
	assert.Equal(t, "moe", ident.Name)
	assert.False(t, ident.IsAdmin)
	assert.NotNil(t, ident.Addresses)
	assert.Empty(t, ident.Addresses)
}

func TestCallbackWithBadCodeHitsErrorResponder(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodGet, "/api/auth/github/callback?code=unknown", "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "bad_verification_code")
}

func TestGithubRedirect(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodGet, "/api/auth/github", "", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "client_id=cid")
}

func TestAddressOwnership(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.profiles["code-moe"] = github.Profile{ID: 42, Login: "moe"}
	ts.profiles["code-larry"] = github.Profile{ID: 43, Login: "larry"}

	moeToken := ts.login(t, "code-moe")
	larryToken := ts.login(t, "code-larry")

	var moe struct {
		ID string `json:"id"`
	}
	w := ts.do(http.MethodGet, "/api/auth", moeToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &moe))

	// The owner creates an address under their own path.
	body := `{"json":"{\"formatted_address\":\"X\"}"}`
	w = ts.do(http.MethodPost, "/api/users/"+moe.ID+"/addresses", moeToken, body)
	require.Equal(t, http.StatusOK, w.Code)

	var addr struct {
		ID     string          `json:"id"`
		UserID string          `json:"userId"`
		JSON   json.RawMessage `json:"json"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &addr))
	assert.Equal(t, moe.ID, addr.UserID)
	assert.JSONEq(t, `{"formatted_address":"X"}`, string(addr.JSON))

	// Another authenticated user posting to moe's path is denied.
	w = ts.do(http.MethodPost, "/api/users/"+moe.ID+"/addresses", larryToken, body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Anonymous too.
	w = ts.do(http.MethodPost, "/api/users/"+moe.ID+"/addresses", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The identity now carries the address.
	w = ts.do(http.MethodGet, "/api/auth", moeToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), addr.ID)

	// Owner deletes it; a repeat delete of the vanished id still 204s.
	w = ts.do(http.MethodDelete, "/api/users/"+moe.ID+"/addresses/"+addr.ID, moeToken, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = ts.do(http.MethodDelete, "/api/users/"+moe.ID+"/addresses/"+addr.ID, moeToken, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCreateAddressRejectsBadPayload(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.profiles["code-moe"] = github.Profile{ID: 42, Login: "moe"}
	token := ts.login(t, "code-moe")

	var moe struct {
		ID string `json:"id"`
	}
	w := ts.do(http.MethodGet, "/api/auth", token, "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &moe))

	// Missing json field.
	w = ts.do(http.MethodPost, "/api/users/"+moe.ID+"/addresses", token, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// json field that is not parseable JSON.
	w = ts.do(http.MethodPost, "/api/users/"+moe.ID+"/addresses", token, `{"json":"{oops"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminListing(t *testing.T) {
	ts := newTestServer(t, []string{"boss"})
	ts.profiles["code-boss"] = github.Profile{ID: 1, Login: "boss"}
	ts.profiles["code-moe"] = github.Profile{ID: 2, Login: "moe"}

	bossToken := ts.login(t, "code-boss")
	moeToken := ts.login(t, "code-moe")

	w := ts.do(http.MethodGet, "/api/users", bossToken, "")
	require.Equal(t, http.StatusOK, w.Code)

	var users []struct {
		Name      string            `json:"name"`
		Addresses []json.RawMessage `json:"addresses"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 2)

	// Non-admins and anonymous callers are denied.
	w = ts.do(http.MethodGet, "/api/users", moeToken, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = ts.do(http.MethodGet, "/api/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminCanActOnOthersAddresses(t *testing.T) {
	ts := newTestServer(t, []string{"boss"})
	ts.profiles["code-boss"] = github.Profile{ID: 1, Login: "boss"}
	ts.profiles["code-moe"] = github.Profile{ID: 2, Login: "moe"}

	bossToken := ts.login(t, "code-boss")
	moeToken := ts.login(t, "code-moe")

	var moe struct {
		ID string `json:"id"`
	}
	w := ts.do(http.MethodGet, "/api/auth", moeToken, "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &moe))

	body := `{"json":"{\"formatted_address\":\"X\"}"}`
	w = ts.do(http.MethodPost, "/api/users/"+moe.ID+"/addresses", moeToken, body)
	require.Equal(t, http.StatusOK, w.Code)
	var addr struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &addr))

	// The admin passes the ownership policy on moe's path.
	w = ts.do(http.MethodDelete, "/api/users/"+moe.ID+"/addresses/"+addr.ID, bossToken, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = ts.do(http.MethodGet, "/api/auth", moeToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), addr.ID)
}
