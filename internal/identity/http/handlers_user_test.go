package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/go-identity-backend/internal/identity/repository"
	"github.com/GoSim-25-26J-441/go-identity-backend/internal/identity/service"
)

type postCall struct {
	path    string
	payload map[string]interface{}
}

type fakeTransport struct {
	posts     []postCall
	responses []map[string]interface{}
}

func (f *fakeTransport) Post(_ context.Context, path string, payload map[string]interface{}) (map[string]interface{}, error) {
	f.posts = append(f.posts, postCall{path: path, payload: payload})
	var resp map[string]interface{}
	if len(f.responses) > 0 {
		resp, f.responses = f.responses[0], f.responses[1:]
	}
	return resp, nil
}

func setupRouter(t *testing.T, ft *fakeTransport) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	accounts := service.NewAccountService("test-project", ft)
	mirror := repository.NewUserMirrorRepository(db)

	r := gin.New()
	New(accounts, mirror).Register(r.Group("/identity"))
	return r, mock
}

// expectMirrorUpsert matches the nine-argument identity_users upsert
// without pinning values; the repository tests cover those.
func expectMirrorUpsert(mock sqlmock.Sqlmock) {
	mock.ExpectExec(`INSERT INTO identity_users`).
		WithArgs(
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestCreateAccountHandler(t *testing.T) {
	t.Run("creates, coerces loose booleans and mirrors", func(t *testing.T) {
		ft := &fakeTransport{responses: []map[string]interface{}{
			{"localId": "uid-1"},
			{"users": []interface{}{map[string]interface{}{
				"localId": "uid-1",
				"email":   "user@example.com",
			}}},
		}}
		r, mock := setupRouter(t, ft)

		expectMirrorUpsert(mock)

		body := `{"email": "user@example.com", "password": "secret99", "disabled": "true", "email_verified": 1}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/identity/accounts", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"uid":"uid-1"`)

		require.Len(t, ft.posts, 2)
		payload := ft.posts[0].payload
		assert.Equal(t, true, payload["disabled"])
		assert.Equal(t, true, payload["emailVerified"])

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid email is a 400 with no upstream call", func(t *testing.T) {
		ft := &fakeTransport{}
		r, _ := setupRouter(t, ft)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/identity/accounts", strings.NewReader(`{"email": "nope"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, ft.posts)
	})

	t.Run("unparseable boolean flag is a 400", func(t *testing.T) {
		ft := &fakeTransport{}
		r, _ := setupRouter(t, ft)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/identity/accounts", strings.NewReader(`{"disabled": "maybe"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, ft.posts)
	})

	t.Run("upstream response without an id is a 502", func(t *testing.T) {
		ft := &fakeTransport{responses: []map[string]interface{}{{"kind": "nothing"}}}
		r, _ := setupRouter(t, ft)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/identity/accounts", strings.NewReader(`{"email": "user@example.com"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "failed to create user")
	})
}

func TestGetAccountHandler(t *testing.T) {
	t.Run("not found is a 404", func(t *testing.T) {
		ft := &fakeTransport{responses: []map[string]interface{}{
			{"users": []interface{}{}},
		}}
		r, _ := setupRouter(t, ft)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/identity/accounts?uid=missing", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("two selectors are a 400", func(t *testing.T) {
		ft := &fakeTransport{}
		r, _ := setupRouter(t, ft)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/identity/accounts?uid=uid-1&email=a@b.com", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, ft.posts)
	})

	t.Run("found is a 200 with the record", func(t *testing.T) {
		ft := &fakeTransport{responses: []map[string]interface{}{
			{"users": []interface{}{map[string]interface{}{
				"localId": "uid-1",
				"email":   "user@example.com",
			}}},
		}}
		r, _ := setupRouter(t, ft)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/identity/accounts?email=user@example.com", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"uid":"uid-1"`)
	})
}

func TestSetClaimsHandler(t *testing.T) {
	t.Run("null claims request removal and succeed", func(t *testing.T) {
		ft := &fakeTransport{responses: []map[string]interface{}{
			{"localId": "uid-1"},
			{"users": []interface{}{map[string]interface{}{"localId": "uid-1"}}},
		}}
		r, mock := setupRouter(t, ft)

		expectMirrorUpsert(mock)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/identity/accounts/uid-1/claims", strings.NewReader(`{"claims": null}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		require.Len(t, ft.posts, 2)
		val, present := ft.posts[0].payload["customAttributes"]
		require.True(t, present)
		assert.Nil(t, val)
	})
}

func TestDeleteAccountHandler(t *testing.T) {
	ft := &fakeTransport{responses: []map[string]interface{}{{}}}
	r, mock := setupRouter(t, ft)

	mock.ExpectExec(`DELETE FROM identity_users`).WithArgs("uid-1").WillReturnResult(sqlmock.NewResult(0, 1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/identity/accounts/uid-1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	require.Len(t, ft.posts, 1)
	assert.Equal(t, "accounts:delete", ft.posts[0].path)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSessionCookieHandler(t *testing.T) {
	t.Run("missing id token is a 400", func(t *testing.T) {
		ft := &fakeTransport{}
		r, _ := setupRouter(t, ft)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/identity/session-cookies", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, ft.posts)
	})

	t.Run("passes the cookie body through", func(t *testing.T) {
		ft := &fakeTransport{responses: []map[string]interface{}{
			{"sessionCookie": "opaque"},
		}}
		r, _ := setupRouter(t, ft)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/identity/session-cookies", strings.NewReader(`{"id_token": "tok"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "opaque")
		assert.Equal(t, int64(432000), ft.posts[0].payload["validDuration"])
	})
}
