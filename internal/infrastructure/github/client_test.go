package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codecohort/alumni-directory/internal/core/domain"
)

func TestExchangeCode_SendsCredentialsAndRelaysBody(t *testing.T) {
	var gotQuery map[string]string
	var gotMethod, gotAccept string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAccept = r.Header.Get("Accept")
		gotQuery = map[string]string{
			"client_id":     r.URL.Query().Get("client_id"),
			"client_secret": r.URL.Query().Get("client_secret"),
			"code":          r.URL.Query().Get("code"),
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"access_token":"gho_x","token_type":"bearer"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{ClientID: "id", ClientSecret: "secret", TokenURL: srv.URL + "/login/oauth/access_token"}, zerolog.Nop())

	resp, err := c.ExchangeCode(context.Background(), "abc")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, map[string]string{"client_id": "id", "client_secret": "secret", "code": "abc"}, gotQuery)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json; charset=utf-8", resp.ContentType)
	assert.JSONEq(t, `{"access_token":"gho_x","token_type":"bearer"}`, string(resp.Body))
}

func TestExchangeCode_BadVerificationCodeIsRelayed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":"bad_verification_code"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{TokenURL: srv.URL}, zerolog.Nop())

	resp, err := c.ExchangeCode(context.Background(), "expired")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"error":"bad_verification_code"}`, string(resp.Body))
}

func TestFetchUser_ForwardsAuthorizationAndStatus(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIURL: srv.URL + "/"}, zerolog.Nop())

	resp, err := c.FetchUser(context.Background(), "Bearer gho_bad")
	require.NoError(t, err)

	assert.Equal(t, "Bearer gho_bad", gotAuth)
	assert.Equal(t, "/user", gotPath)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Bad credentials"}`, string(resp.Body))
}

func TestFetchUser_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(Config{APIURL: url}, zerolog.Nop())

	_, err := c.FetchUser(context.Background(), "Bearer x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstream))
}
