package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormSparkSubmitSuccess(t *testing.T) {
	var got formSparkPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewFormSparkSubmitter(srv.URL)
	err := s.Submit(context.Background(), validSubmission())

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, "jane@example.com", got.Email)
	assert.Equal(t, "jane#0 (discord-1)", got.DiscordUser)
	assert.NotEmpty(t, got.Timestamp)
}

func TestFormSparkSubmitAccepts201(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	s := NewFormSparkSubmitter(srv.URL)
	assert.NoError(t, s.Submit(context.Background(), validSubmission()))
}

func TestFormSparkSubmitNon2xxFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewFormSparkSubmitter(srv.URL)
	err := s.Submit(context.Background(), validSubmission())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestFormSparkSubmitNetworkErrorFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	s := NewFormSparkSubmitter(srv.URL)
	assert.Error(t, s.Submit(context.Background(), validSubmission()))
}
