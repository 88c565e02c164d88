package clients

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseClientGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte(`{"ok":true}`))
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("down"))
		}
	}))
	defer server.Close()

	client := NewBaseClient(server.URL)
	client.SetHeader("Accept", "application/json")

	body, err := client.Get(context.Background(), "/ok")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))

	_, err = client.Get(context.Background(), "/broken")
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.StatusServiceUnavailable, netErr.StatusCode)
	assert.Contains(t, err.Error(), "down")
}

func TestBaseClientTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewBaseClient(url)
	client.SetTimeout(time.Second)

	_, err := client.Get(context.Background(), "/anything")
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Zero(t, netErr.StatusCode)
}

func TestBaseClientHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBaseClient(server.URL).Get(ctx, "/slow")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
