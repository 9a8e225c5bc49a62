package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDo_SetsDefaultHeaders(t *testing.T) {
	t.Parallel()

	var gotUA, gotExtra, gotKept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotExtra = r.Header.Get("X-Extra")
		gotKept = r.Header.Get("X-Kept")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(5 * time.Second)
	c.Headers = map[string]string{"X-Extra": "1", "X-Kept": "default"}

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, srv.URL, http.NoBody)
	require.NoError(t, err)
	req.Header.Set("X-Kept", "caller")

	res, err := c.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusNoContent, res.StatusCode)
	require.Equal(t, DefaultUserAgent, gotUA)
	require.Equal(t, "1", gotExtra)
	require.Equal(t, "caller", gotKept)
}

func TestDo_Timeout(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(block)

	c := New(50 * time.Millisecond)
	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, srv.URL, http.NoBody)
	require.NoError(t, err)

	_, err = c.Do(req)
	require.Error(t, err)
}
