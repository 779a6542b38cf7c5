package netx

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownload(t *testing.T) {
	payload := []byte{0xff, 0xd8, 0xff, 0xe0}

	t.Run("success", func(t *testing.T) {
		var gotMethod string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write(payload)
		}))
		defer ts.Close()

		var buf bytes.Buffer
		n, err := Download(context.Background(), ts.Client(), ts.URL+"/photo.jpg", &buf)
		require.NoError(t, err)
		assert.Equal(t, http.MethodGet, gotMethod)
		assert.EqualValues(t, len(payload), n)
		assert.Equal(t, payload, buf.Bytes())
	})

	t.Run("non-200 includes status and body", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "object not found", http.StatusNotFound)
		}))
		defer ts.Close()

		var buf bytes.Buffer
		_, err := Download(context.Background(), nil, ts.URL, &buf)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
		assert.Contains(t, err.Error(), "object not found")
		assert.Zero(t, buf.Len())
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := Download(context.Background(), nil, "://bad", &bytes.Buffer{})
		require.Error(t, err)
	})

	t.Run("canceled context", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer ts.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Download(ctx, ts.Client(), ts.URL, &bytes.Buffer{})
		require.ErrorIs(t, err, context.Canceled)
	})
}
