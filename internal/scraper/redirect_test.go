package scraper_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricewatch/internal/scraper"
)

func TestCheckRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	t.Run("moved", func(t *testing.T) {
		location, moved, err := scraper.CheckRedirect(context.Background(), ts.URL+"/old")
		require.NoError(t, err)
		assert.True(t, moved)
		assert.Equal(t, ts.URL+"/new", location)
	})

	t.Run("not moved", func(t *testing.T) {
		_, moved, err := scraper.CheckRedirect(context.Background(), ts.URL+"/new")
		require.NoError(t, err)
		assert.False(t, moved)
	})

	t.Run("unreachable host", func(t *testing.T) {
		_, _, err := scraper.CheckRedirect(context.Background(), "http://127.0.0.1:1/nothing")
		assert.Error(t, err)
	})
}
