//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// fakeInstance serves the slice of the client API the TUI touches
type fakeInstance struct {
	*httptest.Server
	searches atomic.Int32
}

func newFakeInstance(t *testing.T) *fakeInstance {
	t.Helper()
	fi := &fakeInstance{}
	mux := http.NewServeMux()

	accounts := map[string]map[string]any{
		"1": {"id": "1", "username": "alice", "acct": "alice", "display_name": "Alice Liddell", "note": "<p>down the rabbit hole</p>", "followers_count": 1, "following_count": 0},
		"2": {"id": "2", "username": "bob", "acct": "bob@remote.tld", "display_name": "Bob Remote"},
		"3": {"id": "3", "username": "carol", "acct": "carol", "display_name": "Carol Follower"},
	}

	mux.HandleFunc("GET /api/v1/accounts/search", func(w http.ResponseWriter, r *http.Request) {
		fi.searches.Add(1)
		if r.URL.Query().Get("q") == "nobody" {
			writeJSON(w, []any{})
			return
		}
		writeJSON(w, []map[string]any{accounts["1"], accounts["2"]})
	})
	mux.HandleFunc("GET /api/v1/accounts/relationships", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{{"id": r.URL.Query().Get("id[]"), "followed_by": true}})
	})
	mux.HandleFunc("GET /api/v1/accounts/{id}", func(w http.ResponseWriter, r *http.Request) {
		a, ok := accounts[r.PathValue("id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			writeJSON(w, map[string]string{"error": "Record not found"})
			return
		}
		writeJSON(w, a)
	})
	mux.HandleFunc("GET /api/v1/accounts/{id}/followers", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{accounts["3"]})
	})
	mux.HandleFunc("GET /api/v1/accounts/{id}/following", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []any{})
	})

	fi.Server = httptest.NewServer(mux)
	t.Cleanup(fi.Close)
	return fi
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
