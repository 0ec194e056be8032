package steam

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"deadlock-tracker/internal/api"

	"github.com/rs/zerolog"
)

func newProxyClient(t *testing.T, handler http.HandlerFunc) *ProxyClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := api.NewClient(api.NewFastHTTPTransport(nil), api.Options{
		CacheTTL:           time.Minute,
		MinRequestInterval: 0,
		RateLimitCooldown:  0,
	}, zerolog.Nop())
	return NewProxyClient(client, srv.URL+"/api/steam-user", zerolog.Nop())
}

func TestProxyGetSteamUsers(t *testing.T) {
	p := newProxyClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("steamids"); got != "76561197960287930" {
			http.Error(w, `{"error":"bad ids"}`, http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"response": map[string]any{
				"players": []map[string]any{{"steamid": "76561197960287930", "personaname": "Rabscuttle"}},
			},
		})
	})

	players, err := p.GetSteamUsers(context.Background(), []uint32{22202})
	if err != nil {
		t.Fatal(err)
	}
	if len(players) != 1 || players[0].DeadlockAccountID != 22202 || players[0].PersonaName != "Rabscuttle" {
		t.Errorf("unexpected players %+v", players)
	}
}

func TestProxyFailsSoftWhenUnconfigured(t *testing.T) {
	p := newProxyClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Steam API key not configured"}`))
	})

	player, err := p.GetSteamUser(context.Background(), 22202)
	if err != nil {
		t.Fatalf("expected soft failure, got %v", err)
	}
	if player != nil {
		t.Errorf("expected nil player, got %+v", player)
	}
}

func TestProxyResolveVanityURL(t *testing.T) {
	p := newProxyClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("vanityurl") {
		case "rabscuttle":
			_, _ = w.Write([]byte(`{"resolved":true,"vanityurl":"rabscuttle","steamid":"76561197960287930","deadlockAccountId":22202}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Vanity URL not found"}`))
		}
	})

	resolved, err := p.ResolveVanityURL(context.Background(), "rabscuttle")
	if err != nil {
		t.Fatal(err)
	}
	if resolved == nil || resolved.DeadlockAccountID != 22202 || resolved.SteamID != "76561197960287930" {
		t.Errorf("unexpected resolution %+v", resolved)
	}

	missing, err := p.ResolveVanityURL(context.Background(), "ghost")
	if err != nil || missing != nil {
		t.Errorf("expected nil, nil for unknown vanity url, got %+v, %v", missing, err)
	}
}

func TestProxyHardFailurePropagates(t *testing.T) {
	p := newProxyClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	if _, err := p.GetSteamUsers(context.Background(), []uint32{1}); err == nil {
		t.Error("expected 502 from the proxy to surface as an error")
	}
}
