package steam

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"deadlock-tracker/internal/api"

	"github.com/rs/zerolog"
)

type routeTransport struct {
	routes map[string]*api.Response
	seen   []string
}

func (r *routeTransport) Get(ctx context.Context, rawURL string) (*api.Response, error) {
	r.seen = append(r.seen, rawURL)
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if resp, ok := r.routes[u.Path]; ok {
		return resp, nil
	}
	return &api.Response{StatusCode: http.StatusNotFound}, nil
}

func TestWebAPIMissingKey(t *testing.T) {
	w := NewWebAPI("", "https://steam.example", &routeTransport{}, zerolog.Nop())

	if _, err := w.ResolveVanityURL(context.Background(), "gabe"); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
	if _, err := w.GetPlayerSummaries(context.Background(), []uint64{SteamID64Base + 1}); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestWebAPIResolveVanityURL(t *testing.T) {
	transport := &routeTransport{routes: map[string]*api.Response{
		"/ISteamUser/ResolveVanityURL/v0001/": {StatusCode: http.StatusOK, Body: []byte(`{"response":{"steamid":"76561197960287930","success":1}}`)},
	}}
	w := NewWebAPI("secret", "https://steam.example/", transport, zerolog.Nop())

	id, err := w.ResolveVanityURL(context.Background(), "gabelogannewell")
	if err != nil {
		t.Fatal(err)
	}
	if id != 76561197960287930 {
		t.Errorf("expected exact steam id, got %d", id)
	}
	if !strings.Contains(transport.seen[0], "vanityurl=gabelogannewell") || !strings.Contains(transport.seen[0], "key=secret") {
		t.Errorf("unexpected request %s", transport.seen[0])
	}
}

func TestWebAPIResolveVanityURLNotFound(t *testing.T) {
	transport := &routeTransport{routes: map[string]*api.Response{
		"/ISteamUser/ResolveVanityURL/v0001/": {StatusCode: http.StatusOK, Body: []byte(`{"response":{"success":42,"message":"No match"}}`)},
	}}
	w := NewWebAPI("secret", "https://steam.example", transport, zerolog.Nop())

	_, err := w.ResolveVanityURL(context.Background(), "nobody-here")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Term != "nobody-here" || !strings.Contains(err.Error(), "nobody-here") {
		t.Errorf("expected search term in error, got %q", err.Error())
	}
}

func TestWebAPIGetPlayerSummaries(t *testing.T) {
	transport := &routeTransport{routes: map[string]*api.Response{
		"/ISteamUser/GetPlayerSummaries/v0002/": {StatusCode: http.StatusOK, Body: []byte(`{"response":{"players":[{"steamid":"76561197960287930","personaname":"Rabscuttle","avatarfull":"https://avatars/full.jpg"}]}}`)},
	}}
	w := NewWebAPI("secret", "https://steam.example", transport, zerolog.Nop())

	resp, err := w.GetPlayerSummaries(context.Background(), []uint64{76561197960287930, 76561197960265729})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Response.Players) != 1 || resp.Response.Players[0].PersonaName != "Rabscuttle" {
		t.Errorf("unexpected players %+v", resp.Response.Players)
	}
	if !strings.Contains(transport.seen[0], url.QueryEscape("76561197960287930,76561197960265729")) {
		t.Errorf("expected csv steam ids in %s", transport.seen[0])
	}
}

func TestWebAPIUpstreamFailure(t *testing.T) {
	transport := &routeTransport{routes: map[string]*api.Response{
		"/ISteamUser/GetPlayerSummaries/v0002/": {StatusCode: http.StatusForbidden},
	}}
	w := NewWebAPI("bad-key", "https://steam.example", transport, zerolog.Nop())

	if _, err := w.GetPlayerSummaries(context.Background(), []uint64{SteamID64Base}); err == nil {
		t.Error("expected error for 403 from steam")
	}
}

func TestParseSteamIDs(t *testing.T) {
	ids, err := ParseSteamIDs("22202, 76561197960265729,,")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != 76561197960287930 || ids[1] != 76561197960265729 {
		t.Errorf("unexpected ids %v", ids)
	}
	if _, err := ParseSteamIDs("abc"); err == nil {
		t.Error("expected error for a non numeric id")
	}
}
