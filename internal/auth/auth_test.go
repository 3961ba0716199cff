package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewTokenSourceStatic(t *testing.T) {
	ts := NewTokenSource(context.Background(), "s3cret", ClientCredentials{})
	if ts == nil {
		t.Fatal("expected token source")
	}
	tok, err := ts.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if tok.AccessToken != "s3cret" {
		t.Errorf("expected static token, got %q", tok.AccessToken)
	}
}

func TestNewTokenSourceNone(t *testing.T) {
	if ts := NewTokenSource(context.Background(), "", ClientCredentials{ClientID: "only-id"}); ts != nil {
		t.Error("expected nil token source without credentials")
	}
}

func TestNewTokenSourceClientCredentials(t *testing.T) {
	var gotGrant string
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotGrant = r.PostForm.Get("grant_type")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "issued-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))
	defer tokenSrv.Close()

	ts := NewTokenSource(context.Background(), "ignored", ClientCredentials{
		ClientID:     "docbrowser",
		ClientSecret: "secret",
		TokenURL:     tokenSrv.URL,
	})
	tok, err := ts.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if tok.AccessToken != "issued-token" {
		t.Errorf("expected issued token, got %q", tok.AccessToken)
	}
	if gotGrant != "client_credentials" {
		t.Errorf("expected client_credentials grant, got %q", gotGrant)
	}
}
