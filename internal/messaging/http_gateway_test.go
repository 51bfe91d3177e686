package messaging

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestSendTextPostsJSON(t *testing.T) {
	var got sendRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/messages" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(sendResponse{Success: true})
	}))
	t.Cleanup(srv.Close)

	gw, err := NewHTTPGateway(srv.URL, "secret-token", zap.NewNop())
	if err != nil {
		t.Fatalf("NewHTTPGateway: %v", err)
	}

	if err := gw.SendText(context.Background(), "+15550001111", "hello"); err != nil {
		t.Fatalf("SendText: %v", err)
	}
	if got.To != "+15550001111" || got.Type != "text" || got.Text != "hello" {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if auth != "Bearer secret-token" {
		t.Fatalf("unexpected auth header: %q", auth)
	}
}

func TestSendDocumentIncludesURLAndCaption(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(sendResponse{Success: true})
	}))
	t.Cleanup(srv.Close)

	gw, err := NewHTTPGateway(srv.URL+"/", "", zap.NewNop())
	if err != nil {
		t.Fatalf("NewHTTPGateway: %v", err)
	}

	if err := gw.SendDocument(context.Background(), "+15550001111", "https://x/resume.pdf", "Your resume"); err != nil {
		t.Fatalf("SendDocument: %v", err)
	}
	if got.Type != "document" || got.URL != "https://x/resume.pdf" || got.Caption != "Your resume" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestSendSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sendResponse{Success: false, Error: "unknown recipient"})
	}))
	t.Cleanup(srv.Close)

	gw, _ := NewHTTPGateway(srv.URL, "", zap.NewNop())
	if err := gw.SendText(context.Background(), "+1", "hi"); err == nil {
		t.Fatalf("expected error from api-level failure")
	}
}

func TestSendSurfacesHTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	gw, _ := NewHTTPGateway(srv.URL, "", zap.NewNop())
	if err := gw.SendText(context.Background(), "+1", "hi"); err == nil {
		t.Fatalf("expected error on non-2xx status")
	}
}

func TestNewHTTPGatewayRequiresBaseURL(t *testing.T) {
	if _, err := NewHTTPGateway("  ", "", zap.NewNop()); err == nil {
		t.Fatalf("expected error for empty base url")
	}
}
