package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"resumebot/internal/artifacts"
	"resumebot/internal/config"
	"resumebot/internal/conversation"
	"resumebot/resume/model"
	"resumebot/resume/render"
)

type noopGateway struct{}

func (noopGateway) SendText(ctx context.Context, identity, text string) error     { return nil }
func (noopGateway) SendDocument(ctx context.Context, identity, u, c string) error { return nil }

type noopPipeline struct{}

func (noopPipeline) Run(ctx context.Context, req conversation.PipelineRequest) conversation.PipelineResult {
	return conversation.PipelineResult{Success: true, Reply: "done"}
}

type noopDeleter struct{}

func (noopDeleter) Delete(ctx context.Context, key string) error { return nil }

func newTestEngine(t *testing.T, cfg config.Config) (*gin.Engine, *artifacts.Recorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	machine := conversation.NewMachine(conversation.NewMemoryStore(), noopGateway{}, noopPipeline{}, zap.NewNop())
	recorder := artifacts.NewRecorder(artifacts.NewMemoryRepo(), noopDeleter{}, zap.NewNop())
	return NewEngine(cfg, machine, recorder, zap.NewNop()), recorder
}

func TestWebhookAcceptsInboundMessage(t *testing.T) {
	engine, _ := newTestEngine(t, config.Config{})

	body := []byte(`{"identity":"+15550001111","text":"hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestWebhookRejectsMissingIdentity(t *testing.T) {
	engine, _ := newTestEngine(t, config.Config{})

	body := []byte(`{"text":"hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestWebhookRejectsMalformedJSON(t *testing.T) {
	engine, _ := newTestEngine(t, config.Config{})

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestWebhookSecretEnforced(t *testing.T) {
	engine, _ := newTestEngine(t, config.Config{WebhookSecret: "s3cret"})

	body := []byte(`{"identity":"+15550001111","text":"hello"}`)

	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without secret, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Secret", "s3cret")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with secret, got %d", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	engine, _ := newTestEngine(t, config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHistoryEndpoints(t *testing.T) {
	engine, recorder := newTestEngine(t, config.Config{})

	data := []byte("%PDF-1.4 test")
	artifact := render.Artifact{Bytes: data, MimeType: "application/pdf", SizeBytes: len(data)}
	id, err := recorder.Record(context.Background(), artifact, model.ResumeDocument{}, "owner-1", "resumes/a.pdf", "http://x/a.pdf")
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/owners/owner-1/artifacts", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), id) {
		t.Fatalf("expected listing with artifact id, got %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/artifacts/"+id+"/download", nil)
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for download record, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/artifacts/missing/download", nil)
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown artifact, got %d", rec.Code)
	}
}
