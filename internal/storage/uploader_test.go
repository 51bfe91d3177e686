package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"resumebot/resume/render"
)

type fakeStore struct {
	failuresLeft int
	putCalls     int
	deleteCalls  int
	deleted      map[string]bool
}

func (f *fakeStore) Put(ctx context.Context, key, contentType string, r io.Reader) (string, int64, error) {
	f.putCalls++
	if f.failuresLeft > 0 {
		f.failuresLeft--
		return "", 0, errors.New("connection refused")
	}
	n, _ := io.Copy(io.Discard, r)
	return "https://cdn.example.com/" + key, n, nil
}

func (f *fakeStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	f.deleteCalls++
	if f.deleted == nil {
		f.deleted = map[string]bool{}
	}
	// Idempotent: deleting an absent key succeeds.
	f.deleted[key] = true
	return nil
}

func testArtifact() render.Artifact {
	data := []byte("%PDF-1.4 fake")
	return render.Artifact{Bytes: data, MimeType: "application/pdf", SizeBytes: len(data)}
}

func newTestUploader(store *fakeStore) *Uploader {
	return NewUploader(store, "http://localhost:8080", time.Millisecond, zap.NewNop())
}

func TestUploadSucceeds(t *testing.T) {
	store := &fakeStore{}
	result := newTestUploader(store).Upload(context.Background(), testArtifact(), "resumes/abc.pdf", 3)

	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.URL != "https://cdn.example.com/resumes/abc.pdf" {
		t.Fatalf("unexpected url %q", result.URL)
	}
	if store.putCalls != 1 {
		t.Fatalf("expected 1 put, got %d", store.putCalls)
	}
}

func TestUploadRetriesTransientFailure(t *testing.T) {
	store := &fakeStore{failuresLeft: 2}
	result := newTestUploader(store).Upload(context.Background(), testArtifact(), "resumes/abc.pdf", 3)

	if !result.Success {
		t.Fatalf("expected success after retries, got %+v", result)
	}
	if store.putCalls != 3 {
		t.Fatalf("expected 3 puts, got %d", store.putCalls)
	}
}

func TestUploadDegradesToFallbackURL(t *testing.T) {
	store := &fakeStore{failuresLeft: 10}
	result := newTestUploader(store).Upload(context.Background(), testArtifact(), "resumes/abc.pdf", 3)

	if result.Success {
		t.Fatalf("expected failure, got %+v", result)
	}
	if store.putCalls != 3 {
		t.Fatalf("expected exactly maxAttempts puts, got %d", store.putCalls)
	}
	if result.URL != "http://localhost:8080/files/resumes/abc.pdf" {
		t.Fatalf("unexpected fallback url %q", result.URL)
	}
	if result.Err == "" {
		t.Fatalf("expected error detail on failed result")
	}
	if !strings.Contains(result.Err, "connection refused") {
		t.Fatalf("expected last error preserved, got %q", result.Err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := &fakeStore{}
	u := newTestUploader(store)

	if err := u.Delete(context.Background(), "resumes/gone.pdf"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := u.Delete(context.Background(), "resumes/gone.pdf"); err != nil {
		t.Fatalf("second delete must also succeed: %v", err)
	}
	if store.deleteCalls != 2 {
		t.Fatalf("expected 2 delete calls, got %d", store.deleteCalls)
	}
}
