package artifacts

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"resumebot/resume/model"
	"resumebot/resume/render"
)

type fakeDeleter struct {
	mu   sync.Mutex
	keys []string
}

func (f *fakeDeleter) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, key)
	return nil
}

func testRenderArtifact() render.Artifact {
	data := []byte("%PDF-1.4 test")
	return render.Artifact{Bytes: data, MimeType: "application/pdf", SizeBytes: len(data)}
}

func TestRecordAndList(t *testing.T) {
	recorder := NewRecorder(NewMemoryRepo(), &fakeDeleter{}, zap.NewNop())

	id, err := recorder.Record(context.Background(), testRenderArtifact(), model.ResumeDocument{}, "owner-1", "resumes/a.pdf", "http://x/a.pdf")
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if id == "" {
		t.Fatalf("expected artifact id")
	}

	list, err := recorder.ListByOwner(context.Background(), "owner-1", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].StorageKey != "resumes/a.pdf" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestListNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	recorder := NewRecorder(repo, &fakeDeleter{}, zap.NewNop())

	base := time.Now().UTC()
	for i, key := range []string{"old", "mid", "new"} {
		err := repo.Create(context.Background(), Artifact{
			ID:         key,
			OwnerID:    "owner-1",
			StorageKey: key,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
			ExpiresAt:  base.Add(time.Hour),
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	list, err := recorder.ListByOwner(context.Background(), "owner-1", 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "new" || list[1].ID != "mid" {
		t.Fatalf("expected newest first with limit, got %+v", list)
	}
}

func TestRetentionDeletesOldestBeyondWindow(t *testing.T) {
	deleter := &fakeDeleter{}
	recorder := NewRecorder(NewMemoryRepo(), deleter, zap.NewNop())
	recorder.RetentionPerOwner = 2

	for _, key := range []string{"resumes/1.pdf", "resumes/2.pdf", "resumes/3.pdf"} {
		if _, err := recorder.Record(context.Background(), testRenderArtifact(), model.ResumeDocument{}, "owner-1", key, "http://x/"+key); err != nil {
			t.Fatalf("record %s: %v", key, err)
		}
		// Distinct creation instants keep ordering deterministic.
		time.Sleep(2 * time.Millisecond)
	}

	list, err := recorder.ListByOwner(context.Background(), "owner-1", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected retention window of 2, got %d records", len(list))
	}
	if len(deleter.keys) != 1 || deleter.keys[0] != "resumes/1.pdf" {
		t.Fatalf("expected oldest object deleted, got %v", deleter.keys)
	}
}

func TestRecordDownload(t *testing.T) {
	recorder := NewRecorder(NewMemoryRepo(), &fakeDeleter{}, zap.NewNop())

	id, err := recorder.Record(context.Background(), testRenderArtifact(), model.ResumeDocument{}, "owner-1", "resumes/a.pdf", "http://x/a.pdf")
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := recorder.RecordDownload(context.Background(), id); err != nil {
		t.Fatalf("record download: %v", err)
	}

	list, _ := recorder.ListByOwner(context.Background(), "owner-1", 1)
	if list[0].DownloadCount != 1 {
		t.Fatalf("expected download count 1, got %d", list[0].DownloadCount)
	}

	if err := recorder.RecordDownload(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestSweepExpired(t *testing.T) {
	repo := NewMemoryRepo()
	deleter := &fakeDeleter{}
	recorder := NewRecorder(repo, deleter, zap.NewNop())

	now := time.Now().UTC()
	_ = repo.Create(context.Background(), Artifact{
		ID: "expired", OwnerID: "o", StorageKey: "resumes/expired.pdf",
		CreatedAt: now.Add(-48 * time.Hour), ExpiresAt: now.Add(-time.Hour),
	})
	_ = repo.Create(context.Background(), Artifact{
		ID: "fresh", OwnerID: "o", StorageKey: "resumes/fresh.pdf",
		CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	})

	swept := recorder.SweepExpired(context.Background())
	if swept != 1 {
		t.Fatalf("expected 1 swept, got %d", swept)
	}
	if len(deleter.keys) != 1 || deleter.keys[0] != "resumes/expired.pdf" {
		t.Fatalf("expected expired object deleted, got %v", deleter.keys)
	}

	list, _ := recorder.ListByOwner(context.Background(), "o", 10)
	if len(list) != 1 || list[0].ID != "fresh" {
		t.Fatalf("expected only fresh record, got %+v", list)
	}
}
