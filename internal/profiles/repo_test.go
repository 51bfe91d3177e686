package profiles

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"resumebot/resume/model"
)

func testProfile(email, phone string) model.CandidateProfile {
	return model.CandidateProfile{
		PersonalInfo: model.PersonalInfo{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     email,
			Phone:     phone,
		},
		Skills: []string{"Go", "SQL"},
	}
}

func TestMemoryRepoFindByEmail(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Add(testProfile("ada@example.com", "+15550001111"))

	got, err := repo.FindByIdentity(context.Background(), "ADA@example.com", "")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if got.PersonalInfo.FirstName != "Ada" {
		t.Fatalf("unexpected profile: %+v", got)
	}
}

func TestMemoryRepoFindByPhone(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Add(testProfile("ada@example.com", "+15550001111"))

	got, err := repo.FindByIdentity(context.Background(), "", "+15550001111")
	if err != nil {
		t.Fatalf("find by phone: %v", err)
	}
	if got.PersonalInfo.Phone != "+15550001111" {
		t.Fatalf("unexpected profile: %+v", got)
	}
}

func TestMemoryRepoEmailTakesPrecedence(t *testing.T) {
	repo := NewMemoryRepo()
	emailMatch := testProfile("ada@example.com", "+15550009999")
	phoneMatch := testProfile("grace@example.com", "+15550001111")
	phoneMatch.PersonalInfo.FirstName = "Grace"
	repo.Add(phoneMatch)
	repo.Add(emailMatch)

	got, err := repo.FindByIdentity(context.Background(), "ada@example.com", "+15550001111")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.PersonalInfo.FirstName != "Ada" {
		t.Fatalf("expected email match to win, got %+v", got)
	}
}

func TestMemoryRepoNotFound(t *testing.T) {
	repo := NewMemoryRepo()

	if _, err := repo.FindByIdentity(context.Background(), "ghost@example.com", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.FindByIdentity(context.Background(), "", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPGRepoFindByIdentity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	rows := sqlmock.NewRows([]string{
		"email", "phone", "first_name", "last_name", "headline",
		"linkedin", "github", "location",
		"skills", "experience", "education", "projects",
	}).AddRow(
		"ada@example.com", "+15550001111", "Ada", "Lovelace", "Engineer",
		nil, nil, "London",
		[]byte(`["Go","SQL"]`), []byte(`[]`), []byte(`[]`), []byte(`[]`),
	)

	mock.ExpectQuery("SELECT (.+) FROM candidate_profiles").
		WithArgs("ada@example.com", "").
		WillReturnRows(rows)

	got, err := repo.FindByIdentity(context.Background(), "Ada@Example.com", "")
	if err != nil {
		t.Fatalf("FindByIdentity: %v", err)
	}
	if got.PersonalInfo.FirstName != "Ada" || len(got.Skills) != 2 {
		t.Fatalf("unexpected profile: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT (.+) FROM candidate_profiles").
		WithArgs("ghost@example.com", "").
		WillReturnRows(sqlmock.NewRows([]string{"email"}))

	if _, err := repo.FindByIdentity(context.Background(), "ghost@example.com", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
