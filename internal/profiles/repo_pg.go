package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"resumebot/resume/model"
)

// PGRepo implements Provider using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const profileColumns = `email, phone, first_name, last_name, headline, linkedin, github, location, skills, experience, education, projects`

// FindByIdentity resolves a profile by email (preferred) or phone.
func (r *PGRepo) FindByIdentity(ctx context.Context, email, phone string) (model.CandidateProfile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	phone = strings.TrimSpace(phone)
	if email == "" && phone == "" {
		return model.CandidateProfile{}, ErrInvalidInput
	}

	const query = `
SELECT ` + profileColumns + `
FROM candidate_profiles
WHERE ($1 <> '' AND lower(email) = $1)
   OR ($2 <> '' AND phone = $2)
ORDER BY CASE WHEN lower(email) = $1 THEN 0 ELSE 1 END
LIMIT 1`

	row := r.DB.QueryRowContext(ctx, query, email, phone)
	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.CandidateProfile{}, ErrNotFound
		}
		return model.CandidateProfile{}, err
	}
	return profile, nil
}

func scanProfile(row *sql.Row) (model.CandidateProfile, error) {
	var (
		profile                    model.CandidateProfile
		email, phone               sql.NullString
		linkedin, github, location sql.NullString
		skillsJSON, expJSON        []byte
		eduJSON, projJSON          []byte
	)
	err := row.Scan(
		&email,
		&phone,
		&profile.PersonalInfo.FirstName,
		&profile.PersonalInfo.LastName,
		&profile.Headline,
		&linkedin,
		&github,
		&location,
		&skillsJSON,
		&expJSON,
		&eduJSON,
		&projJSON,
	)
	if err != nil {
		return model.CandidateProfile{}, err
	}

	profile.PersonalInfo.Email = email.String
	profile.PersonalInfo.Phone = phone.String
	profile.PersonalInfo.LinkedIn = linkedin.String
	profile.PersonalInfo.GitHub = github.String
	profile.PersonalInfo.Location = location.String

	for _, col := range []struct {
		raw  []byte
		dest any
	}{
		{skillsJSON, &profile.Skills},
		{expJSON, &profile.Experience},
		{eduJSON, &profile.Education},
		{projJSON, &profile.Projects},
	} {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dest); err != nil {
			return model.CandidateProfile{}, err
		}
	}
	return profile, nil
}

var _ Provider = (*PGRepo)(nil)
