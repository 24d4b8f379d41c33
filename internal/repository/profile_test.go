package repository

import (
	"context"
	"testing"

	"devconnect/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func profileRows(id, userID uint) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "status", "company", "location", "website", "bio",
		"github_username", "skills", "social", "experience", "education",
	}).AddRow(
		id, userID, "Developer", "Acme", "Portland, OR", "https://example.com", "",
		"testdev", "{go,rust}", `{}`, `[]`, `[]`,
	)
}

// The owner join must stay limited to public fields; the email column never
// leaves the database on profile reads.
func expectUserPreload(mock sqlmock.Sqlmock, userID uint) {
	mock.ExpectQuery(`SELECT "id","name","avatar" FROM "users" WHERE "users"\."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "avatar"}).
			AddRow(userID, "Test Dev", "https://www.gravatar.com/avatar/abc"))
}

func TestProfileRepository_GetByUserID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProfileRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE user_id = \$1`).
		WithArgs(1, 1).
		WillReturnRows(profileRows(10, 1))
	expectUserPreload(mock, 1)

	profile, err := repo.GetByUserID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Developer", profile.Status)
	assert.Equal(t, pq.StringArray{"go", "rust"}, profile.Skills)
	assert.Equal(t, "Test Dev", profile.User.Name)
	assert.Empty(t, profile.User.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_GetByUserID_Absent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProfileRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE user_id = \$1`).
		WithArgs(42, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	profile, err := repo.GetByUserID(context.Background(), 42)
	assert.NoError(t, err)
	assert.Nil(t, profile)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_Upsert(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProfileRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "profiles" .* ON CONFLICT \("user_id"\) DO UPDATE SET`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectCommit()

	// Reload with the owning account joined in.
	mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE user_id = \$1`).
		WillReturnRows(profileRows(10, 1))
	expectUserPreload(mock, 1)

	profile, err := repo.Upsert(context.Background(), &models.Profile{
		UserID: 1,
		Status: "Developer",
		Skills: pq.StringArray{"go", "rust"},
	})
	require.NoError(t, err)
	assert.Equal(t, uint(10), profile.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_UpdateEntries_LocksRow(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProfileRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE user_id = \$1 .* FOR UPDATE`).
		WillReturnRows(profileRows(10, 1))
	mock.ExpectExec(`UPDATE "profiles" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE user_id = \$1`).
		WillReturnRows(profileRows(10, 1))
	expectUserPreload(mock, 1)

	mutated := false
	profile, err := repo.UpdateEntries(context.Background(), 1, func(p *models.Profile) error {
		mutated = true
		p.Status = "Senior Developer"
		return nil
	})
	require.NoError(t, err)
	assert.True(t, mutated)
	assert.NotNil(t, profile)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_UpdateEntries_NoProfile(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProfileRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE user_id = \$1 .* FOR UPDATE`).
		WillReturnError(gorm.ErrRecordNotFound)
	mock.ExpectRollback()

	_, err := repo.UpdateEntries(context.Background(), 42, func(p *models.Profile) error {
		t.Fatal("mutate must not run without a profile")
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, ErrNoProfile, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_UpdateEntries_MutateErrorRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProfileRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE user_id = \$1 .* FOR UPDATE`).
		WillReturnRows(profileRows(10, 1))
	mock.ExpectRollback()

	wantErr := models.NewNotFoundError("Experience entry not found")
	_, err := repo.UpdateEntries(context.Background(), 1, func(p *models.Profile) error {
		return wantErr
	})
	assert.Equal(t, wantErr, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
