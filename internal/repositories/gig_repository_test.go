package repositories_test

import (
	"testing"
	"time"

	"gigup_backend/internal/models"
	"gigup_backend/internal/repositories"
	"gigup_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createGig(t *testing.T, db *gorm.DB, providerID, category string) *models.Gig {
	t.Helper()
	gig := &models.Gig{
		ProviderID:     providerID,
		Title:          "Fix sink",
		Category:       category,
		SkillsRequired: "plumbing",
		DateTime:       time.Now().Add(24 * time.Hour).UTC(),
		Pay:            50,
		LocationLat:    40.7128,
		LocationLng:    -74.0060,
	}
	require.NoError(t, repositories.NewGigRepository().Create(db, gig))
	return gig
}

func TestGigRepository_CreateDefaultsToOpen(t *testing.T) {
	db := testutil.NewTestDB(t)
	provider := testutil.CreateUser(t, db, "provider", testutil.Approved())
	gig := createGig(t, db, provider.ID, "home")

	found, err := repositories.NewGigRepository().FindByIDWithProvider(db, gig.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GigStatusOpen, found.Status)
	assert.Nil(t, found.SeekerID)
	require.NotNil(t, found.Provider)
	assert.Equal(t, provider.ID, found.Provider.ID)
}

func TestGigRepository_FindOpenFiltersStatusAndCategory(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewGigRepository()
	provider := testutil.CreateUser(t, db, "provider", testutil.Approved())
	seeker := testutil.CreateUser(t, db, "seeker", testutil.Approved())

	open := createGig(t, db, provider.ID, "home")
	other := createGig(t, db, provider.ID, "garden")
	taken := createGig(t, db, provider.ID, "home")
	require.NoError(t, repo.Assign(db, taken.ID, seeker.ID))

	all, err := repo.FindOpen(db, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	home, err := repo.FindOpen(db, "home")
	require.NoError(t, err)
	require.Len(t, home, 1)
	assert.Equal(t, open.ID, home[0].ID)
	assert.NotEqual(t, other.ID, home[0].ID)
}

func TestGigRepository_Transitions(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewGigRepository()
	provider := testutil.CreateUser(t, db, "provider", testutil.Approved())
	seeker := testutil.CreateUser(t, db, "seeker", testutil.Approved())
	gig := createGig(t, db, provider.ID, "home")

	assert.ErrorIs(t, repo.Complete(db, gig.ID), repositories.ErrGigStatusConflict)

	require.NoError(t, repo.Assign(db, gig.ID, seeker.ID))
	assert.ErrorIs(t, repo.Assign(db, gig.ID, seeker.ID), repositories.ErrGigStatusConflict)

	require.NoError(t, repo.StartWork(db, gig.ID, seeker.ID))
	require.NoError(t, repo.Complete(db, gig.ID))
	assert.ErrorIs(t, repo.Cancel(db, gig.ID), repositories.ErrGigStatusConflict)

	found, err := repo.FindByID(db, gig.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GigStatusCompleted, found.Status)
	require.NotNil(t, found.SeekerID)
	assert.Equal(t, seeker.ID, *found.SeekerID)

	assert.ErrorIs(t, repo.Assign(db, "00000000-0000-0000-0000-000000000000", seeker.ID), repositories.ErrGigNotFound)
}

func TestGigRepository_CancelClearsSeeker(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewGigRepository()
	provider := testutil.CreateUser(t, db, "provider", testutil.Approved())
	seeker := testutil.CreateUser(t, db, "seeker", testutil.Approved())
	gig := createGig(t, db, provider.ID, "home")

	require.NoError(t, repo.Assign(db, gig.ID, seeker.ID))
	require.NoError(t, repo.Cancel(db, gig.ID))

	found, err := repo.FindByID(db, gig.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GigStatusCancelled, found.Status)
	assert.Nil(t, found.SeekerID)
}

func TestGigRepository_StartWorkKeepsAssignedSeeker(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewGigRepository()
	provider := testutil.CreateUser(t, db, "provider", testutil.Approved())
	assigned := testutil.CreateUser(t, db, "assigned", testutil.Approved())
	other := testutil.CreateUser(t, db, "other", testutil.Approved())
	gig := createGig(t, db, provider.ID, "home")

	require.NoError(t, repo.Assign(db, gig.ID, assigned.ID))
	assert.ErrorIs(t, repo.StartWork(db, gig.ID, other.ID), repositories.ErrGigStatusConflict)
	require.NoError(t, repo.StartWork(db, gig.ID, assigned.ID))

	open := createGig(t, db, provider.ID, "home")
	require.NoError(t, repo.StartWork(db, open.ID, other.ID))

	found, err := repo.FindByID(db, open.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GigStatusInProgress, found.Status)
	require.NotNil(t, found.SeekerID)
	assert.Equal(t, other.ID, *found.SeekerID)
}
