package repositories_test

import (
	"testing"

	"gigup_backend/internal/models"
	"gigup_backend/internal/repositories"
	"gigup_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationRepository_UniquePerGigAndSeeker(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewApplicationRepository()
	provider := testutil.CreateUser(t, db, "provider", testutil.Approved())
	seeker := testutil.CreateUser(t, db, "seeker", testutil.Approved())
	gig := createGig(t, db, provider.ID, "home")

	require.NoError(t, repo.Create(db, &models.Application{GigID: gig.ID, SeekerID: seeker.ID}))
	err := repo.Create(db, &models.Application{GigID: gig.ID, SeekerID: seeker.ID})
	assert.ErrorIs(t, err, repositories.ErrApplicationExists)
}

func TestApplicationRepository_AcceptAndRejectSiblings(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewApplicationRepository()
	provider := testutil.CreateUser(t, db, "provider", testutil.Approved())
	s1 := testutil.CreateUser(t, db, "seeker1", testutil.Approved())
	s2 := testutil.CreateUser(t, db, "seeker2", testutil.Approved())
	s3 := testutil.CreateUser(t, db, "seeker3", testutil.Approved())
	gig := createGig(t, db, provider.ID, "home")

	a1 := &models.Application{GigID: gig.ID, SeekerID: s1.ID}
	a2 := &models.Application{GigID: gig.ID, SeekerID: s2.ID}
	a3 := &models.Application{GigID: gig.ID, SeekerID: s3.ID}
	for _, a := range []*models.Application{a1, a2, a3} {
		require.NoError(t, repo.Create(db, a))
	}

	require.NoError(t, repo.Accept(db, a2.ID))
	assert.ErrorIs(t, repo.Accept(db, a2.ID), repositories.ErrApplicationNotPending)

	rejected, err := repo.RejectSiblings(db, gig.ID, a2.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rejected)

	apps, err := repo.FindByGig(db, gig.ID)
	require.NoError(t, err)
	require.Len(t, apps, 3)
	statuses := map[string]models.ApplicationStatus{}
	for _, a := range apps {
		statuses[a.ID] = a.Status
		require.NotNil(t, a.Seeker)
	}
	assert.Equal(t, models.ApplicationStatusAccepted, statuses[a2.ID])
	assert.Equal(t, models.ApplicationStatusRejected, statuses[a1.ID])
	assert.Equal(t, models.ApplicationStatusRejected, statuses[a3.ID])
}

func TestApplicationRepository_FindBySeekerPreloadsGig(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewApplicationRepository()
	provider := testutil.CreateUser(t, db, "provider", testutil.Approved())
	seeker := testutil.CreateUser(t, db, "seeker", testutil.Approved())
	gig := createGig(t, db, provider.ID, "home")
	require.NoError(t, repo.Create(db, &models.Application{GigID: gig.ID, SeekerID: seeker.ID, Message: "hi"}))

	apps, err := repo.FindBySeeker(db, seeker.ID)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	require.NotNil(t, apps[0].Gig)
	assert.Equal(t, gig.Title, apps[0].Gig.Title)
	assert.Equal(t, models.ApplicationStatusPending, apps[0].Status)
}
