package services

import (
	"testing"

	"gigup_backend/internal/models"
	"gigup_backend/internal/repositories"
	"gigup_backend/internal/services/dto"
	"gigup_backend/internal/testutil"
	"gigup_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApplicationService() ApplicationService {
	return NewApplicationService(repositories.NewApplicationRepository(), repositories.NewGigRepository())
}

func TestApplicationService_ApplyRules(t *testing.T) {
	db := testutil.NewTestDB(t)
	provider := testutil.CreateUser(t, db, "provider", testutil.Approved())
	seeker := testutil.CreateUser(t, db, "seeker", testutil.Approved())
	gig := createGig(t, db, provider.ID)
	closed := createGig(t, db, provider.ID, withStatus(models.GigStatusCancelled, nil))
	svc := newTestApplicationService()
	req := &dto.CreateApplicationRequest{Message: "I can help"}

	_, err := svc.Apply(testContext(), db, provider.ID, gig.ID, req)
	assert.True(t, apperrors.Is(err, apperrors.ErrOwnGig))

	_, err = svc.Apply(testContext(), db, seeker.ID, closed.ID, req)
	assert.True(t, apperrors.Is(err, apperrors.ErrGigNotOpen))

	_, err = svc.Apply(testContext(), db, seeker.ID, "missing", req)
	assert.True(t, apperrors.Is(err, apperrors.ErrGigNotFound))

	resp, err := svc.Apply(testContext(), db, seeker.ID, gig.ID, req)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ApplicationID)

	_, err = svc.Apply(testContext(), db, seeker.ID, gig.ID, req)
	assert.True(t, apperrors.Is(err, apperrors.ErrDuplicateApplication))
}

func TestApplicationService_AcceptRejectsSiblingsAndAssigns(t *testing.T) {
	db := testutil.NewTestDB(t)
	provider := testutil.CreateUser(t, db, "provider", testutil.Approved())
	first := testutil.CreateUser(t, db, "first", testutil.Approved())
	second := testutil.CreateUser(t, db, "second", testutil.Approved())
	gig := createGig(t, db, provider.ID)
	svc := newTestApplicationService()

	a1, err := svc.Apply(testContext(), db, first.ID, gig.ID, &dto.CreateApplicationRequest{})
	require.NoError(t, err)
	a2, err := svc.Apply(testContext(), db, second.ID, gig.ID, &dto.CreateApplicationRequest{})
	require.NoError(t, err)

	err = svc.Accept(testContext(), db, first.ID, a1.ApplicationID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotGigProvider))

	require.NoError(t, svc.Accept(testContext(), db, provider.ID, a1.ApplicationID))

	list, err := svc.ListForGig(testContext(), db, provider.ID, gig.ID)
	require.NoError(t, err)
	statuses := map[string]models.ApplicationStatus{}
	for _, a := range list.Applications {
		statuses[a.ID] = a.Status
	}
	assert.Equal(t, models.ApplicationStatusAccepted, statuses[a1.ApplicationID])
	assert.Equal(t, models.ApplicationStatusRejected, statuses[a2.ApplicationID])

	found, err := repositories.NewGigRepository().FindByID(db, gig.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GigStatusAssigned, found.Status)
	require.NotNil(t, found.SeekerID)
	assert.Equal(t, first.ID, *found.SeekerID)

	err = svc.Accept(testContext(), db, provider.ID, a2.ApplicationID)
	assert.True(t, apperrors.Is(err, apperrors.ErrApplicationNotPending))
}

func TestApplicationService_Reject(t *testing.T) {
	db := testutil.NewTestDB(t)
	provider := testutil.CreateUser(t, db, "provider", testutil.Approved())
	seeker := testutil.CreateUser(t, db, "seeker", testutil.Approved())
	gig := createGig(t, db, provider.ID)
	svc := newTestApplicationService()

	app, err := svc.Apply(testContext(), db, seeker.ID, gig.ID, &dto.CreateApplicationRequest{})
	require.NoError(t, err)

	require.NoError(t, svc.Reject(testContext(), db, provider.ID, app.ApplicationID))

	mine, err := svc.ListForSeeker(testContext(), db, seeker.ID)
	require.NoError(t, err)
	require.Len(t, mine.Applications, 1)
	assert.Equal(t, models.ApplicationStatusRejected, mine.Applications[0].Status)
	assert.Equal(t, gig.Title, mine.Applications[0].GigTitle)

	err = svc.Reject(testContext(), db, provider.ID, "missing")
	assert.True(t, apperrors.Is(err, apperrors.ErrApplicationNotFound))
}

func TestApplicationService_ListForGigRequiresProvider(t *testing.T) {
	db := testutil.NewTestDB(t)
	provider := testutil.CreateUser(t, db, "provider", testutil.Approved())
	other := testutil.CreateUser(t, db, "other", testutil.Approved())
	gig := createGig(t, db, provider.ID)

	_, err := newTestApplicationService().ListForGig(testContext(), db, other.ID, gig.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotGigProvider))
}
