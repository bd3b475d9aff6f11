package services

import (
	"testing"

	"auditionhub_backend/internal/models"
	"auditionhub_backend/internal/repositories"
	"auditionhub_backend/internal/services/dto"
	"auditionhub_backend/internal/testutil"
	"auditionhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactService_CRUDAndSearch(t *testing.T) {
	// 1. Arrange
	db := testutil.NewTestDB(t)
	svc := NewContactService(repositories.NewContactRepository())
	user := testutil.CreateUser(t, db, "")

	agent, err := svc.CreateContact(db, user.ID, &dto.CreateContactRequest{
		Name: "Alex Agent", Type: models.ContactTypeAgent, Company: "Stars Talent",
	})
	require.NoError(t, err)
	_, err = svc.CreateContact(db, user.ID, &dto.CreateContactRequest{
		Name: "Casey Director", Type: models.ContactTypeCastingDirector, Email: "casey@castings.test",
	})
	require.NoError(t, err)

	// 2. Act
	agents, err := svc.ListContacts(db, user.ID, &dto.ContactListQuery{Type: "agent"})
	require.NoError(t, err)
	byCompany, err := svc.ListContacts(db, user.ID, &dto.ContactListQuery{Type: "ALL", Search: "stars"})
	require.NoError(t, err)
	byEmail, err := svc.ListContacts(db, user.ID, &dto.ContactListQuery{Search: "CASTINGS.test"})
	require.NoError(t, err)

	// 3. Assert
	require.Len(t, agents, 1)
	assert.Equal(t, agent.ID, agents[0].ID)
	require.Len(t, byCompany, 1)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "Casey Director", byEmail[0].Name)

	updated, err := svc.UpdateContact(db, user.ID, agent.ID, &dto.UpdateContactRequest{Phone: ptr("555-0100")})
	require.NoError(t, err)
	assert.Equal(t, "555-0100", updated.Phone)
	assert.Equal(t, "Stars Talent", updated.Company)

	require.NoError(t, svc.DeleteContact(db, user.ID, agent.ID))
	_, err = svc.GetContact(db, user.ID, agent.ID)
	assert.ErrorIs(t, err, apperrors.ErrContactNotFound)
}

func TestContactService_UnknownTypeFilter(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewContactService(repositories.NewContactRepository())
	user := testutil.CreateUser(t, db, "")

	_, err := svc.ListContacts(db, user.ID, &dto.ContactListQuery{Type: "PHOTOGRAPHER"})

	assert.Error(t, err)
}
