package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"auditionhub_backend/internal/events"
	"auditionhub_backend/internal/models"
	"auditionhub_backend/internal/services/dto"
	"auditionhub_backend/internal/testutil/apitest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type auditionPage struct {
	Data  []models.Audition `json:"data"`
	Total int64             `json:"total"`
}

func createAudition(t *testing.T, ts *apitest.TestServer, token string, req dto.CreateAuditionRequest) models.Audition {
	t.Helper()
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auditions", token, req)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var a models.Audition
	apitest.Decode(t, body, &a)
	return a
}

func TestAuditionAPI_CreateListAndStatus(t *testing.T) {
	// 1. Arrange
	ts := apitest.NewTestServer(t)
	user := ts.Register(t, "")
	when := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Second)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/actors", user.AccessToken, dto.CreateActorRequest{
		Name: "Ava",
		Age:  9,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	var actor models.Actor
	apitest.Decode(t, body, &actor)

	// 2. Act
	created := createAudition(t, ts, user.AccessToken, dto.CreateAuditionRequest{
		ActorID:      &actor.ID,
		ProjectTitle: "Summer Lights",
		RoleName:     "Young Maya",
		Type:         models.AuditionTypeFilm,
		AuditionDate: &when,
		Location:     "Studio City",
	})
	res, body = ts.SendRequest(t, http.MethodPatch, "/api/v1/auditions/"+created.ID+"/status", user.AccessToken,
		dto.UpdateAuditionStatusRequest{Status: models.AuditionStatusCallback})

	// 3. Assert
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Equal(t, models.AuditionStatusPending, created.Status)
	assert.Equal(t, models.AuditionSourceManual, created.Source)

	var updated models.Audition
	apitest.Decode(t, body, &updated)
	assert.Equal(t, models.AuditionStatusCallback, updated.Status)

	published := ts.Publisher.Events()
	require.Len(t, published, 1)
	assert.Equal(t, events.TypeAuditionStatusChanged, published[0].Type)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/auditions?status=CALLBACK", user.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var page auditionPage
	apitest.Decode(t, body, &page)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Data, 1)
	assert.Equal(t, created.ID, page.Data[0].ID)
}

func TestAuditionAPI_PageFarOutOfRange(t *testing.T) {
	ts := apitest.NewTestServer(t)
	user := ts.Register(t, "")
	createAudition(t, ts, user.AccessToken, dto.CreateAuditionRequest{
		ProjectTitle: "Summer Lights",
		RoleName:     "Young Maya",
		Type:         models.AuditionTypeFilm,
	})

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/auditions?page=4611686018427387904", user.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var page auditionPage
	apitest.Decode(t, body, &page)
	assert.Equal(t, int64(1), page.Total)
	assert.Empty(t, page.Data)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/email/logs?page=4611686018427387904", user.AccessToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
}

func TestAuditionAPI_OtherUsersCannotSeeAudition(t *testing.T) {
	ts := apitest.NewTestServer(t)
	owner := ts.Register(t, "")
	stranger := ts.Register(t, "")

	a := createAudition(t, ts, owner.AccessToken, dto.CreateAuditionRequest{
		ProjectTitle: "Private Show",
		RoleName:     "Lead",
		Type:         models.AuditionTypeTV,
	})

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/auditions/"+a.ID, stranger.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/auditions/"+a.ID, stranger.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/auditions/"+a.ID, owner.AccessToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestAuditionAPI_FreeMonthlyLimit(t *testing.T) {
	ts := apitest.NewTestServer(t)
	user := ts.Register(t, "")

	for i := 0; i < 10; i++ {
		createAudition(t, ts, user.AccessToken, dto.CreateAuditionRequest{
			ProjectTitle: fmt.Sprintf("Project %d", i),
			RoleName:     "Kid",
			Type:         models.AuditionTypeCommercial,
		})
	}

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auditions", user.AccessToken, dto.CreateAuditionRequest{
		ProjectTitle: "One Too Many",
		RoleName:     "Kid",
		Type:         models.AuditionTypeCommercial,
	})

	require.Equal(t, http.StatusForbidden, res.StatusCode, body)
	var errResp errorBody
	apitest.Decode(t, body, &errResp)
	assert.Equal(t, "PLAN_LIMIT_EXCEEDED", errResp.Error.Code)
}

func TestAuditionAPI_Calendar(t *testing.T) {
	ts := apitest.NewTestServer(t)
	user := ts.Register(t, "")

	audition := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	callback := time.Date(2026, 3, 20, 17, 0, 0, 0, time.UTC)
	createAudition(t, ts, user.AccessToken, dto.CreateAuditionRequest{
		ProjectTitle: "Spring Musical",
		RoleName:     "Chorus",
		Type:         models.AuditionTypeTheatre,
		AuditionDate: &audition,
		CallbackDate: &callback,
	})
	outside := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	createAudition(t, ts, user.AccessToken, dto.CreateAuditionRequest{
		ProjectTitle: "Later",
		RoleName:     "Lead",
		Type:         models.AuditionTypeTV,
		AuditionDate: &outside,
	})

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/auditions/calendar?from=2026-03-01&to=2026-03-31", user.AccessToken, nil)

	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var entries []dto.CalendarEvent
	apitest.Decode(t, body, &entries)
	require.Len(t, entries, 2)
	kinds := []string{entries[0].Kind, entries[1].Kind}
	assert.ElementsMatch(t, []string{dto.CalendarEventAudition, dto.CalendarEventCallback}, kinds)
}

func TestAuditionAPI_InvalidType(t *testing.T) {
	ts := apitest.NewTestServer(t)
	user := ts.Register(t, "")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auditions", user.AccessToken, map[string]string{
		"project_title": "X",
		"role_name":     "Y",
		"type":          "RADIO",
	})

	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}

func TestActorAPI_FreePlanAllowsOneActiveActor(t *testing.T) {
	ts := apitest.NewTestServer(t)
	user := ts.Register(t, "")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/actors", user.AccessToken, dto.CreateActorRequest{Name: "First"})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/actors", user.AccessToken, dto.CreateActorRequest{Name: "Second"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)

	inactive := false
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/actors", user.AccessToken, dto.CreateActorRequest{
		Name:     "Retired",
		IsActive: &inactive,
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/actors?active=true", user.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var actors []models.Actor
	apitest.Decode(t, body, &actors)
	require.Len(t, actors, 1)
	assert.Equal(t, "First", actors[0].Name)
}

func TestExpenseAPI_CreateAndSummary(t *testing.T) {
	ts := apitest.NewTestServer(t)
	user := ts.Register(t, "")
	today := time.Now().UTC().Format("2006-01-02")

	for _, e := range []dto.CreateExpenseRequest{
		{Amount: 45.5, Category: models.ExpenseCategoryTravel, Date: today, Reimbursable: true},
		{Amount: 120, Category: models.ExpenseCategoryHeadshots, Date: today},
	} {
		res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/expenses", user.AccessToken, e)
		require.Equal(t, http.StatusCreated, res.StatusCode, body)
	}

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/expenses/summary", user.AccessToken, nil)

	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var summary dto.ExpenseSummary
	apitest.Decode(t, body, &summary)
	assert.InDelta(t, 165.5, summary.Total, 0.001)
}
