package handler

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/leadtrackhq/mini-crm/backend/internal/domain"
)

func TestCreateFollowupRequiresLeadAndDate(t *testing.T) {
	store := new(MockStore)
	h := newTestHandler(t, store)
	auth := authorize(t, h, store, testUser(domain.RoleSalesUser))

	req := httptest.NewRequest("POST", "/api/followups", bytes.NewBufferString(`{"notes":"call later"}`))
	req.Header.Set("Authorization", auth)
	w := doRequest(h, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	store.AssertNotCalled(t, "CreateFollowup", mock.Anything)
}

func TestCreateFollowupAgainstMissingLead(t *testing.T) {
	store := new(MockStore)
	h := newTestHandler(t, store)
	auth := authorize(t, h, store, testUser(domain.RoleSalesUser))

	store.On("GetLeadByID", int64(9999)).Return(nil, sql.ErrNoRows)

	body := `{"lead_id":9999,"followup_date":"2026-09-15T10:00:00Z"}`
	req := httptest.NewRequest("POST", "/api/followups", bytes.NewBufferString(body))
	req.Header.Set("Authorization", auth)
	w := doRequest(h, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	store.AssertNotCalled(t, "CreateFollowup", mock.Anything)
}

func TestCreateFollowupStampsCreatorFromIdentity(t *testing.T) {
	store := new(MockStore)
	h := newTestHandler(t, store)

	user := testUser(domain.RoleSalesUser)
	auth := authorize(t, h, store, user)

	store.On("GetLeadByID", int64(5)).Return(&domain.Lead{ID: 5, CustomerName: "Acme Corp"}, nil)
	store.On("CreateFollowup", mock.Anything).Run(func(args mock.Arguments) {
		followup := args.Get(0).(*domain.Followup)
		followup.ID = 11
	}).Return(nil)

	// a client-supplied created_by must be ignored
	body := `{"lead_id":5,"followup_date":"2026-09-15T10:00:00Z","notes":"demo booked","created_by":999}`
	req := httptest.NewRequest("POST", "/api/followups", bytes.NewBufferString(body))
	req.Header.Set("Authorization", auth)
	w := doRequest(h, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var followup domain.Followup
	require.NoError(t, json.NewDecoder(w.Body).Decode(&followup))
	assert.Equal(t, int64(11), followup.ID)
	assert.Equal(t, int64(5), followup.LeadID)
	assert.Equal(t, user.ID, followup.CreatedBy)
}

func TestListFollowupsForLead(t *testing.T) {
	store := new(MockStore)
	h := newTestHandler(t, store)
	auth := authorize(t, h, store, testUser(domain.RoleSalesUser))

	later := time.Date(2026, 9, 20, 9, 0, 0, 0, time.UTC)
	earlier := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	store.On("GetFollowupsByLead", int64(5)).Return([]*domain.Followup{
		{ID: 2, LeadID: 5, FollowupDate: later, CreatedBy: 42},
		{ID: 1, LeadID: 5, FollowupDate: earlier, CreatedBy: 42},
	}, nil)

	req := httptest.NewRequest("GET", "/api/followups/5", nil)
	req.Header.Set("Authorization", auth)
	w := doRequest(h, req)

	require.Equal(t, http.StatusOK, w.Code)

	var followups []*domain.Followup
	require.NoError(t, json.NewDecoder(w.Body).Decode(&followups))
	require.Len(t, followups, 2)
	assert.True(t, followups[0].FollowupDate.After(followups[1].FollowupDate))
}

func TestListFollowupsEmpty(t *testing.T) {
	store := new(MockStore)
	h := newTestHandler(t, store)
	auth := authorize(t, h, store, testUser(domain.RoleSalesUser))

	store.On("GetFollowupsByLead", int64(5)).Return([]*domain.Followup{}, nil)

	req := httptest.NewRequest("GET", "/api/followups/5", nil)
	req.Header.Set("Authorization", auth)
	w := doRequest(h, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
