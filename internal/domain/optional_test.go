package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalDistinguishesAbsentNullAndValue(t *testing.T) {
	var req struct {
		CustomerName Optional[string] `json:"customer_name"`
		Email        Optional[string] `json:"email"`
		Phone        Optional[string] `json:"phone"`
	}

	// customer_name absent, email explicitly null, phone set
	body := `{"email":null,"phone":"+1-555-0100"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.False(t, req.CustomerName.Present)

	assert.True(t, req.Email.Present)
	assert.Nil(t, req.Email.Value)

	assert.True(t, req.Phone.Present)
	require.NotNil(t, req.Phone.Value)
	assert.Equal(t, "+1-555-0100", *req.Phone.Value)
}

func TestOptionalRejectsWrongType(t *testing.T) {
	var req struct {
		AssignedTo Optional[int64] `json:"assigned_to"`
	}

	err := json.Unmarshal([]byte(`{"assigned_to":"not-a-number"}`), &req)
	assert.Error(t, err)
}
