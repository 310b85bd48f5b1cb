package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_JSONKeys(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	raw, err := json.Marshal(Project{ID: "p1", Name: "Gearbox", CreatedAt: created})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "p1", fields["_id"])
	assert.Equal(t, "2025-03-01T10:00:00Z", fields["createdAt"])
	assert.Contains(t, fields, "updatedAt")
}
