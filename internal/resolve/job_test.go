package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobExplicitIDWinsVerbatim(t *testing.T) {
	choice := Job("job-123", nil, "made $50 bartending")
	assert.Equal(t, "job-123", choice.JobID)
	assert.False(t, choice.NeedsClarification)
}

func TestJobNoJobsAsksToCreate(t *testing.T) {
	choice := Job("", nil, "made $50 last night")
	require.True(t, choice.NeedsClarification)
	assert.Contains(t, choice.Prompt, "create one")
}

func TestJobSingleJobAutoSelected(t *testing.T) {
	jobs := []JobInfo{{ID: "a", Name: "Bartender"}}
	choice := Job("", jobs, "made $50 last night")
	assert.Equal(t, "a", choice.JobID)
	assert.False(t, choice.NeedsClarification)
}

func TestJobNameMatchInMessage(t *testing.T) {
	jobs := []JobInfo{
		{ID: "a", Name: "Bartender"},
		{ID: "b", Name: "Barber", IsDefault: true},
	}
	choice := Job("", jobs, "gave three haircuts today")
	assert.Equal(t, "b", choice.JobID)
}

func TestJobRoleKeywordMatch(t *testing.T) {
	jobs := []JobInfo{
		{ID: "a", Name: "Server", IsDefault: true},
		{ID: "b", Name: "Bartender"},
	}
	choice := Job("", jobs, "made $200 bartending last night")
	assert.Equal(t, "b", choice.JobID)
}

func TestJobDefaultFallback(t *testing.T) {
	jobs := []JobInfo{
		{ID: "a", Name: "Server"},
		{ID: "b", Name: "Barber", IsDefault: true},
	}
	choice := Job("", jobs, "made $75 today")
	assert.Equal(t, "b", choice.JobID)
}

func TestJobEnumeratesWhenNothingMatches(t *testing.T) {
	jobs := []JobInfo{
		{ID: "a", Name: "Server"},
		{ID: "b", Name: "Barber"},
	}
	choice := Job("", jobs, "made $75 today")
	require.True(t, choice.NeedsClarification)
	assert.Contains(t, choice.Prompt, "1. Server")
	assert.Contains(t, choice.Prompt, "2. Barber")
}
