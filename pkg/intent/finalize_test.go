package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentcity-be/pkg/store"
)

func TestFinalizeWellFormedPlan(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"activity_list":["hiking","local food tour"],"constraints":{"budget":150,"location":"Ubud"},"agents_to_call":["events_agent","f&b_agent"],"notes":"outdoors first"}`,
	}}
	finalizer := NewFinalizer(provider, discardLogger())

	budget := 150.0
	plan, err := finalizer.Finalize(context.Background(), FinalizeInput{
		OriginalRequest:     "plan my weekend in Ubud",
		SelectedPreferences: []string{"HIKING", "CULINARY"},
		Location:            "Ubud",
		Budget:              &budget,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"hiking", "local food tour"}, plan.ActivityList)
	assert.Equal(t, "Ubud", plan.Constraints.Location)
	assert.Equal(t, []string{"events_agent", "f&b_agent"}, plan.AgentsToCall)
	assert.Equal(t, 1, provider.calls)
}

func TestFinalizeEmptyActivityListGetsDefault(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"activity_list":[],"constraints":{},"agents_to_call":[],"notes":""}`,
	}}
	finalizer := NewFinalizer(provider, discardLogger())

	plan, err := finalizer.Finalize(context.Background(), FinalizeInput{OriginalRequest: "surprise me"})
	require.NoError(t, err)

	assert.Equal(t, []string{"eat", "sightsee"}, plan.ActivityList)
	assert.Equal(t, "unspecified", plan.Constraints.Location)
}

func TestFinalizeFencedResponseRecovered(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		"```json\n{\"activity_list\":[\"museum\"],\"constraints\":{\"location\":\"Jakarta\"},\"agents_to_call\":[],\"notes\":\"\"}\n```",
	}}
	finalizer := NewFinalizer(provider, discardLogger())

	plan, err := finalizer.Finalize(context.Background(), FinalizeInput{OriginalRequest: "something indoors"})
	require.NoError(t, err)
	assert.Equal(t, []string{"museum"}, plan.ActivityList)
	assert.Equal(t, "Jakarta", plan.Constraints.Location)
	assert.Equal(t, 1, provider.calls)
}

func TestFinalizeBrokenJSONScrapedOnFirstAttempt(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"activity_list": ["beach", "snorkeling"], "constraints": {"location": "Lombok",`,
	}}
	finalizer := NewFinalizer(provider, discardLogger())

	plan, err := finalizer.Finalize(context.Background(), FinalizeInput{OriginalRequest: "beach trip"})
	require.NoError(t, err)
	assert.Equal(t, []string{"beach", "snorkeling"}, plan.ActivityList)
	assert.Equal(t, 1, provider.calls, "scrape should succeed without a retry")
}

func TestFinalizeRetriesOnceThenSucceeds(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		"I'm sorry, I cannot produce a plan right now.",
		`{"activity_list":["cafe hopping"],"constraints":{},"agents_to_call":[],"notes":""}`,
	}}
	finalizer := NewFinalizer(provider, discardLogger())

	plan, err := finalizer.Finalize(context.Background(), FinalizeInput{OriginalRequest: "coffee day"})
	require.NoError(t, err)
	assert.Equal(t, []string{"cafe hopping"}, plan.ActivityList)
	assert.Equal(t, 2, provider.calls)
}

func TestFinalizeFailsAfterTwoUnusableResponses(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		"no json here at all",
		"still nothing structured",
	}}
	finalizer := NewFinalizer(provider, discardLogger())

	plan, err := finalizer.Finalize(context.Background(), FinalizeInput{OriginalRequest: "plan something"})
	require.Error(t, err)
	assert.Nil(t, plan)
	assert.Equal(t, 2, provider.calls)
}

func TestFinalizeGatewayErrorThenRecovery(t *testing.T) {
	provider := &scriptedProvider{
		responses: []string{"", `{"activity_list":["spa"],"constraints":{},"agents_to_call":[],"notes":""}`},
		errs:      []error{errors.New("connection reset")},
	}
	finalizer := NewFinalizer(provider, discardLogger())

	plan, err := finalizer.Finalize(context.Background(), FinalizeInput{OriginalRequest: "relaxing day"})
	require.NoError(t, err)
	assert.Equal(t, []string{"spa"}, plan.ActivityList)
	assert.Equal(t, 2, provider.calls)
}

func TestFinalizeMergesStoredConstraints(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"activity_list":["temple visit"],"constraints":{},"agents_to_call":[],"notes":""}`,
	}}
	finalizer := NewFinalizer(provider, discardLogger())

	budget := 75.5
	start, end := "09:00", "17:00"
	plan, err := finalizer.Finalize(context.Background(), FinalizeInput{
		OriginalRequest:     "cultural day",
		SelectedPreferences: []string{"CULTURE"},
		Location:            "Yogyakarta",
		Budget:              &budget,
		StartTime:           &start,
		EndTime:             &end,
	})
	require.NoError(t, err)

	assert.Equal(t, "Yogyakarta", plan.Constraints.Location)
	require.NotNil(t, plan.Constraints.Budget)
	assert.Equal(t, 75.5, *plan.Constraints.Budget)
	require.NotNil(t, plan.Constraints.StartTime)
	assert.Equal(t, "09:00", *plan.Constraints.StartTime)
	assert.Equal(t, []string{"CULTURE"}, plan.Constraints.Preferences)
}

func TestFinalizeIncludesPreferenceProfileContext(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"activity_list":["dining"],"constraints":{},"agents_to_call":[],"notes":""}`,
	}}
	finalizer := NewFinalizer(provider, discardLogger())

	_, err := finalizer.Finalize(context.Background(), FinalizeInput{
		OriginalRequest: "dinner plans",
		TransactionData: &store.PreferenceProfile{
			HasSufficientData:   true,
			InferredPreferences: []string{"fine dining"},
			ActivityCategories:  []string{"culinary"},
		},
	})
	require.NoError(t, err)
}

func TestDispatchDirect(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"activity_list":["go-karting"],"constraints":{"location":"Surabaya"},"agents_to_call":["events_agent"],"notes":"booked for two"}`,
	}}
	finalizer := NewFinalizer(provider, discardLogger())

	plan, err := finalizer.DispatchDirect(context.Background(), "go-karting in Surabaya with a friend tomorrow", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"go-karting"}, plan.ActivityList)
	assert.Equal(t, "Surabaya", plan.Constraints.Location)
}

func TestDispatchDirectKeepsExtractedLocation(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"activity_list":["museum hop"],"constraints":{"location":""},"agents_to_call":[],"notes":""}`,
	}}
	finalizer := NewFinalizer(provider, discardLogger())

	plan, err := finalizer.DispatchDirect(context.Background(), "a museum day in Boston", "Boston")
	require.NoError(t, err)
	assert.Equal(t, "Boston", plan.Constraints.Location)
}
