package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"testing"

	"agentcity-be/internal/constant"
	"agentcity-be/internal/entity"
	"agentcity-be/internal/repository/memory"
	"agentcity-be/pkg/llm"
	"agentcity-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedProvider replays canned gateway responses in call order.
type scriptedProvider struct {
	responses []string
	errs      []error
	calls     int
}

func (s *scriptedProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return "", fmt.Errorf("scripted provider exhausted after %d calls", i)
}

func (s *scriptedProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}})
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{}) {}
func (nopLogger) Warn(module, message string, details map[string]interface{}) {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error { return nil }

type dispatcherFixture struct {
	service      IDispatcherService
	factory      *memory.Factory
	conversation *memory.ConversationStateRepository
	provider     *scriptedProvider
}

func newDispatcherFixture(provider *scriptedProvider) *dispatcherFixture {
	factory := memory.NewFactory()
	conversation := memory.NewConversationStateRepository().(*memory.ConversationStateRepository)
	svc := NewDispatcherService(
		factory,
		conversation,
		provider,
		log.New(io.Discard, "", 0),
		3,
		nil,
		nil,
		nopLogger{},
	)
	return &dispatcherFixture{
		service:      svc,
		factory:      factory,
		conversation: conversation,
		provider:     provider,
	}
}

const specificPlanJSON = `{
  "activity_list": ["visit fushimi inari", "eat ramen in pontocho"],
  "constraints": {"location": "Kyoto", "budget": null, "start_time": null, "end_time": null, "preferences": []},
  "agents_to_call": ["food_agent", "sightseeing_agent"],
  "notes": "Evening-heavy itinerary."
}`

func TestHandleTurnSpecificRequestDispatchesDirectly(t *testing.T) {
	f := newDispatcherFixture(&scriptedProvider{responses: []string{
		`{"budget": 200, "start_time": "2026-09-01T09:00:00Z", "end_time": null}`,
		`{"is_vague": false, "location": "Kyoto", "reason": "named place and activity"}`,
		specificPlanJSON,
	}})
	userId := uuid.New()

	resp, err := f.service.HandleTurn(context.Background(), userId, "Plan me a ramen and shrine day in Kyoto tomorrow")

	require.NoError(t, err)
	require.Equal(t, constant.ResponseTypeDispatchPlan, resp.Type)
	require.NotNil(t, resp.Plan)
	assert.Equal(t, []string{"visit fushimi inari", "eat ramen in pontocho"}, resp.Plan.ActivityList)
	assert.Equal(t, "Kyoto", resp.Plan.Constraints.Location)
	assert.Equal(t, 3, f.provider.calls)

	// Extracted basics fill constraint gaps the plan left open.
	require.NotNil(t, resp.Plan.Constraints.Budget)
	assert.Equal(t, 200.0, *resp.Plan.Constraints.Budget)
	require.NotNil(t, resp.Plan.Constraints.StartTime)
	assert.Equal(t, "2026-09-01T09:00:00Z", *resp.Plan.Constraints.StartTime)
}

func TestHandleTurnDirectDispatchKeepsExtractedLocation(t *testing.T) {
	f := newDispatcherFixture(&scriptedProvider{responses: []string{
		`{"budget": null, "start_time": null, "end_time": null}`,
		`{"is_vague": false, "location": "Boston", "reason": "named city and activity"}`,
		`{
			"activity_list": ["freedom trail walk", "museum of fine arts"],
			"constraints": {"location": "", "budget": null, "start_time": null, "end_time": null, "preferences": []},
			"agents_to_call": ["sightseeing_agent"],
			"notes": ""
		}`,
	}})
	userId := uuid.New()

	resp, err := f.service.HandleTurn(context.Background(), userId, "A history day in Boston")

	require.NoError(t, err)
	require.Equal(t, constant.ResponseTypeDispatchPlan, resp.Type)
	// The plan omitted its location; the one found during the vagueness
	// check fills it instead of the placeholder.
	assert.Equal(t, "Boston", resp.Plan.Constraints.Location)
}

func TestHandleTurnPersistsPlanAndTurns(t *testing.T) {
	f := newDispatcherFixture(&scriptedProvider{responses: []string{
		`{"budget": null, "start_time": null, "end_time": null}`,
		`{"is_vague": false, "location": "Kyoto", "reason": "specific"}`,
		specificPlanJSON,
	}})
	userId := uuid.New()
	ctx := context.Background()

	_, err := f.service.HandleTurn(ctx, userId, "Ramen crawl in Kyoto")
	require.NoError(t, err)

	plans, err := f.factory.UoW.Plans.FindByUser(ctx, userId)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Kyoto", plans[0].Location)
	assert.NotEmpty(t, plans[0].ActivityList)

	turns, err := f.factory.UoW.Turns.FindByUser(ctx, userId)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, entity.TurnRoleUser, turns[0].Role)
	assert.Equal(t, entity.TurnRoleAssistant, turns[1].Role)
	assert.Equal(t, constant.ResponseTypeDispatchPlan, turns[1].ResponseType)
}

func TestHandleTurnVagueRequestWithoutHistoryAsksClarification(t *testing.T) {
	f := newDispatcherFixture(&scriptedProvider{responses: []string{
		`{"budget": null, "start_time": null, "end_time": null}`,
		`{"is_vague": true, "location": "Bali", "reason": "no concrete activities"}`,
		`{"general_categories": [
			{"category": "eat", "description": "Warungs and seafood grills", "examples": ["Jimbaran seafood"]},
			{"category": "surf", "description": "Beginner to advanced breaks", "examples": ["Canggu"]}
		]}`,
	}})
	userId := uuid.New()

	resp, err := f.service.HandleTurn(context.Background(), userId, "I want to do something fun in Bali")

	require.NoError(t, err)
	require.Equal(t, constant.ResponseTypeClarificationNeeded, resp.Type)
	require.NotNil(t, resp.Clarification)
	assert.NotEmpty(t, resp.Clarification.Prompt)
	require.Len(t, resp.Clarification.Categories, 2)
	assert.Equal(t, "eat", resp.Clarification.Categories[0].Category)

	state, found := f.conversation.Get(userId.String())
	require.True(t, found)
	assert.True(t, state.WaitingForClarification)
	assert.Equal(t, "Bali", state.Location)
	assert.Len(t, state.Categories, 2)
}

func TestHandleTurnResearchFailureFallsBackToDefaultMenu(t *testing.T) {
	f := newDispatcherFixture(&scriptedProvider{
		responses: []string{
			`{"budget": null, "start_time": null, "end_time": null}`,
			`{"is_vague": true, "location": "", "reason": "vague"}`,
			"",
		},
		errs: []error{nil, nil, fmt.Errorf("gateway timeout")},
	})
	userId := uuid.New()

	resp, err := f.service.HandleTurn(context.Background(), userId, "surprise me")

	require.NoError(t, err)
	require.Equal(t, constant.ResponseTypeClarificationNeeded, resp.Type)
	require.Len(t, resp.Clarification.Categories, len(constant.DefaultCategories))
	assert.Equal(t, constant.DefaultCategories[0].Category, resp.Clarification.Categories[0].Category)
}

func TestHandleTurnSufficientHistorySkipsClarification(t *testing.T) {
	f := newDispatcherFixture(&scriptedProvider{responses: []string{
		`{"budget": null, "start_time": null, "end_time": null}`,
		`{"is_vague": true, "location": "Bandung", "reason": "vague"}`,
		`{"has_sufficient_data": true, "inferred_preferences": ["street food", "coffee"], "activity_categories": ["eat"], "confidence": "high", "notes": ""}`,
		`{
			"activity_list": ["street food tour", "specialty coffee crawl"],
			"constraints": {"location": "Bandung", "budget": null, "start_time": null, "end_time": null, "preferences": ["eat"]},
			"agents_to_call": ["food_agent"],
			"notes": ""
		}`,
	}})
	userId := uuid.New()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, f.factory.UoW.Transactions.Create(ctx, &entity.Transaction{
			UserId:   userId,
			Activity: fmt.Sprintf("dinner %d", i),
			Category: "Food",
			Amount:   120000,
			Location: "Bandung",
		}))
	}

	resp, err := f.service.HandleTurn(ctx, userId, "anything good to do in Bandung?")

	require.NoError(t, err)
	require.Equal(t, constant.ResponseTypeDispatchPlan, resp.Type)
	assert.Equal(t, []string{"street food tour", "specialty coffee crawl"}, resp.Plan.ActivityList)
	assert.Equal(t, 4, f.provider.calls)

	_, found := f.conversation.Get(userId.String())
	assert.False(t, found, "no pending state after same-turn finalization")
}

func TestHandleTurnInsufficientHistoryStillAsks(t *testing.T) {
	f := newDispatcherFixture(&scriptedProvider{responses: []string{
		`{"budget": null, "start_time": null, "end_time": null}`,
		`{"is_vague": true, "location": "Bandung", "reason": "vague"}`,
		`{"general_categories": [{"category": "eat", "description": "Food scene", "examples": []}]}`,
	}})
	userId := uuid.New()
	ctx := context.Background()

	// Two food records sit below the three-record threshold, so the
	// analyzer never reaches the gateway.
	for i := 0; i < 2; i++ {
		require.NoError(t, f.factory.UoW.Transactions.Create(ctx, &entity.Transaction{
			UserId: userId, Activity: "lunch", Category: "food", Amount: 50000, Location: "Bandung",
		}))
	}

	resp, err := f.service.HandleTurn(ctx, userId, "anything fun around?")

	require.NoError(t, err)
	assert.Equal(t, constant.ResponseTypeClarificationNeeded, resp.Type)
	assert.Equal(t, 3, f.provider.calls)
}

func pendingState(userId uuid.UUID) *store.ConversationState {
	budget := 150.0
	start := "2026-09-05T10:00:00Z"
	return &store.ConversationState{
		SenderID:                userId.String(),
		WaitingForClarification: true,
		OriginalRequest:         "something fun in Bali",
		Location:                "Bali",
		Budget:                  &budget,
		StartTime:               &start,
		Categories: []store.Category{
			{Category: "eat", Description: "Warungs", Examples: []string{"Jimbaran"}},
			{Category: "surf", Description: "Breaks", Examples: []string{"Canggu"}},
			{Category: "temples", Description: "Heritage", Examples: []string{"Uluwatu"}},
		},
	}
}

func TestHandleTurnClarificationReplyFinalizesPlan(t *testing.T) {
	f := newDispatcherFixture(&scriptedProvider{responses: []string{
		`{
			"activity_list": ["surf lesson at canggu", "sunset at uluwatu"],
			"constraints": {"location": "Bali", "budget": null, "start_time": null, "end_time": null, "preferences": null},
			"agents_to_call": ["activity_agent"],
			"notes": ""
		}`,
	}})
	userId := uuid.New()
	f.conversation.Save(pendingState(userId))

	resp, err := f.service.HandleTurn(context.Background(), userId, "2, 3")

	require.NoError(t, err)
	require.Equal(t, constant.ResponseTypeDispatchPlan, resp.Type)
	assert.Equal(t, 1, f.provider.calls, "clarification reply skips vagueness and extraction")

	// Stored constraints survive into the finalized plan.
	require.NotNil(t, resp.Plan.Constraints.Budget)
	assert.Equal(t, 150.0, *resp.Plan.Constraints.Budget)
	assert.Equal(t, []string{"surf", "temples"}, resp.Plan.Constraints.Preferences)

	_, found := f.conversation.Get(userId.String())
	assert.False(t, found, "state cleared after plan emission")
}

func TestHandleTurnGarbledReplySelectsEverything(t *testing.T) {
	f := newDispatcherFixture(&scriptedProvider{responses: []string{
		`{
			"activity_list": ["mixed day"],
			"constraints": {"location": "Bali", "budget": null, "start_time": null, "end_time": null, "preferences": null},
			"agents_to_call": [],
			"notes": ""
		}`,
	}})
	userId := uuid.New()
	f.conversation.Save(pendingState(userId))

	resp, err := f.service.HandleTurn(context.Background(), userId, "idk whatever sounds nice")

	require.NoError(t, err)
	require.Equal(t, constant.ResponseTypeDispatchPlan, resp.Type)
	assert.Equal(t, []string{"eat", "surf", "temples"}, resp.Plan.Constraints.Preferences)
}

func TestHandleTurnFinalizeRetriesThenRecovers(t *testing.T) {
	f := newDispatcherFixture(&scriptedProvider{responses: []string{
		"the model rambles instead of planning",
		`{
			"activity_list": ["eat at a warung"],
			"constraints": {"location": "Bali", "budget": null, "start_time": null, "end_time": null, "preferences": null},
			"agents_to_call": [],
			"notes": ""
		}`,
	}})
	userId := uuid.New()
	f.conversation.Save(pendingState(userId))

	resp, err := f.service.HandleTurn(context.Background(), userId, "1")

	require.NoError(t, err)
	assert.Equal(t, constant.ResponseTypeDispatchPlan, resp.Type)
	assert.Equal(t, 2, f.provider.calls)
}

func TestHandleTurnFinalizeDoubleFailureIsTerminal(t *testing.T) {
	f := newDispatcherFixture(&scriptedProvider{responses: []string{
		"not json at all",
		"still not json",
	}})
	userId := uuid.New()
	ctx := context.Background()
	f.conversation.Save(pendingState(userId))

	resp, err := f.service.HandleTurn(ctx, userId, "1")

	require.NoError(t, err)
	require.Equal(t, constant.ResponseTypeError, resp.Type)
	assert.Nil(t, resp.Plan)
	assert.NotEmpty(t, resp.Message)
	assert.Equal(t, 2, f.provider.calls)

	_, found := f.conversation.Get(userId.String())
	assert.False(t, found, "terminal error clears pending state")

	// The next turn starts fresh instead of replaying the dead round.
	f.provider.responses = append(f.provider.responses,
		`{"budget": null, "start_time": null, "end_time": null}`,
		`{"is_vague": false, "location": "Bali", "reason": "specific"}`,
		specificPlanJSON,
	)
	resp, err = f.service.HandleTurn(ctx, userId, "Ramen crawl in Kyoto")
	require.NoError(t, err)
	assert.Equal(t, constant.ResponseTypeDispatchPlan, resp.Type)
}

func TestHandleTurnTerminalErrorRecordsAssistantTurn(t *testing.T) {
	f := newDispatcherFixture(&scriptedProvider{responses: []string{
		"garbage", "garbage",
	}})
	userId := uuid.New()
	ctx := context.Background()
	f.conversation.Save(pendingState(userId))

	_, err := f.service.HandleTurn(ctx, userId, "1")
	require.NoError(t, err)

	turns, err := f.factory.UoW.Turns.FindByUser(ctx, userId)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, constant.ResponseTypeError, turns[1].ResponseType)
}

func TestGetTurnHistoryReturnsRecordedTurns(t *testing.T) {
	f := newDispatcherFixture(&scriptedProvider{responses: []string{
		`{"budget": null, "start_time": null, "end_time": null}`,
		`{"is_vague": false, "location": "Kyoto", "reason": "specific"}`,
		specificPlanJSON,
	}})
	userId := uuid.New()
	ctx := context.Background()

	_, err := f.service.HandleTurn(ctx, userId, "Ramen crawl in Kyoto")
	require.NoError(t, err)

	items, err := f.service.GetTurnHistory(ctx, userId)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "user", items[0].Role)
	assert.Equal(t, "Ramen crawl in Kyoto", items[0].Content)
	assert.Equal(t, "assistant", items[1].Role)
}

func TestSenderLockMapDrainsBetweenTurns(t *testing.T) {
	f := newDispatcherFixture(&scriptedProvider{responses: []string{
		`{"budget": null, "start_time": null, "end_time": null}`,
		`{"is_vague": false, "location": "Kyoto", "reason": "specific"}`,
		specificPlanJSON,
	}})
	userId := uuid.New()

	_, err := f.service.HandleTurn(context.Background(), userId, "Ramen crawl in Kyoto")
	require.NoError(t, err)

	// The per-sender lock is released and evicted once the turn ends.
	svc := f.service.(*dispatcherService)
	svc.sendersMu.Lock()
	remaining := len(svc.senders)
	svc.sendersMu.Unlock()
	assert.Zero(t, remaining)
}

func TestConcurrentTurnsForOneSenderSerialize(t *testing.T) {
	f := newDispatcherFixture(&scriptedProvider{responses: []string{
		`{"budget": null, "start_time": null, "end_time": null}`,
		`{"is_vague": false, "location": "Kyoto", "reason": "specific"}`,
		specificPlanJSON,
		`{"budget": null, "start_time": null, "end_time": null}`,
		`{"is_vague": false, "location": "Kyoto", "reason": "specific"}`,
		specificPlanJSON,
	}})
	userId := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.HandleTurn(context.Background(), userId, "Ramen crawl in Kyoto")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	svc := f.service.(*dispatcherService)
	svc.sendersMu.Lock()
	remaining := len(svc.senders)
	svc.sendersMu.Unlock()
	assert.Zero(t, remaining)
}
