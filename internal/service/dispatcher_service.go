package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"agentcity-be/internal/constant"
	"agentcity-be/internal/dto"
	"agentcity-be/internal/entity"
	"agentcity-be/internal/pkg/logger"
	"agentcity-be/internal/repository/contract"
	"agentcity-be/internal/repository/unitofwork"
	"agentcity-be/pkg/events"
	"agentcity-be/pkg/intent"
	"agentcity-be/pkg/llm"
	pktNats "agentcity-be/pkg/nats"
	"agentcity-be/pkg/store"

	"github.com/google/uuid"
)

// PlanArchivalMessage is what the dispatcher hands to the in-process
// archival pipeline after a plan is persisted.
type PlanArchivalMessage struct {
	PlanId uuid.UUID `json:"plan_id"`
	UserId uuid.UUID `json:"user_id"`
}

type IDispatcherService interface {
	HandleTurn(ctx context.Context, userId uuid.UUID, userRequest string) (*dto.TurnResponse, error)
	GetTurnHistory(ctx context.Context, userId uuid.UUID) ([]dto.PlanningTurnItem, error)
}

type dispatcherService struct {
	uowFactory   unitofwork.RepositoryFactory
	conversation contract.ConversationStateRepository

	vagueness  *intent.VaguenessChecker
	extractor  *intent.ConstraintExtractor
	researcher *intent.LocationResearcher
	preference *intent.PreferenceAnalyzer
	finalizer  *intent.Finalizer

	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger

	// One in-flight turn per sender. Distinct senders run in parallel.
	sendersMu sync.Mutex
	senders   map[uuid.UUID]*senderLock
}

// senderLock serializes turns for one sender. The refcount lets the
// dispatcher drop the entry once no turn holds or waits for it, so the
// map stays bounded by concurrent senders rather than lifetime senders.
type senderLock struct {
	mu   sync.Mutex
	refs int
}

func NewDispatcherService(
	uowFactory unitofwork.RepositoryFactory,
	conversation contract.ConversationStateRepository,
	provider llm.LLMProvider,
	llmLogger *log.Logger,
	minMatchingRecords int,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	appLogger logger.ILogger,
) IDispatcherService {
	return &dispatcherService{
		uowFactory:       uowFactory,
		conversation:     conversation,
		vagueness:        intent.NewVaguenessChecker(provider, llmLogger),
		extractor:        intent.NewConstraintExtractor(provider, llmLogger),
		researcher:       intent.NewLocationResearcher(provider, llmLogger),
		preference:       intent.NewPreferenceAnalyzer(provider, llmLogger, minMatchingRecords),
		finalizer:        intent.NewFinalizer(provider, llmLogger),
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           appLogger,
		senders:          make(map[uuid.UUID]*senderLock),
	}
}

func (s *dispatcherService) lockSender(userId uuid.UUID) func() {
	s.sendersMu.Lock()
	lock, ok := s.senders[userId]
	if !ok {
		lock = &senderLock{}
		s.senders[userId] = lock
	}
	lock.refs++
	s.sendersMu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()
		s.sendersMu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(s.senders, userId)
		}
		s.sendersMu.Unlock()
	}
}

// HandleTurn runs one full dispatcher turn: either the fresh-request
// path or the clarification-reply path, depending on stored state.
func (s *dispatcherService) HandleTurn(ctx context.Context, userId uuid.UUID, userRequest string) (*dto.TurnResponse, error) {
	unlock := s.lockSender(userId)
	defer unlock()

	uow := s.uowFactory.NewUnitOfWork(ctx)

	s.recordTurn(ctx, uow, userId, entity.TurnRoleUser, userRequest, "")

	state, found := s.conversation.Get(userId.String())
	if found && state.Phase() == store.PhaseAwaitingClarification {
		return s.handleClarificationReply(ctx, uow, userId, state, userRequest)
	}

	return s.handleFreshRequest(ctx, uow, userId, userRequest)
}

func (s *dispatcherService) handleFreshRequest(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, userRequest string) (*dto.TurnResponse, error) {
	basics := s.extractor.Extract(ctx, userRequest)
	check := s.vagueness.Check(ctx, userRequest)

	if !check.IsVague {
		plan, err := s.finalizer.DispatchDirect(ctx, userRequest, check.Location)
		if err != nil {
			return s.failTurn(ctx, uow, userId, err)
		}
		mergeBasics(plan, basics)
		return s.emitPlan(ctx, uow, userId, plan)
	}

	// Vague request. See whether transaction history already tells us
	// what the user likes before bothering them with questions.
	txns, err := uow.TransactionRepository().FindByUser(ctx, userId)
	if err != nil {
		s.logger.Warn("Dispatcher", "Transaction fetch failed, continuing without history", map[string]interface{}{
			"user_id": userId, "error": err.Error(),
		})
		txns = nil
	}

	profile := s.preference.Analyze(ctx, toSummaries(txns), check.Location)
	if profile != nil {
		plan, err := s.finalizer.Finalize(ctx, intent.FinalizeInput{
			OriginalRequest:     userRequest,
			SelectedPreferences: profile.ActivityCategories,
			Location:            check.Location,
			Budget:              basics.Budget,
			StartTime:           basics.StartTime,
			EndTime:             basics.EndTime,
			TransactionData:     profile,
		})
		if err != nil {
			return s.failTurn(ctx, uow, userId, err)
		}
		return s.emitPlan(ctx, uow, userId, plan)
	}

	// Not enough history: research the destination and ask.
	categories := s.researcher.Research(ctx, check.Location)
	if len(categories) == 0 {
		categories = constant.DefaultCategories
	}

	s.conversation.Save(&store.ConversationState{
		SenderID:                userId.String(),
		WaitingForClarification: true,
		OriginalRequest:         userRequest,
		Location:                check.Location,
		Budget:                  basics.Budget,
		StartTime:               basics.StartTime,
		EndTime:                 basics.EndTime,
		Categories:              categories,
	})

	prompt := intent.BuildClarificationPrompt(categories)
	s.recordTurn(ctx, uow, userId, entity.TurnRoleAssistant, prompt, constant.ResponseTypeClarificationNeeded)

	if s.eventPublisher != nil {
		evt := events.NewClarificationAskedEvent(userId.String(), categoryNames(categories))
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("Dispatcher", "Failed to publish clarification event", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.TurnResponse{
		Type: constant.ResponseTypeClarificationNeeded,
		Clarification: &dto.ClarificationResponse{
			Prompt:     prompt,
			Categories: toCategoryResponses(categories),
		},
	}, nil
}

func (s *dispatcherService) handleClarificationReply(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, state *store.ConversationState, reply string) (*dto.TurnResponse, error) {
	selected := intent.ParseSelection(reply, state.Categories)

	plan, err := s.finalizer.Finalize(ctx, intent.FinalizeInput{
		OriginalRequest:     state.OriginalRequest,
		SelectedPreferences: intent.SelectionLabels(selected),
		Location:            state.Location,
		Budget:              state.Budget,
		StartTime:           state.StartTime,
		EndTime:             state.EndTime,
		TransactionData:     state.TransactionData,
	})
	if err != nil {
		s.conversation.Delete(userId.String())
		return s.failTurn(ctx, uow, userId, err)
	}

	s.conversation.Delete(userId.String())
	return s.emitPlan(ctx, uow, userId, plan)
}

// emitPlan persists the plan, records the assistant turn, and hands the
// plan to the archival pipeline and the event bus.
func (s *dispatcherService) emitPlan(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, plan *intent.DispatchPlan) (*dto.TurnResponse, error) {
	record := &entity.DispatchPlanRecord{
		Id:           uuid.New(),
		UserId:       userId,
		ActivityList: plan.ActivityList,
		Location:     plan.Constraints.Location,
		Budget:       plan.Constraints.Budget,
		StartTime:    plan.Constraints.StartTime,
		EndTime:      plan.Constraints.EndTime,
		Preferences:  plan.Constraints.Preferences,
		AgentsToCall: plan.AgentsToCall,
		Notes:        plan.Notes,
	}

	if err := uow.DispatchPlanRepository().Create(ctx, record); err != nil {
		s.logger.Error("Dispatcher", "Failed to persist dispatch plan", map[string]interface{}{
			"user_id": userId, "error": err.Error(),
		})
		// Plan delivery matters more than persistence.
	}

	planJSON, _ := json.Marshal(plan)
	s.recordTurn(ctx, uow, userId, entity.TurnRoleAssistant, string(planJSON), constant.ResponseTypeDispatchPlan)

	if s.publisherService != nil {
		payload, _ := json.Marshal(PlanArchivalMessage{PlanId: record.Id, UserId: userId})
		if err := s.publisherService.Publish(ctx, payload); err != nil {
			s.logger.Warn("Dispatcher", "Failed to queue plan archival message", map[string]interface{}{"error": err.Error()})
		}
	}

	if s.eventPublisher != nil {
		evt := events.NewPlanDispatchedEvent(userId.String(), record.Id.String(), record.Location, record.ActivityList)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("Dispatcher", "Failed to publish plan event", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.TurnResponse{
		Type: constant.ResponseTypeDispatchPlan,
		Plan: &dto.DispatchPlanResponse{
			ActivityList: plan.ActivityList,
			Constraints: dto.ConstraintsResponse{
				Location:    plan.Constraints.Location,
				Budget:      plan.Constraints.Budget,
				StartTime:   plan.Constraints.StartTime,
				EndTime:     plan.Constraints.EndTime,
				Preferences: plan.Constraints.Preferences,
			},
			AgentsToCall: plan.AgentsToCall,
			Notes:        plan.Notes,
		},
	}, nil
}

// failTurn is the only path that surfaces an error document to the
// user: an irrecoverable finalize failure.
func (s *dispatcherService) failTurn(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, cause error) (*dto.TurnResponse, error) {
	message := "Could not produce an activity plan. Please try rephrasing your request."

	s.logger.Error("Dispatcher", "Turn ended in terminal error", map[string]interface{}{
		"user_id": userId, "phase": store.PhaseTerminal, "error": cause.Error(),
	})
	s.recordTurn(ctx, uow, userId, entity.TurnRoleAssistant, message, constant.ResponseTypeError)

	if s.eventPublisher != nil {
		evt := events.NewDispatchFailedEvent(userId.String(), cause.Error())
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("Dispatcher", "Failed to publish failure event", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.TurnResponse{
		Type:    constant.ResponseTypeError,
		Message: message,
	}, nil
}

func (s *dispatcherService) recordTurn(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, role entity.TurnRole, content, responseType string) {
	turn := &entity.PlanningTurn{
		Id:           uuid.New(),
		UserId:       userId,
		Role:         role,
		Content:      content,
		ResponseType: responseType,
	}
	if err := uow.PlanningTurnRepository().Create(ctx, turn); err != nil {
		s.logger.Warn("Dispatcher", "Failed to record planning turn", map[string]interface{}{
			"user_id": userId, "error": err.Error(),
		})
	}
}

func (s *dispatcherService) GetTurnHistory(ctx context.Context, userId uuid.UUID) ([]dto.PlanningTurnItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	turns, err := uow.PlanningTurnRepository().FindByUser(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("fetch turn history: %w", err)
	}

	items := make([]dto.PlanningTurnItem, 0, len(turns))
	for _, t := range turns {
		items = append(items, dto.PlanningTurnItem{
			Id:           t.Id,
			Role:         string(t.Role),
			Content:      t.Content,
			ResponseType: t.ResponseType,
			CreatedAt:    t.CreatedAt,
		})
	}
	return items, nil
}

func mergeBasics(plan *intent.DispatchPlan, basics intent.BasicConstraints) {
	if plan.Constraints.Budget == nil {
		plan.Constraints.Budget = basics.Budget
	}
	if plan.Constraints.StartTime == nil {
		plan.Constraints.StartTime = basics.StartTime
	}
	if plan.Constraints.EndTime == nil {
		plan.Constraints.EndTime = basics.EndTime
	}
}

func toSummaries(txns []*entity.Transaction) []intent.TransactionSummary {
	summaries := make([]intent.TransactionSummary, 0, len(txns))
	for _, t := range txns {
		summaries = append(summaries, intent.TransactionSummary{
			Activity: t.Activity,
			Category: t.Category,
			Amount:   t.Amount,
			Location: t.Location,
		})
	}
	return summaries
}

func categoryNames(categories []store.Category) []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Category)
	}
	return names
}

func toCategoryResponses(categories []store.Category) []dto.CategoryResponse {
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.CategoryResponse{
			Category:    c.Category,
			Description: c.Description,
			Examples:    c.Examples,
		})
	}
	return out
}
