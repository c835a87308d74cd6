package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"agentcity-be/internal/constant"
	"agentcity-be/internal/repository/memory"
	"agentcity-be/internal/service"
	"agentcity-be/pkg/llm"

	"github.com/google/uuid"
)

// scriptedProvider replays canned gateway responses in call order, so
// the whole state machine can be walked without a model or a database.
type scriptedProvider struct {
	responses []string
	calls     int
}

func (s *scriptedProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	if s.calls >= len(s.responses) {
		return "", fmt.Errorf("script exhausted after %d calls", s.calls)
	}
	raw := s.responses[s.calls]
	s.calls++
	return raw, nil
}

func (s *scriptedProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}})
}

type consoleLogger struct{}

func (consoleLogger) Debug(module, message string, details map[string]interface{}) {}
func (consoleLogger) Info(module, message string, details map[string]interface{})  {}
func (consoleLogger) Warn(module, message string, details map[string]interface{}) {
	log.Printf("[%s] WARN %s %v", module, message, details)
}
func (consoleLogger) Error(module, message string, details map[string]interface{}) {
	log.Printf("[%s] ERROR %s %v", module, message, details)
}
func (consoleLogger) Sync() error { return nil }

func main() {
	provider := &scriptedProvider{responses: []string{
		// Turn 1: extraction, vagueness check, location research
		`{"budget": 2000000, "start_time": null, "end_time": null}`,
		`{"is_vague": true, "location": "Bali", "reason": "no concrete activities named"}`,
		`{"general_categories": [
			{"category": "eat", "description": "Warungs, seafood grills, night markets", "examples": ["Jimbaran seafood", "Ubud warungs"]},
			{"category": "surf", "description": "Breaks for every level", "examples": ["Canggu", "Uluwatu"]},
			{"category": "temples", "description": "Heritage and cliffside temples", "examples": ["Tanah Lot", "Uluwatu Temple"]}
		]}`,
		// Turn 2: finalize with the selected categories. Fenced on
		// purpose so the recovery cascade gets exercised too.
		"```json\n" + `{
			"activity_list": ["surf lesson at canggu", "sunset at tanah lot", "seafood dinner at jimbaran"],
			"constraints": {"location": "Bali", "budget": null, "start_time": null, "end_time": null, "preferences": null},
			"agents_to_call": ["activity_agent", "food_agent"],
			"notes": "Budget covers a board rental and a beachfront dinner."
		}` + "\n```",
	}}

	dispatcher := service.NewDispatcherService(
		memory.NewFactory(),
		memory.NewConversationStateRepository(),
		provider,
		log.New(io.Discard, "", 0),
		3,
		nil,
		nil,
		consoleLogger{},
	)

	userId := uuid.New()
	fmt.Println("=== Dispatcher Walkthrough (scripted gateway) ===")
	fmt.Printf("Simulated user: %s\n", userId)

	turns := []string{
		"I want to do something fun in Bali, budget around 2 million",
		"1, 2",
	}

	for _, text := range turns {
		fmt.Printf("\nYOU: %s\n", text)

		resp, err := dispatcher.HandleTurn(context.Background(), userId, text)
		if err != nil {
			log.Fatalf("Turn failed: %v", err)
		}

		switch resp.Type {
		case constant.ResponseTypeClarificationNeeded:
			fmt.Printf("AGENT: %s\n", resp.Clarification.Prompt)
		case constant.ResponseTypeDispatchPlan:
			pretty, _ := json.MarshalIndent(resp.Plan, "", "  ")
			fmt.Printf("AGENT: dispatch plan ready\n%s\n", pretty)
		default:
			fmt.Printf("AGENT: %s\n", resp.Message)
		}
	}

	fmt.Printf("\nGateway calls used: %d\n", provider.calls)
}
