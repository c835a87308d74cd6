package intent

import (
	"context"
	"errors"
	"io"
	"log"

	"agentcity-be/pkg/llm"
)

// scriptedProvider replays canned responses in order. An entry in errs
// at the same index wins over the response.
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
	return "", errors.New("scripted provider exhausted")
}

func (s *scriptedProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
