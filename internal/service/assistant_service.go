package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"airport-assistant-be/internal/constant"
	"airport-assistant-be/internal/dto"
	"airport-assistant-be/internal/pkg/logger"
	"airport-assistant-be/internal/repository/contract"
	"airport-assistant-be/pkg/events"
	"airport-assistant-be/pkg/fallback"
	"airport-assistant-be/pkg/llm"
)

const moduleAssistant = "ASSISTANT"

type IAssistantService interface {
	// Answer returns the cached or freshly generated answer for query.
	Answer(ctx context.Context, query string) (string, error)
	// Ask trims the query, calls Answer and falls back to canned answers on failure.
	// The only error it returns is ErrMissingQuery.
	Ask(ctx context.Context, query string) (*dto.AskResult, error)
	Configured() bool
	CachedAnswers(ctx context.Context) int
}

type assistantService struct {
	provider  llm.LLMProvider
	cache     contract.ResponseCacheRepository
	fallback  *fallback.Selector
	delay     time.Duration
	publisher events.Publisher
	log       logger.ILogger
}

// NewAssistantService wires the query pipeline. A nil provider means no API
// credential was configured and every Answer fails with ErrNotConfigured.
func NewAssistantService(
	provider llm.LLMProvider,
	cache contract.ResponseCacheRepository,
	selector *fallback.Selector,
	delay time.Duration,
	publisher events.Publisher,
	log logger.ILogger,
) IAssistantService {
	if selector == nil {
		selector = fallback.NewDefaultSelector()
	}
	return &assistantService{
		provider:  provider,
		cache:     cache,
		fallback:  selector,
		delay:     delay,
		publisher: publisher,
		log:       log,
	}
}

func (s *assistantService) Configured() bool {
	return s.provider != nil
}

func (s *assistantService) CachedAnswers(ctx context.Context) int {
	n, err := s.cache.Count(ctx)
	if err != nil {
		return 0
	}
	return n
}

func (s *assistantService) Answer(ctx context.Context, query string) (string, error) {
	if s.provider == nil {
		return "", ErrNotConfigured
	}

	cached, found, err := s.cache.Get(ctx, query)
	if err != nil {
		s.log.Warn(moduleAssistant, "Cache lookup failed", map[string]interface{}{"error": err.Error()})
	} else if found {
		s.log.Debug(moduleAssistant, "Cache hit", nil)
		return cached, nil
	}

	// Fixed pacing before every upstream call, not a retry.
	if err := throttle(ctx, s.delay); err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(constant.QueryPromptFormat, constant.AirportAssistantSystemPrompt, query)
	reply, err := s.provider.Generate(ctx, prompt,
		llm.WithMaxTokens(constant.AnswerMaxTokens),
		llm.WithTemperature(constant.AnswerTemperature),
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), constant.QuotaErrorMarker) {
			s.log.Warn(moduleAssistant, "Upstream quota exhausted", map[string]interface{}{"error": err.Error()})
			return "", ErrServiceUnavailable
		}
		return "", &UpstreamError{Err: err}
	}

	if err := s.cache.Put(ctx, query, reply); err != nil {
		s.log.Error(moduleAssistant, "Failed to persist cached answer", map[string]interface{}{"error": err.Error()})
	}

	return reply, nil
}

func (s *assistantService) Ask(ctx context.Context, query string) (*dto.AskResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrMissingQuery
	}

	result := &dto.AskResult{Outcome: dto.OutcomeAnswered}

	reply, err := s.Answer(ctx, query)
	if err == nil {
		result.Reply = reply
	} else {
		result.Err = err
		if canned, ok := s.fallback.Select(query); ok {
			result.Reply = canned
			result.Outcome = dto.OutcomeKeywordFallback
		} else {
			result.Reply = constant.MessageGeneralTip
			result.Outcome = dto.OutcomeGenericFallback
		}
		s.log.Warn(moduleAssistant, "Serving fallback answer", map[string]interface{}{
			"outcome": string(result.Outcome),
			"error":   err.Error(),
		})
	}

	publishEvent(ctx, s.publisher, s.log, events.New(events.TypeAssistantQuery, map[string]interface{}{
		"outcome": string(result.Outcome),
	}))

	return result, nil
}

func throttle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
