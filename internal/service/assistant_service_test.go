package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"airport-assistant-be/internal/constant"
	"airport-assistant-be/internal/dto"
	"airport-assistant-be/internal/pkg/logger"
	"airport-assistant-be/internal/repository/implementation"
	"airport-assistant-be/pkg/events"
	"airport-assistant-be/pkg/fallback"
	"airport-assistant-be/pkg/kvstore"
	"airport-assistant-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	options []*llm.Options
	reply   string
	err     error
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	return f.Generate(ctx, history[len(history)-1].Content)
}

func (f *fakeProvider) Generate(_ context.Context, prompt string, opts ...llm.Option) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.options = append(f.options, llm.NewOptions(opts...))
	return f.reply, f.err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

func newTestAssistant(t *testing.T, provider llm.LLMProvider, delay time.Duration) (IAssistantService, *kvstore.FileStore[string], *recordingPublisher) {
	t.Helper()

	store, err := kvstore.Open[string](filepath.Join(t.TempDir(), "airport_cache.json"))
	require.NoError(t, err)

	pub := &recordingPublisher{}
	svc := NewAssistantService(
		provider,
		implementation.NewResponseCacheRepository(store),
		fallback.NewDefaultSelector(),
		delay,
		pub,
		logger.NewNopLogger(),
	)
	return svc, store, pub
}

func TestAnswerCachesAfterFirstCall(t *testing.T) {
	provider := &fakeProvider{reply: "Terminal 3 is a 10 minute walk."}
	svc, store, _ := newTestAssistant(t, provider, 0)
	ctx := context.Background()

	first, err := svc.Answer(ctx, "How do I reach T3?")
	require.NoError(t, err)
	second, err := svc.Answer(ctx, "How do I reach T3?")
	require.NoError(t, err)

	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.Len())

	cached, ok := store.Get(implementation.CacheKey("How do I reach T3?"))
	assert.True(t, ok)
	assert.Equal(t, first, cached)
	assert.Equal(t, 1, svc.CachedAnswers(ctx))
}

func TestAnswerDistinctQueriesMissCache(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}
	svc, _, _ := newTestAssistant(t, provider, 0)

	_, err := svc.Answer(context.Background(), "gate A1")
	require.NoError(t, err)
	_, err = svc.Answer(context.Background(), "gate A2")
	require.NoError(t, err)

	assert.Equal(t, 2, provider.calls)
}

func TestAnswerPromptComposition(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}
	svc, _, _ := newTestAssistant(t, provider, 0)

	_, err := svc.Answer(context.Background(), "Where is the lounge?")
	require.NoError(t, err)

	require.Len(t, provider.prompts, 1)
	assert.Equal(t, constant.AirportAssistantSystemPrompt+"\n\nQuery: Where is the lounge?", provider.prompts[0])

	require.Len(t, provider.options, 1)
	assert.Equal(t, constant.AnswerMaxTokens, provider.options[0].MaxTokens)
	assert.InDelta(t, constant.AnswerTemperature, provider.options[0].Temperature, 1e-9)
}

func TestAnswerNotConfigured(t *testing.T) {
	svc, _, _ := newTestAssistant(t, nil, 0)

	_, err := svc.Answer(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.False(t, svc.Configured())
}

func TestAnswerQuotaBecomesServiceUnavailable(t *testing.T) {
	provider := &fakeProvider{err: errors.New("429: You exceeded your current QUOTA")}
	svc, store, _ := newTestAssistant(t, provider, 0)

	_, err := svc.Answer(context.Background(), "q")
	assert.ErrorIs(t, err, ErrServiceUnavailable)
	assert.Equal(t, 0, store.Len())
}

func TestAnswerOtherFailureIsUpstreamError(t *testing.T) {
	cause := errors.New("connection reset")
	provider := &fakeProvider{err: cause}
	svc, _, _ := newTestAssistant(t, provider, 0)

	_, err := svc.Answer(context.Background(), "q")

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "upstream AI request failed", PublicMessage(err))
}

func TestAnswerThrottlesOnlyOnMiss(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}
	svc, _, _ := newTestAssistant(t, provider, 60*time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	_, err := svc.Answer(ctx, "slow")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)

	start = time.Now()
	_, err = svc.Answer(ctx, "slow")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 60*time.Millisecond)
}

func TestAnswerThrottleHonorsCancellation(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}
	svc, _, _ := newTestAssistant(t, provider, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := svc.Answer(ctx, "q")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, provider.calls)
}

func TestAsk(t *testing.T) {
	tests := []struct {
		name        string
		provider    llm.LLMProvider
		query       string
		wantOutcome dto.AskOutcome
		wantReply   string
		wantErr     error
	}{
		{
			name:        "answered",
			provider:    &fakeProvider{reply: "Gate C is 4 minutes away."},
			query:       "  Where is gate C?  ",
			wantOutcome: dto.OutcomeAnswered,
			wantReply:   "Gate C is 4 minutes away.",
		},
		{
			name:        "keyword fallback without api key",
			provider:    nil,
			query:       "What about security?",
			wantOutcome: dto.OutcomeKeywordFallback,
			wantReply:   fallback.DefaultTable[0].Answer,
			wantErr:     ErrNotConfigured,
		},
		{
			name:        "generic fallback on quota",
			provider:    &fakeProvider{err: errors.New("quota exceeded")},
			query:       "Where can I buy coffee?",
			wantOutcome: dto.OutcomeGenericFallback,
			wantReply:   constant.MessageGeneralTip,
			wantErr:     ErrServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, pub := newTestAssistant(t, tt.provider, 0)

			res, err := svc.Ask(context.Background(), tt.query)
			require.NoError(t, err)

			assert.Equal(t, tt.wantOutcome, res.Outcome)
			assert.Equal(t, tt.wantReply, res.Reply)
			if tt.wantErr != nil {
				assert.ErrorIs(t, res.Err, tt.wantErr)
			} else {
				assert.NoError(t, res.Err)
			}
			assert.Equal(t, []string{events.TypeAssistantQuery}, pub.types())
		})
	}
}

func TestAskMissingQuery(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}
	svc, _, _ := newTestAssistant(t, provider, 0)

	_, err := svc.Ask(context.Background(), "   \n\t")
	assert.ErrorIs(t, err, ErrMissingQuery)
	assert.Equal(t, 0, provider.calls)
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, constant.MessageNotConfigured, PublicMessage(ErrNotConfigured))
	assert.Equal(t, constant.MessageServiceUnavailable, PublicMessage(ErrServiceUnavailable))
	assert.Equal(t, "internal error", PublicMessage(errors.New("disk full")))
}
