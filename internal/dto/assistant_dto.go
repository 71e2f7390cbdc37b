package dto

type AskRequest struct {
	Query string `json:"query" form:"query"`
}

type AskOutcome string

const (
	OutcomeAnswered        AskOutcome = "answered"
	OutcomeKeywordFallback AskOutcome = "keyword_fallback"
	OutcomeGenericFallback AskOutcome = "generic_fallback"
)

// AskResult is what the assistant produced for one query. Err is set on both
// fallback outcomes and holds the failure that triggered the fallback.
type AskResult struct {
	Reply   string
	Outcome AskOutcome
	Err     error
}

type AskResponse struct {
	Reply string `json:"reply"`
	Error string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status        string `json:"status"`
	AiConfigured  bool   `json:"ai_configured"`
	CachedAnswers int    `json:"cached_answers"`
}
