package constant

const AirportAssistantSystemPrompt = `You are an AI airport travel assistant specializing in global airport navigation. Provide:
1. Terminal/gate navigation tips
2. Security checkpoint advice
3. Lounge access information
4. Transportation options
5. Airport-specific amenities
6. Real-time guidance (when possible)
Keep responses under 150 words, factual, and include estimated walking times where applicable.`

// Generation settings for assistant answers. 150 words is roughly 200 tokens.
const (
	AnswerMaxTokens   = 400
	AnswerTemperature = 0.4
)

// QueryPromptFormat joins the system prompt and the user's literal query.
const QueryPromptFormat = "%s\n\nQuery: %s"

const (
	MessageEnterQuestion      = "Please enter your airport travel question."
	MessageGeneralTip         = "✈️ General tip: Arrive 2hrs early for domestic, 3hrs for international flights. Check airport maps for gate locations."
	MessageServiceUnavailable = "Service temporarily unavailable. Please try again later."
	MessageNotConfigured      = "Service not configured"

	MessageAllFieldsRequired  = "All fields are required"
	MessageUsernameExists     = "Username already exists"
	MessageAccountCreated     = "Account created successfully"
	MessageInvalidCredentials = "Invalid username or password"
	MessageUnauthorized       = "Unauthorized"
	MessageSignedOut          = "Signed out successfully"
)

// Error text that marks an upstream failure as quota/rate-limit exhaustion.
const QuotaErrorMarker = "quota"

const AuthTokenHeader = "x-auth-token"
