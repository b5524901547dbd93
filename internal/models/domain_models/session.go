package domain_models

import "time"

// Turn roles, mirroring the chat collaborator's message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one entry of a session's conversation history.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session owns one user's evolving context: the profile built from their
// questionnaire, the optional budget, accumulated filter hints, conversation
// history and the current ranked results. Created once per completed
// questionnaire; mutated only through the session service.
type Session struct {
	ID      string        `json:"session_id"`
	Profile ProfileVector `json:"lifestyle_profile"`
	// Budget is nil when the user has not stated one; ranking then runs
	// unconstrained on price.
	Budget  *int          `json:"budget,omitempty"`
	Hints   FilterHints   `json:"filter_hints"`
	History []Turn        `json:"conversation_history"`
	Results []MatchResult `json:"recommended_vehicles"`
}
