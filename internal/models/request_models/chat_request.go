package request_models

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	Budget    *int   `json:"budget,omitempty"`
}
