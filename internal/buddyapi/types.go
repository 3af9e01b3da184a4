package buddyapi

// Wire types shared by the HTTP client and the local tutor server.

// ChatRequest is the body of POST /chat. Message already carries any
// mode framing ("Generate practice: ...", "session:... answer:...").
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the body returned by POST /chat. Exactly one of Response
// or Error is set.
type ChatResponse struct {
	Response  string `json:"response,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Topic is one row of the learner's per-topic performance.
type Topic struct {
	Topic          string  `json:"topic"`
	Accuracy       float64 `json:"accuracy"` // 0-100
	CorrectCount   int     `json:"correct_count"`
	IncorrectCount int     `json:"incorrect_count"`
}

// RecommendationsResponse is the body returned by GET /recommendations.
// Topics arrive ranked by the backend, weakest first.
type RecommendationsResponse struct {
	Topics []Topic `json:"topics"`
	Error  string  `json:"error,omitempty"`
}

// ReportRequest is the body of POST /report.
type ReportRequest struct {
	SessionID string `json:"session_id"`
	Channel   string `json:"channel,omitempty"`
	UserName  string `json:"user_name"`
}

// ReportResponse is the body returned by POST /report.
type ReportResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
