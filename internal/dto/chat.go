package dto

type ChatRequest struct {
	Question  string `json:"question"`
	Domain    string `json:"domain,omitempty"`
	Language  string `json:"language,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

type ChatResponse struct {
	Answer       string  `json:"answer"`
	Confidence   float64 `json:"confidence"`
	Domain       string  `json:"domain"`
	SessionID    string  `json:"session_id"`
	ResponseTime float64 `json:"response_time"`
}
