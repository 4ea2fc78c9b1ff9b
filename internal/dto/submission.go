package dto

import "time"

type SubmitRequest struct {
	Domain      string `json:"domain"`
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Keywords    string `json:"keywords,omitempty"`
	Language    string `json:"language,omitempty"`
	SubmittedBy string `json:"submitted_by,omitempty"`
}

type SubmissionResponse struct {
	Index       int       `json:"index"`
	Domain      string    `json:"domain"`
	Question    string    `json:"question"`
	Answer      string    `json:"answer"`
	Language    string    `json:"language"`
	SubmittedBy string    `json:"submitted_by"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"created_at"`
}
