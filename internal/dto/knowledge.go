package dto

import "time"

type CreateDomainRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type DomainInfo struct {
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	KnowledgeCount int64      `json:"knowledge_count"`
	TotalUsage     int64      `json:"total_usage"`
	LastUsed       *time.Time `json:"last_used,omitempty"`
}

type UpsertKnowledgeRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Keywords string `json:"keywords,omitempty"`
}

type KnowledgeItemResponse struct {
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Keywords   string  `json:"keywords,omitempty"`
	Confidence float64 `json:"confidence"`
	UsageCount int64   `json:"usage_count"`
}

type SearchMatchResponse struct {
	Domain     string  `json:"domain"`
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Keywords   string  `json:"keywords,omitempty"`
	Confidence float64 `json:"confidence"`
}

// ExportItem is one entry of the durable interchange format: a JSON document
// mapping domain name to an ordered list of these items.
type ExportItem struct {
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Keywords   string  `json:"keywords,omitempty"`
	Confidence float64 `json:"confidence"`
	UsageCount int64   `json:"usage_count"`
}

type ImportResult struct {
	Domains int      `json:"domains"`
	Items   int      `json:"items"`
	Updated []string `json:"updated_domains"`
}
