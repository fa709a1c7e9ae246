package model

type CreateCommentRequest struct {
	Content  string  `json:"content"`
	ParentID *string `json:"parent_id,omitempty"`
	Stance   Stance  `json:"stance,omitempty"`
}

type EditCommentRequest struct {
	Content string `json:"content"`
}

type ReactionRequest struct {
	Type Reaction `json:"type"`
}

type ReportRequest struct {
	Reason string `json:"reason"`
}

type ThreadResponse struct {
	Status  string   `json:"status"`
	Subject string   `json:"subject"`
	Sort    SortMode `json:"sort"`
	Total   int      `json:"total"`
	Stance  Stance   `json:"stance,omitempty"`
	Forest  Forest   `json:"comments"`
}

type ReactionResponse struct {
	Status   string        `json:"status"`
	Reaction ReactionState `json:"reaction"`
}

type ReportResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
