package dto

// ProcessTicketRequest is the body for POST /api/tickets/process.
type ProcessTicketRequest struct {
	TicketText string `json:"ticketText"`
}

// TextRequest is the body for the classify/extract/analyze endpoints.
type TextRequest struct {
	Text string `json:"text"`
}

// DraftRequest is the body for POST /api/tickets/draft.
type DraftRequest struct {
	Text            string                  `json:"text"`
	Category        string                  `json:"category"`
	Severity        string                  `json:"severity"`
	ExtractedFields *ExtractedFieldsPayload `json:"extractedFields"`
}

// ExtractedFieldsPayload mirrors the extraction schema on the wire.
type ExtractedFieldsPayload struct {
	CustomerEmail            *string `json:"customerEmail"`
	CustomerID               *string `json:"customerId"`
	OrderID                  *string `json:"orderId"`
	ProductOrFeature         *string `json:"productOrFeature"`
	Summary                  *string `json:"summary"`
	AffectedComponentOrError *string `json:"affectedComponentOrError"`
}

// DraftResponse is the body for POST /api/tickets/draft responses.
type DraftResponse struct {
	Draft string `json:"draft"`
}

// RouteRequest is the body for POST /api/tickets/route.
type RouteRequest struct {
	Category string `json:"category"`
	Severity string `json:"severity"`
}

// AssignRequest is the body for POST /api/tickets/assign.
type AssignRequest struct {
	Draft    string  `json:"draft"`
	TeamID   string  `json:"teamId"`
	TeamName *string `json:"teamName"`
	TicketID *string `json:"ticketId"`
}

// FeedbackRequest is the body for POST /api/tickets/feedback.
type FeedbackRequest struct {
	TicketID              *string `json:"ticketId"`
	ClassificationCorrect *bool   `json:"classificationCorrect"`
	DraftHelpful          *bool   `json:"draftHelpful"`
	Comment               *string `json:"comment"`
}

// AckResponse acknowledges a recorded decision.
type AckResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}
