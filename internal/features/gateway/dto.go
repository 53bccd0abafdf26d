package gateway

import "time"

// ResponseEnvelope is the canonical success body for every gateway
// response that carries data.
type ResponseEnvelope struct {
	Data any          `json:"data"`
	Meta ResponseMeta `json:"meta"`
}

type ResponseMeta struct {
	Timestamp  string          `json:"timestamp"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
}

type PaginationMeta struct {
	Total      int64   `json:"total"`
	Limit      int     `json:"limit"`
	NextCursor *string `json:"next_cursor"`
}

func NewResponseEnvelope(data any) *ResponseEnvelope {
	return &ResponseEnvelope{
		Data: data,
		Meta: ResponseMeta{Timestamp: time.Now().UTC().Format(time.RFC3339)},
	}
}

func NewListResponseEnvelope(result *ListResult) *ResponseEnvelope {
	envelope := NewResponseEnvelope(result.Items)
	envelope.Meta.Pagination = &PaginationMeta{
		Total:      result.Total,
		Limit:      result.Limit,
		NextCursor: result.NextCursor,
	}

	return envelope
}
