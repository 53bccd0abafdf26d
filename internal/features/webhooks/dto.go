package webhooks

type CreateWebhookRequestDTO struct {
	URL    string   `json:"url"    binding:"required,url"`
	Events []string `json:"events" binding:"required,min=1,dive,min=1"`
}

type UpdateWebhookRequestDTO struct {
	URL      *string  `json:"url,omitempty"    binding:"omitempty,url"`
	Events   []string `json:"events,omitempty" binding:"omitempty,min=1,dive,min=1"`
	IsActive *bool    `json:"isActive,omitempty"`
}

type GetWebhooksResponseDTO struct {
	Webhooks []*Webhook `json:"webhooks"`
}

type GetDeliveryLogsResponseDTO struct {
	Deliveries []*WebhookDeliveryLog `json:"deliveries"`
}
