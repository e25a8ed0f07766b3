package http

// Request DTOs of the internal notification API used by TaskFlow business
// services (task, project, invoicing flows). Validated at the boundary.

type SendMessageRequest struct {
	Recipient          string   `json:"recipient" validate:"required"`
	Body               string   `json:"body,omitempty" validate:"required_without=TemplateName"`
	TemplateName       string   `json:"template_name,omitempty"`
	TemplateLanguage   string   `json:"template_language,omitempty"`
	TemplateParameters []string `json:"template_parameters,omitempty"`
}

type TaskAssignmentRequest struct {
	PhoneNumber  string `json:"phone_number" validate:"required"`
	TaskTitle    string `json:"task_title" validate:"required"`
	AssigneeName string `json:"assignee_name" validate:"required"`
	ProjectName  string `json:"project_name" validate:"required"`
}

type TaskStatusUpdateRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	TaskTitle   string `json:"task_title" validate:"required"`
	OldStatus   string `json:"old_status" validate:"required"`
	NewStatus   string `json:"new_status" validate:"required"`
	UpdatedBy   string `json:"updated_by" validate:"required"`
}

type ProjectDeadlineRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	ProjectName string `json:"project_name" validate:"required"`
	DaysLeft    int    `json:"days_left" validate:"gte=0"`
}

type InvoiceGeneratedRequest struct {
	PhoneNumber   string `json:"phone_number" validate:"required"`
	InvoiceNumber string `json:"invoice_number" validate:"required"`
	ClientName    string `json:"client_name" validate:"required"`
	Amount        string `json:"amount" validate:"required"`
}

type InvoicePaymentRequest struct {
	PhoneNumber   string `json:"phone_number" validate:"required"`
	InvoiceNumber string `json:"invoice_number" validate:"required"`
	Amount        string `json:"amount" validate:"required"`
	ClientName    string `json:"client_name" validate:"required"`
}

type SendMessageResponse struct {
	ProviderMessageID string `json:"provider_message_id"`
}
