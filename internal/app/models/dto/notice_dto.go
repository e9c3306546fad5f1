package dto

// NoticeRequest creates or replaces a notice
type NoticeRequest struct {
	Title       string `json:"title" binding:"required,notblank,max=200" example:"CAP Round 1 schedule announced"`
	Content     string `json:"content" binding:"required,notblank" example:"Option form filling opens on 12 July."`
	IsImportant bool   `json:"isImportant" example:"true"`
	Status      string `json:"status" binding:"omitempty,oneof=draft published" example:"published"`
}

// CreateAlertRequest raises an alert on a student's dashboard
type CreateAlertRequest struct {
	Title     string `json:"title" binding:"required,notblank,max=200" example:"Caste validity pending"`
	Message   string `json:"message" binding:"required,notblank" example:"Upload your caste validity certificate before CAP Round 1."`
	AlertType string `json:"alertType" binding:"omitempty,oneof=info warning action" example:"action"`
}
