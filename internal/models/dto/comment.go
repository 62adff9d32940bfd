package dto

type CreateCommentRequest struct {
	Text   string `json:"text"`
	Task   string `json:"task"`
	TaskID string `json:"taskId"`
}

type UpdateCommentRequest struct {
	Text *string `json:"text"`
}
