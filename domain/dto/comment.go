package dto

import "time"

type CreateCommentRequest struct {
	TaskID  string `json:"taskId" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
}

type CommentResponse struct {
	ID        string      `json:"id"`
	TaskID    string      `json:"taskId"`
	Content   string      `json:"content"`
	AuthorID  string      `json:"authorId"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Author    *PublicUser `json:"author"`
}
