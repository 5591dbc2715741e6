package services

import (
	"context"

	"taskmaster/domain/dto"
)

type CommentService interface {
	ListTaskComments(ctx context.Context, taskID, userID string) ([]*dto.CommentResponse, error)
	CreateComment(ctx context.Context, userID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	UpdateComment(ctx context.Context, commentID, userID string, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, commentID, userID string) error
}
