package dto

import "taskmaster/domain/models"

func UserToPublicUser(user *models.User) *PublicUser {
	if user == nil {
		return nil
	}
	return &PublicUser{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

func UserToUserSummary(user *models.User) *UserSummary {
	if user == nil {
		return nil
	}
	return &UserSummary{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

func ProjectToProjectRef(project *models.Project) *ProjectRef {
	if project == nil {
		return nil
	}
	return &ProjectRef{ID: project.ID, Name: project.Name}
}

func TaskToTaskResponse(task *models.Task, assignee *models.User) *TaskResponse {
	if task == nil {
		return nil
	}
	return &TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		ProjectID:   task.ProjectID,
		AssignedTo:  task.AssignedTo,
		Status:      task.Status,
		Priority:    task.Priority,
		CreatedBy:   task.CreatedBy,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		Assignee:    UserToPublicUser(assignee),
	}
}

func CommentToCommentResponse(comment *models.Comment, author *models.User) *CommentResponse {
	if comment == nil {
		return nil
	}
	return &CommentResponse{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		Content:   comment.Content,
		AuthorID:  comment.AuthorID,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
		Author:    UserToPublicUser(author),
	}
}

func TaskToRecentActivity(task *models.Task, project *models.Project, assignee *models.User) RecentActivity {
	return RecentActivity{
		ID:        task.ID,
		Title:     task.Title,
		Status:    task.Status,
		Priority:  task.Priority,
		UpdatedAt: task.UpdatedAt,
		Project:   ProjectToProjectRef(project),
		Assignee:  UserToUserSummary(assignee),
	}
}
