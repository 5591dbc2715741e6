package dto

type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UpdateProjectRequest: an empty name is ignored, a present description replaces the old one.
type UpdateProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type AddMemberRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
