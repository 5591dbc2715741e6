package postgres

import (
	"time"

	"taskmaster/domain/models"
)

// Seq columns preserve insertion order, which every list relies on.

type userRecord struct {
	ID        string `gorm:"primaryKey;size:36"`
	Seq       int64  `gorm:"autoIncrement;uniqueIndex"`
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	FirstName string
	LastName  string
	CreatedAt time.Time
}

func (userRecord) TableName() string { return "users" }

type projectRecord struct {
	ID          string `gorm:"primaryKey;size:36"`
	Seq         int64  `gorm:"autoIncrement;uniqueIndex"`
	Name        string `gorm:"not null"`
	Slug        string `gorm:"index"`
	Description string
	OwnerID     string                `gorm:"size:36;index;not null"`
	Members     []projectMemberRecord `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (projectRecord) TableName() string { return "projects" }

type projectMemberRecord struct {
	ProjectID string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"primaryKey;size:36;index"`
	Seq       int64  `gorm:"autoIncrement;uniqueIndex"`
}

func (projectMemberRecord) TableName() string { return "project_members" }

// Tasks and comments carry no foreign keys: deleting a project or task leaves them orphaned.
type taskRecord struct {
	ID          string  `gorm:"primaryKey;size:36"`
	Seq         int64   `gorm:"autoIncrement;uniqueIndex"`
	Title       string  `gorm:"not null"`
	Description string
	ProjectID   string  `gorm:"size:36;index;not null"`
	AssignedTo  *string `gorm:"size:36;index"`
	Status      string  `gorm:"size:16;not null"`
	Priority    string  `gorm:"size:16;not null"`
	CreatedBy   string  `gorm:"size:36;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (taskRecord) TableName() string { return "tasks" }

type commentRecord struct {
	ID        string `gorm:"primaryKey;size:36"`
	Seq       int64  `gorm:"autoIncrement;uniqueIndex"`
	TaskID    string `gorm:"size:36;index;not null"`
	Content   string `gorm:"not null"`
	AuthorID  string `gorm:"size:36;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (commentRecord) TableName() string { return "comments" }

func newUserRecord(u *models.User) *userRecord {
	return &userRecord{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
	}
}

func (r *userRecord) toModel() *models.User {
	return &models.User{
		ID:        r.ID,
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		CreatedAt: r.CreatedAt,
	}
}

func newProjectRecord(p *models.Project) *projectRecord {
	return &projectRecord{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func memberRecords(p *models.Project) []projectMemberRecord {
	rows := make([]projectMemberRecord, 0, len(p.Members))
	for _, id := range p.Members {
		rows = append(rows, projectMemberRecord{ProjectID: p.ID, UserID: id})
	}
	return rows
}

func (r *projectRecord) toModel() *models.Project {
	members := make([]string, 0, len(r.Members))
	for _, m := range r.Members {
		members = append(members, m.UserID)
	}
	return &models.Project{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		OwnerID:     r.OwnerID,
		Members:     members,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func newTaskRecord(t *models.Task) *taskRecord {
	return &taskRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		ProjectID:   t.ProjectID,
		AssignedTo:  t.AssignedTo,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (r *taskRecord) toModel() *models.Task {
	return &models.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		ProjectID:   r.ProjectID,
		AssignedTo:  r.AssignedTo,
		Status:      models.TaskStatus(r.Status),
		Priority:    models.TaskPriority(r.Priority),
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func newCommentRecord(c *models.Comment) *commentRecord {
	return &commentRecord{
		ID:        c.ID,
		TaskID:    c.TaskID,
		Content:   c.Content,
		AuthorID:  c.AuthorID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *commentRecord) toModel() *models.Comment {
	return &models.Comment{
		ID:        r.ID,
		TaskID:    r.TaskID,
		Content:   r.Content,
		AuthorID:  r.AuthorID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
