package models

import (
	"slices"
	"time"
)

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	OwnerID     string    `json:"ownerId"`
	Members     []string  `json:"members"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p *Project) IsOwner(userID string) bool {
	return p.OwnerID == userID
}

func (p *Project) IsMember(userID string) bool {
	return slices.Contains(p.Members, userID)
}

// HasAccess is true for the owner and every member.
func (p *Project) HasAccess(userID string) bool {
	return p.IsOwner(userID) || p.IsMember(userID)
}

// Clone returns a copy that shares no memory with p.
func (p *Project) Clone() *Project {
	cp := *p
	cp.Members = slices.Clone(p.Members)
	return &cp
}
