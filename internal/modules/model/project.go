package model

import (
	"time"

	"gorm.io/datatypes"
)

type ProjectStatus string

const (
	ProjectPlanning ProjectStatus = "Planning"
	ProjectActive   ProjectStatus = "Active"
	ProjectOnHold   ProjectStatus = "On Hold"
	ProjectCloseout ProjectStatus = "Closeout"
	ProjectComplete ProjectStatus = "Complete"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectActive, ProjectOnHold, ProjectCloseout, ProjectComplete:
		return true
	}
	return false
}

type Project struct {
	ID     uint          `gorm:"primaryKey" json:"id"`
	Name   string        `gorm:"type:text;not null" json:"name"`
	Status ProjectStatus `gorm:"type:text;not null;default:'Planning';check:status IN ('Planning','Active','On Hold','Closeout','Complete')" json:"status"`

	// Calendar dates, normalized to midnight UTC. No time-of-day semantics.
	StartDate            *time.Time `gorm:"type:date" json:"start_date"`
	TargetCompletionDate *time.Time `gorm:"type:date" json:"target_completion_date"`

	// Integer minor currency units (cents).
	BudgetCents int64 `gorm:"not null;default:0" json:"budget_cents"`

	Settings datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"settings"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Project <-> Task
	Tasks []Task `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"tasks,omitempty"`

	// Project <-> Risk
	Risks []Risk `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"risks,omitempty"`
}

func (Project) TableName() string { return "projects" }
