package model

import (
	"time"
)

type TaskStatus string

const (
	TaskNotStarted TaskStatus = "Not Started"
	TaskInProgress TaskStatus = "In Progress"
	TaskComplete   TaskStatus = "Complete"
	TaskOnHold     TaskStatus = "On Hold"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskNotStarted, TaskInProgress, TaskComplete, TaskOnHold:
		return true
	}
	return false
}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

type Approval string

const (
	ApprovalYes Approval = "Yes"
	ApprovalNo  Approval = "No"
)

func (a Approval) Valid() bool { return a == ApprovalYes || a == ApprovalNo }

type Task struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ProjectID uint `gorm:"not null;index:ix_task_project_id;uniqueIndex:uq_project_task_code,priority:1" json:"project_id"`

	// Code is the human-readable task identifier ("T001"), unique within a
	// project only, never reused after deletion.
	Code string `gorm:"type:varchar(16);not null;uniqueIndex:uq_project_task_code,priority:2" json:"task_id"`

	Description string `gorm:"type:text;not null" json:"description"`

	StartDate    *time.Time `gorm:"type:date" json:"start_date"`
	DueDate      *time.Time `gorm:"type:date" json:"due_date"`
	DurationDays *int       `json:"duration_days"`

	// Dependency is a comma-separated list of sibling task codes
	// (case-insensitive). Dangling codes are legal; they are surfaced by
	// dependency validation, not rejected at write time.
	Dependency string `gorm:"type:text" json:"dependency"`

	Owner    string     `gorm:"type:text" json:"owner"`
	Status   TaskStatus `gorm:"type:text;not null;default:'Not Started';check:status IN ('Not Started','In Progress','Complete','On Hold')" json:"status"`
	Priority Priority   `gorm:"type:text;not null;default:'Medium';check:priority IN ('High','Medium','Low')" json:"priority"`
	Phase    string     `gorm:"type:text" json:"phase"`

	BudgetCents       int64 `gorm:"not null;default:0" json:"budget_cents"`
	ActualBudgetCents int64 `gorm:"not null;default:0" json:"actual_budget_cents"`

	ApprovalRequired Approval `gorm:"type:text;not null;default:'No';check:approval_required IN ('Yes','No')" json:"approval_required"`
	Approver         string   `gorm:"type:text" json:"approver"`

	CompletionPercent int    `gorm:"not null;default:0;check:completion_percent >= 0 AND completion_percent <= 100" json:"completion_percent"`
	Notes             string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Task <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"project,omitempty"`
}

func (Task) TableName() string { return "tasks" }
