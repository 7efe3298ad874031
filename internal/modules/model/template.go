package model

import "time"

// Template is a reusable task list that can be applied to a project to seed
// its plan. Seeded tasks go through the task code allocator like any other
// create, so template tasks carry no codes of their own.
type Template struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"type:text;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Tasks []TemplateTask `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"tasks,omitempty"`
}

func (Template) TableName() string { return "templates" }

type TemplateTask struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	TemplateID uint `gorm:"not null;index" json:"template_id"`

	// SortOrder fixes the seeding order, which in turn fixes the allocated
	// task codes.
	SortOrder int `gorm:"not null;default:0" json:"sort_order"`

	Description  string   `gorm:"type:text;not null" json:"description"`
	DurationDays *int     `json:"duration_days"`
	Phase        string   `gorm:"type:text" json:"phase"`
	Priority     Priority `gorm:"type:text;not null;default:'Medium';check:priority IN ('High','Medium','Low')" json:"priority"`
	Owner        string   `gorm:"type:text" json:"owner"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Template *Template `gorm:"foreignKey:TemplateID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"template,omitempty"`
}

func (TemplateTask) TableName() string { return "template_tasks" }
