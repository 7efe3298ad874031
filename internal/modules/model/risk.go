package model

import "time"

type RiskStatus string

const (
	RiskOpen      RiskStatus = "Open"
	RiskMitigated RiskStatus = "Mitigated"
	RiskClosed    RiskStatus = "Closed"
)

func (s RiskStatus) Valid() bool {
	switch s {
	case RiskOpen, RiskMitigated, RiskClosed:
		return true
	}
	return false
}

type Risk struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ProjectID uint `gorm:"not null;index" json:"project_id"`

	Description string     `gorm:"type:text;not null" json:"description"`
	Likelihood  Priority   `gorm:"type:text;not null;default:'Medium';check:likelihood IN ('High','Medium','Low')" json:"likelihood"`
	Impact      Priority   `gorm:"type:text;not null;default:'Medium';check:impact IN ('High','Medium','Low')" json:"impact"`
	Mitigation  string     `gorm:"type:text" json:"mitigation"`
	Owner       string     `gorm:"type:text" json:"owner"`
	Status      RiskStatus `gorm:"type:text;not null;default:'Open';check:status IN ('Open','Mitigated','Closed')" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"project,omitempty"`
}

func (Risk) TableName() string { return "risks" }
