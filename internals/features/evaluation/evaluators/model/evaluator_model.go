// internals/features/evaluation/evaluators/model/evaluator_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleReviewer = "reviewer"
	RoleJuri     = "juri"
)

type EvaluatorModel struct {
	EvaluatorID     uuid.UUID `gorm:"column:evaluator_id;type:uuid;default:gen_random_uuid();primaryKey" json:"evaluator_id"`
	EvaluatorUserID uuid.UUID `gorm:"column:evaluator_user_id;type:uuid;not null;uniqueIndex" json:"evaluator_user_id"`

	EvaluatorName string `gorm:"column:evaluator_name;type:varchar(120);not null" json:"evaluator_name"`
	EvaluatorRole string `gorm:"column:evaluator_role;type:varchar(16);not null;index" json:"evaluator_role"`

	EvaluatorIsActive  bool           `gorm:"column:evaluator_is_active;not null;default:true" json:"evaluator_is_active"`
	EvaluatorCreatedAt time.Time      `gorm:"column:evaluator_created_at;not null;autoCreateTime" json:"evaluator_created_at"`
	EvaluatorUpdatedAt time.Time      `gorm:"column:evaluator_updated_at;not null;autoUpdateTime" json:"evaluator_updated_at"`
	EvaluatorDeletedAt gorm.DeletedAt `gorm:"column:evaluator_deleted_at;index" json:"evaluator_deleted_at,omitempty"`
}

func (EvaluatorModel) TableName() string { return "evaluators" }

func ValidRole(role string) bool {
	return role == RoleReviewer || role == RoleJuri
}
