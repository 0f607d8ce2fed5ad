// file: internals/features/academy/academies/model/academy_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AcademyModel: satu kampus/cabang akademi, induk semua data lain.
type AcademyModel struct {
	AcademyID        uuid.UUID `json:"academy_id" gorm:"column:academy_id;type:uuid;primaryKey"`
	AcademyName      string    `json:"academy_name" gorm:"column:academy_name;type:varchar(100);not null"`
	AcademyBranch    string    `json:"academy_branch" gorm:"column:academy_branch;type:varchar(100)"`
	AcademyBranchKey string    `json:"academy_branch_key" gorm:"column:academy_branch_key;type:varchar(10);uniqueIndex"` // kode pendek, dipakai prefix nomor copy
	AcademyAddress   string    `json:"academy_address" gorm:"column:academy_address;type:text"`
	AcademyPhone     string    `json:"academy_phone" gorm:"column:academy_phone;type:varchar(30)"`

	AcademyCreatedAt time.Time `json:"academy_created_at" gorm:"column:academy_created_at;autoCreateTime"`
	AcademyUpdatedAt time.Time `json:"academy_updated_at" gorm:"column:academy_updated_at;autoUpdateTime"`
}

func (AcademyModel) TableName() string { return "academies" }

func (m *AcademyModel) BeforeCreate(tx *gorm.DB) error {
	if m.AcademyID == uuid.Nil {
		m.AcademyID = uuid.New()
	}
	return nil
}
