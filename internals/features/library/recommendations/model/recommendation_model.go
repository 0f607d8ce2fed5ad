// file: internals/features/library/recommendations/model/recommendation_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RecommendationModel: histori rekomendasi paket per siswa. Judul terpilih
// disimpan (memo) supaya query ulang mengembalikan buku yang sama, bukan
// roll baru, dan supaya ekslusi histori paket tetap akurat.
type RecommendationModel struct {
	RecommendationID        uuid.UUID `json:"recommendation_id" gorm:"column:recommendation_id;type:uuid;primaryKey"`
	RecommendationStudentID uuid.UUID `json:"recommendation_student_id" gorm:"column:recommendation_student_id;type:uuid;not null;index"`
	RecommendationFnf       string    `json:"recommendation_fnf" gorm:"column:recommendation_fnf;type:varchar(1);not null;index"`
	RecommendationPkgName   string    `json:"recommendation_pkg_name" gorm:"column:recommendation_pkg_name;type:varchar(50);not null"`

	RecommendationSelectedBooks datatypes.JSONSlice[uuid.UUID] `json:"recommendation_selected_books" gorm:"column:recommendation_selected_books"`

	RecommendationCreatedAt time.Time `json:"recommendation_created_at" gorm:"column:recommendation_created_at;autoCreateTime;index"`
}

func (RecommendationModel) TableName() string { return "recommendations" }

func (m *RecommendationModel) BeforeCreate(tx *gorm.DB) error {
	if m.RecommendationID == uuid.Nil {
		m.RecommendationID = uuid.New()
	}
	return nil
}
