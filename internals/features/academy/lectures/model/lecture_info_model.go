// file: internals/features/academy/lectures/model/lecture_info_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NoRepeatDay: sentinel hari untuk kuliah sekali jalan (tanpa pengulangan).
const NoRepeatDay = -1

// LectureInfoModel: template kuliah berulang.
// RepeatDays = kumpulan index hari (0=Senin .. 6=Minggu) atau [-1] untuk sekali jalan.
type LectureInfoModel struct {
	LectureInfoID          uuid.UUID                `json:"lecture_info_id" gorm:"column:lecture_info_id;type:uuid;primaryKey"`
	LectureInfoAcademyID   uuid.UUID                `json:"lecture_info_academy_id" gorm:"column:lecture_info_academy_id;type:uuid;not null;index"`
	LectureInfoTeacherID   uuid.UUID                `json:"lecture_info_teacher_id" gorm:"column:lecture_info_teacher_id;type:uuid;not null;index"`
	LectureInfoDescription string                   `json:"lecture_info_description" gorm:"column:lecture_info_description;type:text"`
	LectureInfoRepeatDays  datatypes.JSONSlice[int] `json:"lecture_info_repeat_days" gorm:"column:lecture_info_repeat_days"`
	LectureInfoRepeatWeeks int                      `json:"lecture_info_repeat_weeks" gorm:"column:lecture_info_repeat_weeks;not null;default:1"`
	LectureInfoAutoAdd     bool                     `json:"lecture_info_auto_add" gorm:"column:lecture_info_auto_add;not null;default:false"`

	LectureInfoCreatedAt time.Time `json:"lecture_info_created_at" gorm:"column:lecture_info_created_at;autoCreateTime"`
	LectureInfoUpdatedAt time.Time `json:"lecture_info_updated_at" gorm:"column:lecture_info_updated_at;autoUpdateTime"`
}

func (LectureInfoModel) TableName() string { return "lecture_infos" }

func (m *LectureInfoModel) BeforeCreate(tx *gorm.DB) error {
	if m.LectureInfoID == uuid.Nil {
		m.LectureInfoID = uuid.New()
	}
	return nil
}

// IsNoRepeat: template sekali jalan bila kosong atau mengandung sentinel -1.
func (m *LectureInfoModel) IsNoRepeat() bool {
	if len(m.LectureInfoRepeatDays) == 0 {
		return true
	}
	for _, d := range m.LectureInfoRepeatDays {
		if d == NoRepeatDay {
			return true
		}
	}
	return false
}

// RepeatDaySet: hari valid (0..6) dalam bentuk slice terurut apa adanya.
func (m *LectureInfoModel) RepeatDaySet() []int {
	out := make([]int, 0, len(m.LectureInfoRepeatDays))
	for _, d := range m.LectureInfoRepeatDays {
		if d >= 0 && d <= 6 {
			out = append(out, d)
		}
	}
	return out
}
