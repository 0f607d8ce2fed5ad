// file: internals/features/academy/lectures/model/lecture_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LectureModel: satu pertemuan bertanggal hasil expand dari LectureInfoModel.
// Catatan: sengaja TIDAK ada unique index (info_id, date, start_time) — kuliah
// susulan (makeup) boleh menumpuk pada tanggal yang sama.
type LectureModel struct {
	LectureID            uuid.UUID `json:"lecture_id" gorm:"column:lecture_id;type:uuid;primaryKey"`
	LectureLectureInfoID uuid.UUID `json:"lecture_lecture_info_id" gorm:"column:lecture_lecture_info_id;type:uuid;not null;index"`
	LectureAcademyID     uuid.UUID `json:"lecture_academy_id" gorm:"column:lecture_academy_id;type:uuid;not null;index"`
	LectureTeacherID     uuid.UUID `json:"lecture_teacher_id" gorm:"column:lecture_teacher_id;type:uuid;not null;index"`

	LectureDate      time.Time `json:"lecture_date" gorm:"column:lecture_date;type:date;not null;index"`
	LectureStartTime string    `json:"lecture_start_time" gorm:"column:lecture_start_time;type:varchar(5);not null"` // "15:04"
	LectureEndTime   string    `json:"lecture_end_time" gorm:"column:lecture_end_time;type:varchar(5);not null"`
	LectureMemo      string    `json:"lecture_memo" gorm:"column:lecture_memo;type:text"`

	LectureCreatedAt time.Time `json:"lecture_created_at" gorm:"column:lecture_created_at;autoCreateTime"`
	LectureUpdatedAt time.Time `json:"lecture_updated_at" gorm:"column:lecture_updated_at;autoUpdateTime"`

	Info     *LectureInfoModel     `json:"info,omitempty" gorm:"foreignKey:LectureLectureInfoID;references:LectureInfoID"`
	Students []LectureStudentModel `json:"students,omitempty" gorm:"foreignKey:LectureStudentLectureID;references:LectureID"`
}

func (LectureModel) TableName() string { return "lectures" }

func (m *LectureModel) BeforeCreate(tx *gorm.DB) error {
	if m.LectureID == uuid.Nil {
		m.LectureID = uuid.New()
	}
	return nil
}

// LectureStudentModel: roster — siswa yang terdaftar di satu pertemuan.
type LectureStudentModel struct {
	LectureStudentID        uuid.UUID `json:"lecture_student_id" gorm:"column:lecture_student_id;type:uuid;primaryKey"`
	LectureStudentLectureID uuid.UUID `json:"lecture_student_lecture_id" gorm:"column:lecture_student_lecture_id;type:uuid;not null;index;uniqueIndex:uq_lecture_student"`
	LectureStudentStudentID uuid.UUID `json:"lecture_student_student_id" gorm:"column:lecture_student_student_id;type:uuid;not null;index;uniqueIndex:uq_lecture_student"`

	LectureStudentCreatedAt time.Time `json:"lecture_student_created_at" gorm:"column:lecture_student_created_at;autoCreateTime"`
}

func (LectureStudentModel) TableName() string { return "lecture_students" }

func (m *LectureStudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.LectureStudentID == uuid.Nil {
		m.LectureStudentID = uuid.New()
	}
	return nil
}
