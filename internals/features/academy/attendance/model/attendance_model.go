// file: internals/features/academy/attendance/model/attendance_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status absensi.
const (
	AttendanceStatusCheckedIn = "checked_in"
	AttendanceStatusCompleted = "completed"
	AttendanceStatusCancelled = "cancelled"
	AttendanceStatusLate      = "late"
	AttendanceStatusAbsent    = "absent"
	AttendanceStatusMakeup    = "makeup"
)

// AttendanceModel: catatan hadir satu siswa di satu pertemuan.
type AttendanceModel struct {
	AttendanceID        uuid.UUID `json:"attendance_id" gorm:"column:attendance_id;type:uuid;primaryKey"`
	AttendanceLectureID uuid.UUID `json:"attendance_lecture_id" gorm:"column:attendance_lecture_id;type:uuid;not null;index;uniqueIndex:uq_attendance_lecture_student"`
	AttendanceStudentID uuid.UUID `json:"attendance_student_id" gorm:"column:attendance_student_id;type:uuid;not null;index;uniqueIndex:uq_attendance_lecture_student"`

	AttendanceStatus    string     `json:"attendance_status" gorm:"column:attendance_status;type:varchar(20);not null;default:'checked_in'"`
	AttendanceEnteredAt *time.Time `json:"attendance_entered_at" gorm:"column:attendance_entered_at"`
	AttendanceExitedAt  *time.Time `json:"attendance_exited_at" gorm:"column:attendance_exited_at"`

	AttendanceCreatedAt time.Time `json:"attendance_created_at" gorm:"column:attendance_created_at;autoCreateTime"`
	AttendanceUpdatedAt time.Time `json:"attendance_updated_at" gorm:"column:attendance_updated_at;autoUpdateTime"`
}

func (AttendanceModel) TableName() string { return "attendances" }

func (m *AttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceID == uuid.Nil {
		m.AttendanceID = uuid.New()
	}
	return nil
}
