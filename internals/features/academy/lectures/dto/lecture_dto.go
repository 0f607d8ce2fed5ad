// file: internals/features/academy/lectures/dto/lecture_dto.go
package dto

import "github.com/google/uuid"

// =======================
// Request
// =======================

type CreateLectureRequest struct {
	AcademyID   uuid.UUID   `json:"academy_id" validate:"required"`
	TeacherID   uuid.UUID   `json:"teacher_id" validate:"required"`
	Date        string      `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string      `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string      `json:"end_time" validate:"required,datetime=15:04"`
	Memo        string      `json:"memo"`
	Description string      `json:"description"`
	RepeatDays  []int       `json:"repeat_days"` // 0=Senin..6=Minggu, [-1] sekali jalan
	RepeatWeeks int         `json:"repeat_weeks" validate:"omitempty,min=1,max=52"`
	AutoAdd     bool        `json:"auto_add"`
	StudentIDs  []uuid.UUID `json:"student_ids"`
}

type UpdateLectureInfoRequest struct {
	EffectiveDate string      `json:"effective_date" validate:"required,datetime=2006-01-02"`
	StartTime     string      `json:"start_time" validate:"required,datetime=15:04"`
	EndTime       string      `json:"end_time" validate:"required,datetime=15:04"`
	Memo          string      `json:"memo"`
	Description   *string     `json:"description"`
	RepeatDays    []int       `json:"repeat_days"`
	RepeatWeeks   int         `json:"repeat_weeks" validate:"omitempty,min=1,max=52"`
	AutoAdd       *bool       `json:"auto_add"`
	StudentIDs    []uuid.UUID `json:"student_ids"`
}

type UpdateLectureRequest struct {
	StartTime *string `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime   *string `json:"end_time" validate:"omitempty,datetime=15:04"`
	Memo      *string `json:"memo"`
}

type MakeupLectureRequest struct {
	Date       string      `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime  string      `json:"start_time" validate:"required,datetime=15:04"`
	EndTime    string      `json:"end_time" validate:"required,datetime=15:04"`
	Memo       string      `json:"memo"`
	StudentIDs []uuid.UUID `json:"student_ids"`
}

type RosterRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
}

// =======================
// Response
// =======================

type LectureResponse struct {
	LectureID     uuid.UUID   `json:"lecture_id"`
	LectureInfoID uuid.UUID   `json:"lecture_info_id"`
	AcademyID     uuid.UUID   `json:"academy_id"`
	TeacherID     uuid.UUID   `json:"teacher_id"`
	Date          string      `json:"date"`
	StartTime     string      `json:"start_time"`
	EndTime       string      `json:"end_time"`
	Memo          string      `json:"memo"`
	StudentIDs    []uuid.UUID `json:"student_ids,omitempty"`
}

type LectureInfoResponse struct {
	LectureInfoID uuid.UUID `json:"lecture_info_id"`
	Description   string    `json:"description"`
	RepeatDays    []int     `json:"repeat_days"`
	RepeatWeeks   int       `json:"repeat_weeks"`
	AutoAdd       bool      `json:"auto_add"`
	LectureCount  int       `json:"lecture_count"`
}
