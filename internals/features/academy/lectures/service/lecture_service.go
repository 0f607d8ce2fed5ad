// file: internals/features/academy/lectures/service/lecture_service.go
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	lectureModel "academyku_backend/internals/features/academy/lectures/model"
	helper "academyku_backend/internals/helpers"
)

var ErrConflict = errors.New("konflik data")

/* =======================================================
   Operasi per instance (di luar mesin expand)
======================================================= */

// UpdateLecture: edit satu pertemuan (memo / jam) tanpa menyentuh template.
func (s *ExpanderService) UpdateLecture(lectureID uuid.UUID, startTime, endTime, memo *string) (*lectureModel.LectureModel, error) {
	var lec lectureModel.LectureModel
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&lec, "lecture_id = ?", lectureID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("lecture %s: %w", lectureID, ErrNotFound)
			}
			return err
		}
		if startTime != nil {
			if !validTimeOfDay(*startTime) {
				return fmt.Errorf("jam mulai harus HH:MM: %w", ErrInvalidRule)
			}
			lec.LectureStartTime = *startTime
		}
		if endTime != nil {
			if !validTimeOfDay(*endTime) {
				return fmt.Errorf("jam selesai harus HH:MM: %w", ErrInvalidRule)
			}
			lec.LectureEndTime = *endTime
		}
		if memo != nil {
			lec.LectureMemo = *memo
		}
		return tx.Save(&lec).Error
	})
	if err != nil {
		return nil, err
	}
	return &lec, nil
}

// AddStudent: tambah siswa ke roster satu pertemuan.
// Duplikat roster → ErrConflict (dijaga unique index, bukan read-then-write).
func (s *ExpanderService) AddStudent(lectureID, studentID uuid.UUID) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var lec lectureModel.LectureModel
		if err := tx.First(&lec, "lecture_id = ?", lectureID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("lecture %s: %w", lectureID, ErrNotFound)
			}
			return err
		}
		if _, err := s.Identity.ResolveStudent(tx, studentID); err != nil {
			return err
		}
		row := lectureModel.LectureStudentModel{
			LectureStudentLectureID: lectureID,
			LectureStudentStudentID: studentID,
		}
		if err := tx.Create(&row).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fmt.Errorf("siswa sudah terdaftar di pertemuan ini: %w", ErrConflict)
			}
			return err
		}
		return nil
	})
}

// RemoveStudent: keluarkan siswa dari roster satu pertemuan.
func (s *ExpanderService) RemoveStudent(lectureID, studentID uuid.UUID) error {
	res := s.DB.Where("lecture_student_lecture_id = ? AND lecture_student_student_id = ?", lectureID, studentID).
		Delete(&lectureModel.LectureStudentModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("roster: %w", ErrNotFound)
	}
	return nil
}

// CreateMakeup: pertemuan susulan satu kali di bawah template yang sudah ada.
// Boleh menumpuk dengan tanggal reguler (tidak ada guard unik di lectures).
func (s *ExpanderService) CreateMakeup(infoID uuid.UUID, date time.Time, startTime, endTime, memo string, studentIDs []uuid.UUID) (*lectureModel.LectureModel, error) {
	if !validTimeOfDay(startTime) || !validTimeOfDay(endTime) {
		return nil, fmt.Errorf("jam mulai/selesai harus HH:MM: %w", ErrInvalidRule)
	}

	var lec lectureModel.LectureModel
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var info lectureModel.LectureInfoModel
		if err := tx.First(&info, "lecture_info_id = ?", infoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("lecture info %s: %w", infoID, ErrNotFound)
			}
			return err
		}
		if _, err := s.Identity.ResolveStudents(tx, studentIDs); err != nil {
			return err
		}

		created, err := s.createInstances(tx, &info, date, startTime, endTime, memo, studentIDs, []time.Time{dateOnly(date)})
		if err != nil {
			return err
		}
		lec = created[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &lec, nil
}

/* =======================================================
   Query
======================================================= */

// ListLectures: pertemuan per akademi, opsional rentang tanggal, urut tanggal.
func (s *ExpanderService) ListLectures(academyID uuid.UUID, from, to time.Time, offset, limit int) ([]lectureModel.LectureModel, int64, error) {
	q := s.DB.Model(&lectureModel.LectureModel{}).Where("lecture_academy_id = ?", academyID)
	if !from.IsZero() {
		q = q.Where("lecture_date >= ?", dateOnly(from))
	}
	if !to.IsZero() {
		q = q.Where("lecture_date <= ?", dateOnly(to))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []lectureModel.LectureModel
	if err := q.Order("lecture_date ASC, lecture_start_time ASC").
		Offset(offset).Limit(limit).
		Preload("Students").
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// GetLecture: detail satu pertemuan + roster + template.
func (s *ExpanderService) GetLecture(lectureID uuid.UUID) (*lectureModel.LectureModel, error) {
	var lec lectureModel.LectureModel
	err := s.DB.Preload("Students").Preload("Info").
		First(&lec, "lecture_id = ?", lectureID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("lecture %s: %w", lectureID, ErrNotFound)
		}
		return nil, err
	}
	return &lec, nil
}
