// file: internals/features/academy/users/service/identity_service.go
package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	academyModel "academyku_backend/internals/features/academy/academies/model"
	userModel "academyku_backend/internals/features/academy/users/model"
)

var ErrNotFound = errors.New("data tidak ditemukan")

// IdentityService: resolver id → record untuk academy/teacher/student.
// Dipakai expander & allocator; semua kegagalan lookup jadi ErrNotFound.
type IdentityService struct {
	DB *gorm.DB
}

func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{DB: db}
}

func (s *IdentityService) ResolveAcademy(tx *gorm.DB, id uuid.UUID) (*academyModel.AcademyModel, error) {
	if tx == nil {
		tx = s.DB
	}
	var a academyModel.AcademyModel
	if err := tx.First(&a, "academy_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("academy %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &a, nil
}

func (s *IdentityService) ResolveTeacher(tx *gorm.DB, id uuid.UUID) (*userModel.TeacherModel, error) {
	if tx == nil {
		tx = s.DB
	}
	var t userModel.TeacherModel
	if err := tx.First(&t, "teacher_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("teacher %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &t, nil
}

func (s *IdentityService) ResolveStudent(tx *gorm.DB, id uuid.UUID) (*userModel.StudentModel, error) {
	if tx == nil {
		tx = s.DB
	}
	var st userModel.StudentModel
	if err := tx.First(&st, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("student %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &st, nil
}

// ResolveStudents: semua id harus ada; satu saja hilang → ErrNotFound.
func (s *IdentityService) ResolveStudents(tx *gorm.DB, ids []uuid.UUID) ([]userModel.StudentModel, error) {
	if tx == nil {
		tx = s.DB
	}
	if len(ids) == 0 {
		return nil, nil
	}
	var list []userModel.StudentModel
	if err := tx.Where("student_id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	if len(list) != len(uniqueIDs(ids)) {
		return nil, fmt.Errorf("sebagian student id: %w", ErrNotFound)
	}
	return list, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
