// file: internals/features/academy/users/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel: akun login (student / teacher / manager dibedakan lewat profil).
type UserModel struct {
	UserID       uuid.UUID `json:"user_id" gorm:"column:user_id;type:uuid;primaryKey"`
	UserName     string    `json:"user_name" gorm:"column:user_name;type:varchar(50);not null;uniqueIndex"`
	UserFullName string    `json:"user_full_name" gorm:"column:user_full_name;type:varchar(100);not null"`
	UserPassword string    `json:"-" gorm:"column:user_password;type:varchar(255);not null"`
	UserRole     string    `json:"user_role" gorm:"column:user_role;type:varchar(20);not null;default:'student'"` // student|teacher|manager
	UserIsActive bool      `json:"user_is_active" gorm:"column:user_is_active;not null;default:true"`

	UserCreatedAt time.Time `json:"user_created_at" gorm:"column:user_created_at;autoCreateTime"`
	UserUpdatedAt time.Time `json:"user_updated_at" gorm:"column:user_updated_at;autoUpdateTime"`
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	return nil
}

// StudentModel: profil siswa, terikat ke satu akademi.
type StudentModel struct {
	StudentID        uuid.UUID `json:"student_id" gorm:"column:student_id;type:uuid;primaryKey"`
	StudentUserID    uuid.UUID `json:"student_user_id" gorm:"column:student_user_id;type:uuid;not null;uniqueIndex"`
	StudentAcademyID uuid.UUID `json:"student_academy_id" gorm:"column:student_academy_id;type:uuid;not null;index"`
	StudentGrade     string    `json:"student_grade" gorm:"column:student_grade;type:varchar(20)"`
	StudentParent    string    `json:"student_parent" gorm:"column:student_parent;type:varchar(100)"`
	StudentPhone     string    `json:"student_phone" gorm:"column:student_phone;type:varchar(30)"`

	// waktu rekomendasi buku terakhir (dipakai jendela agregasi performa)
	StudentLastRecommendedAt *time.Time `json:"student_last_recommended_at" gorm:"column:student_last_recommended_at"`

	StudentCreatedAt time.Time `json:"student_created_at" gorm:"column:student_created_at;autoCreateTime"`
	StudentUpdatedAt time.Time `json:"student_updated_at" gorm:"column:student_updated_at;autoUpdateTime"`

	User *UserModel `json:"user,omitempty" gorm:"foreignKey:StudentUserID;references:UserID"`
}

func (StudentModel) TableName() string { return "students" }

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	return nil
}

// TeacherModel: profil pengajar.
type TeacherModel struct {
	TeacherID        uuid.UUID `json:"teacher_id" gorm:"column:teacher_id;type:uuid;primaryKey"`
	TeacherUserID    uuid.UUID `json:"teacher_user_id" gorm:"column:teacher_user_id;type:uuid;not null;uniqueIndex"`
	TeacherAcademyID uuid.UUID `json:"teacher_academy_id" gorm:"column:teacher_academy_id;type:uuid;not null;index"`
	TeacherSubject   string    `json:"teacher_subject" gorm:"column:teacher_subject;type:varchar(50)"`

	TeacherCreatedAt time.Time `json:"teacher_created_at" gorm:"column:teacher_created_at;autoCreateTime"`
	TeacherUpdatedAt time.Time `json:"teacher_updated_at" gorm:"column:teacher_updated_at;autoUpdateTime"`

	User *UserModel `json:"user,omitempty" gorm:"foreignKey:TeacherUserID;references:UserID"`
}

func (TeacherModel) TableName() string { return "teachers" }

func (m *TeacherModel) BeforeCreate(tx *gorm.DB) error {
	if m.TeacherID == uuid.Nil {
		m.TeacherID = uuid.New()
	}
	return nil
}
