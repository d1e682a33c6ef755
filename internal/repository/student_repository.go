package repository

import (
	"lms_tracking_backend/internal/model"

	"gorm.io/gorm"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) GetActiveStudent(studentID string) (*model.Student, error) {
	var student model.Student
	err := r.DB.Where("id = ? AND is_active = ?", studentID, true).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}
