package repository

import (
	"lms_tracking_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

// CreateWithForecast 报名记录与排期预估记录在同一事务中创建。
// (student_id, course_id) 唯一索引兜底并发重复报名，冲突由调用方转译。
func (r *EnrollmentRepository) CreateWithForecast(enrollment *model.Enrollment, forecast *model.CourseForecast) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(enrollment).Error; err != nil {
			return err
		}
		forecast.EnrollmentID = enrollment.ID
		return tx.Create(forecast).Error
	})
}

func (r *EnrollmentRepository) FindByID(enrollmentID string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("id = ?", enrollmentID).First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) FindByStudentAndCourse(studentID, courseID string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// UpdateProgressSummary 聚合回写，只更新汇总字段
func (r *EnrollmentRepository) UpdateProgressSummary(enrollmentID string, fields map[string]interface{}) error {
	return r.DB.Model(&model.Enrollment{}).
		Where("id = ?", enrollmentID).
		Updates(fields).Error
}
