package repository

import (
	"lms_tracking_backend/internal/model"

	"gorm.io/gorm"
)

// CatalogRepository 课程目录只读访问。目录的增删改由管理端服务负责，
// 这里只暴露进度聚合需要的查询：有效课程、按 order 排序的有效章节与课时。
type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) GetCourse(courseID string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("id = ? AND is_active = ?", courseID, true).First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CatalogRepository) ListActiveChapters(courseID string) ([]model.Chapter, error) {
	var chapters []model.Chapter
	err := r.DB.Where("course_id = ? AND is_active = ?", courseID, true).
		Order("`order` ASC").
		Find(&chapters).Error
	if err != nil {
		return nil, err
	}
	return chapters, nil
}

func (r *CatalogRepository) ListActiveLessonsByCourse(courseID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("course_id = ? AND is_active = ?", courseID, true).
		Order("`order` ASC").
		Find(&lessons).Error
	if err != nil {
		return nil, err
	}
	return lessons, nil
}

func (r *CatalogRepository) ListActiveLessonsByChapter(chapterID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("chapter_id = ? AND is_active = ?", chapterID, true).
		Order("`order` ASC").
		Find(&lessons).Error
	if err != nil {
		return nil, err
	}
	return lessons, nil
}
