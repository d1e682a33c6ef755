package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lms_tracking_backend/internal/model"
	"lms_tracking_backend/internal/repository"
	"lms_tracking_backend/internal/util"
	"lms_tracking_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EnrollmentService 负责报名生命周期：校验课程与学员、创建报名与排期
// 预估记录、整批初始化课时进度
type EnrollmentService struct {
	CatalogRepo    *repository.CatalogRepository
	StudentRepo    *repository.StudentRepository
	EnrollmentRepo *repository.EnrollmentRepository
	ProgressRepo   *repository.LessonProgressRepository
	CourseProgress *CourseProgressService
}

func NewEnrollmentService(
	catalogRepo *repository.CatalogRepository,
	studentRepo *repository.StudentRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	progressRepo *repository.LessonProgressRepository,
	courseProgress *CourseProgressService,
) *EnrollmentService {
	return &EnrollmentService{
		CatalogRepo:    catalogRepo,
		StudentRepo:    studentRepo,
		EnrollmentRepo: enrollmentRepo,
		ProgressRepo:   progressRepo,
		CourseProgress: courseProgress,
	}
}

// EnrollmentDetails 报名记录及其章节维度进度
type EnrollmentDetails struct {
	Enrollment      *model.Enrollment `json:"enrollment"`
	ChapterProgress []ChapterProgress `json:"chapterProgress"`
}

// Enroll 为学员创建课程报名，返回新报名ID。
// 进度初始化失败时报名记录保留，不一致由下次读取容忍（按 0% 处理）。
func (s *EnrollmentService) Enroll(studentID, courseID string, paymentID *string) (string, error) {
	course, err := s.CatalogRepo.GetCourse(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrCourseNotFound
		}
		return "", err
	}

	if _, err = s.StudentRepo.GetActiveStudent(studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrStudentNotFound
		}
		return "", err
	}

	if _, err = s.EnrollmentRepo.FindByStudentAndCourse(studentID, courseID); err == nil {
		return "", util.ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	enrollment := &model.Enrollment{
		StudentID:         studentID,
		CourseID:          courseID,
		EnrolledAt:        time.Now(),
		PaymentID:         paymentID,
		Status:            model.EnrollmentActive,
		OverallProgress:   0,
		CompletedChapters: json.RawMessage("[]"),
		CertificateIssued: false,
	}
	forecast := &model.CourseForecast{
		StudentID:         studentID,
		CourseID:          courseID,
		CurrentAttempt:    1,
		RemainingAttempts: 3,
	}

	if err = s.EnrollmentRepo.CreateWithForecast(enrollment, forecast); err != nil {
		// 并发报名被唯一索引拦下
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", util.ErrAlreadyEnrolled
		}
		return "", err
	}

	if err = s.seedLessonProgress(enrollment); err != nil {
		logger.Log.Error("lesson progress seeding failed, enrollment left without progress records",
			zap.String("enrollmentId", enrollment.ID),
			zap.String("courseId", course.ID),
			zap.Error(err))
		return "", fmt.Errorf("initialize lesson progress: %w", err)
	}

	return enrollment.ID, nil
}

// seedLessonProgress 按课程当前有效课时整批建progress记录，整批成功或整批失败
func (s *EnrollmentService) seedLessonProgress(enrollment *model.Enrollment) error {
	lessons, err := s.CatalogRepo.ListActiveLessonsByCourse(enrollment.CourseID)
	if err != nil {
		return err
	}

	records := make([]model.LessonProgress, 0, len(lessons))
	now := time.Now()
	for _, lesson := range lessons {
		records = append(records, model.LessonProgress{
			EnrollmentID:   enrollment.ID,
			LessonID:       lesson.ID,
			StudentID:      enrollment.StudentID,
			CourseID:       enrollment.CourseID,
			ChapterID:      lesson.ChapterID,
			LastAccessedAt: now,
		})
	}

	return s.ProgressRepo.Seed(records)
}

// GetEnrollmentDetails 按 (学员, 课程) 取报名记录并附带章节进度
func (s *EnrollmentService) GetEnrollmentDetails(studentID, courseID string) (*EnrollmentDetails, error) {
	enrollment, err := s.EnrollmentRepo.FindByStudentAndCourse(studentID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEnrollmentNotFound
		}
		return nil, err
	}

	chapters, err := s.CourseProgress.GetChapterProgress(enrollment.ID)
	if err != nil {
		return nil, err
	}

	return &EnrollmentDetails{
		Enrollment:      enrollment,
		ChapterProgress: chapters,
	}, nil
}
