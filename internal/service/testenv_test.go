package service

import (
	"fmt"
	"testing"

	"lms_tracking_backend/internal/model"
	"lms_tracking_backend/internal/repository"
	"lms_tracking_backend/pkg/database"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv 完整的服务编排加一份标准目录：
// 一个课程，两个章节，章节一含课时 L1/L2，章节二含课时 L3。
type testEnv struct {
	DB             *gorm.DB
	Student        *model.Student
	Course         *model.Course
	Chapter1       *model.Chapter
	Chapter2       *model.Chapter
	Lesson1        *model.Lesson
	Lesson2        *model.Lesson
	Lesson3        *model.Lesson
	EnrollmentRepo *repository.EnrollmentRepository
	ProgressRepo   *repository.LessonProgressRepository
	Enrollment     *EnrollmentService
	Progress       *ProgressService
	CourseProgress *CourseProgressService
	Payment        *PaymentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	env := &testEnv{DB: db}

	env.Student = &model.Student{Name: "测试学员", Email: "student@example.com", IsActive: true}
	env.Course = &model.Course{CourseName: "Go 进阶", IsActive: true}
	mustCreate(t, db, env.Student)
	mustCreate(t, db, env.Course)

	env.Chapter1 = &model.Chapter{CourseID: env.Course.ID, ChapterName: "第一章", Order: 1, IsActive: true}
	env.Chapter2 = &model.Chapter{CourseID: env.Course.ID, ChapterName: "第二章", Order: 2, IsActive: true}
	mustCreate(t, db, env.Chapter1)
	mustCreate(t, db, env.Chapter2)

	env.Lesson1 = &model.Lesson{CourseID: env.Course.ID, ChapterID: env.Chapter1.ID, LessonName: "L1", Duration: 100, Order: 1, IsActive: true}
	env.Lesson2 = &model.Lesson{CourseID: env.Course.ID, ChapterID: env.Chapter1.ID, LessonName: "L2", Duration: 100, Order: 2, IsActive: true}
	env.Lesson3 = &model.Lesson{CourseID: env.Course.ID, ChapterID: env.Chapter2.ID, LessonName: "L3", Duration: 100, Order: 1, IsActive: true}
	mustCreate(t, db, env.Lesson1)
	mustCreate(t, db, env.Lesson2)
	mustCreate(t, db, env.Lesson3)

	catalogRepo := repository.NewCatalogRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	env.EnrollmentRepo = repository.NewEnrollmentRepository(db)
	env.ProgressRepo = repository.NewLessonProgressRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	env.CourseProgress = NewCourseProgressService(env.EnrollmentRepo, env.ProgressRepo, catalogRepo, nil)
	env.Enrollment = NewEnrollmentService(catalogRepo, studentRepo, env.EnrollmentRepo, env.ProgressRepo, env.CourseProgress)
	env.Progress = NewProgressService(env.ProgressRepo, env.CourseProgress)
	env.Payment = NewPaymentService(paymentRepo, catalogRepo, studentRepo, env.Enrollment)

	return env
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}

// enroll 报名标准学员与课程并返回报名ID
func (env *testEnv) enroll(t *testing.T) string {
	t.Helper()
	enrollmentID, err := env.Enrollment.Enroll(env.Student.ID, env.Course.ID, nil)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	return enrollmentID
}

// completeLesson 视频看满加测验通过，把一个课时推到完成态
func (env *testEnv) completeLesson(t *testing.T, enrollmentID, lessonID string) {
	t.Helper()
	if err := env.Progress.RecordVideoProgress(enrollmentID, lessonID, 100, 100, 100); err != nil {
		t.Fatalf("video progress for %s: %v", lessonID, err)
	}
	if err := env.Progress.RecordQuizProgress(enrollmentID, lessonID, true, 90, 10, 9); err != nil {
		t.Fatalf("quiz progress for %s: %v", lessonID, err)
	}
}

func (env *testEnv) reloadEnrollment(t *testing.T, enrollmentID string) *model.Enrollment {
	t.Helper()
	enrollment, err := env.EnrollmentRepo.FindByID(enrollmentID)
	if err != nil {
		t.Fatalf("reload enrollment: %v", err)
	}
	return enrollment
}
