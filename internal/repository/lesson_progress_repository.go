package repository

import (
	"time"

	"lms_tracking_backend/internal/model"

	"gorm.io/gorm"
)

type LessonProgressRepository struct {
	DB *gorm.DB
}

func NewLessonProgressRepository(db *gorm.DB) *LessonProgressRepository {
	return &LessonProgressRepository{DB: db}
}

// Seed 为一次报名整批初始化课时进度，单事务全部成功或全部回滚。
// 与报名记录的写入不在同一事务，中途失败由调用方记录不一致。
func (r *LessonProgressRepository) Seed(records []model.LessonProgress) error {
	if len(records) == 0 {
		return nil
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&records).Error
	})
}

func (r *LessonProgressRepository) Get(enrollmentID, lessonID string) (*model.LessonProgress, error) {
	var progress model.LessonProgress
	err := r.DB.Where("enrollment_id = ? AND lesson_id = ?", enrollmentID, lessonID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *LessonProgressRepository) GetAll(enrollmentID string) ([]model.LessonProgress, error) {
	var records []model.LessonProgress
	err := r.DB.Where("enrollment_id = ?", enrollmentID).Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *LessonProgressRepository) GetByLessonIDs(enrollmentID string, lessonIDs []string) ([]model.LessonProgress, error) {
	var records []model.LessonProgress
	if len(lessonIDs) == 0 {
		return records, nil
	}
	err := r.DB.Where("enrollment_id = ? AND lesson_id IN ?", enrollmentID, lessonIDs).Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateVideoProgress 只写视频子状态字段与最近访问时间
func (r *LessonProgressRepository) UpdateVideoProgress(enrollmentID, lessonID string, vp model.VideoProgress) error {
	return r.DB.Model(&model.LessonProgress{}).
		Where("enrollment_id = ? AND lesson_id = ?", enrollmentID, lessonID).
		Updates(map[string]interface{}{
			"video_total_duration":        vp.TotalDuration,
			"video_watched_duration":      vp.WatchedDuration,
			"video_watched_percentage":    vp.WatchedPercentage,
			"video_last_watched_position": vp.LastWatchedPosition,
			"video_is_completed":          vp.IsCompleted,
			"last_accessed_at":            time.Now(),
		}).Error
}

// UpdateQuizProgress 只写测验子状态字段与最近访问时间
func (r *LessonProgressRepository) UpdateQuizProgress(enrollmentID, lessonID string, qp model.QuizProgress) error {
	return r.DB.Model(&model.LessonProgress{}).
		Where("enrollment_id = ? AND lesson_id = ?", enrollmentID, lessonID).
		Updates(map[string]interface{}{
			"quiz_attempted":       qp.Attempted,
			"quiz_passed":          qp.Passed,
			"quiz_score":           qp.Score,
			"quiz_total_questions": qp.TotalQuestions,
			"quiz_correct_answers": qp.CorrectAnswers,
			"quiz_attempted_at":    qp.AttemptedAt,
			"last_accessed_at":     time.Now(),
		}).Error
}

// MarkLessonCompleted 首次完成时写入完成标记与时间戳，之后不再触碰
func (r *LessonProgressRepository) MarkLessonCompleted(enrollmentID, lessonID string, completedAt time.Time) error {
	return r.DB.Model(&model.LessonProgress{}).
		Where("enrollment_id = ? AND lesson_id = ? AND lesson_completed = ?", enrollmentID, lessonID, false).
		Updates(map[string]interface{}{
			"lesson_completed": true,
			"completed_at":     completedAt,
		}).Error
}
