package service

import (
	"errors"
	"time"

	"lms_tracking_backend/internal/model"
	"lms_tracking_backend/internal/repository"
	"lms_tracking_backend/internal/util"
	"lms_tracking_backend/pkg/logger"
	"lms_tracking_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProgressService 把离散的观看/测验事件落到对应课时进度记录上，
// 并同步触发课时完成判定与课程汇总重算。
// 汇总环节失败只记日志，不影响本次写入结果，下次重算会自愈。
type ProgressService struct {
	ProgressRepo   *repository.LessonProgressRepository
	CourseProgress *CourseProgressService
}

func NewProgressService(progressRepo *repository.LessonProgressRepository, courseProgress *CourseProgressService) *ProgressService {
	return &ProgressService{
		ProgressRepo:   progressRepo,
		CourseProgress: courseProgress,
	}
}

// RecordVideoProgress 记录一次视频观看心跳，只写视频子状态字段
func (s *ProgressService) RecordVideoProgress(enrollmentID, lessonID string, watchedDuration, totalDuration, lastPosition int) error {
	if _, err := s.ProgressRepo.Get(enrollmentID, lessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrProgressNotFound
		}
		return err
	}

	percentage := watchedPercentage(watchedDuration, totalDuration)
	vp := model.VideoProgress{
		TotalDuration:       totalDuration,
		WatchedDuration:     watchedDuration,
		WatchedPercentage:   percentage,
		LastWatchedPosition: lastPosition,
		IsCompleted:         percentage >= model.VideoProgressThreshold,
	}

	if err := s.ProgressRepo.UpdateVideoProgress(enrollmentID, lessonID, vp); err != nil {
		return err
	}

	s.afterProgressWrite(enrollmentID, lessonID)
	return nil
}

// RecordQuizProgress 记录一次测验结果，只写测验子状态字段。
// 分值越界在入口拦截，已落库的历史数据不做追溯校验。
func (s *ProgressService) RecordQuizProgress(enrollmentID, lessonID string, passed bool, score, totalQuestions, correctAnswers int) error {
	if score < 0 || totalQuestions < 0 || correctAnswers < 0 || correctAnswers > totalQuestions {
		return util.ErrInvalidQuizScore
	}

	if _, err := s.ProgressRepo.Get(enrollmentID, lessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrProgressNotFound
		}
		return err
	}

	now := time.Now()
	qp := model.QuizProgress{
		Attempted:      true,
		Passed:         passed,
		Score:          score,
		TotalQuestions: totalQuestions,
		CorrectAnswers: correctAnswers,
		AttemptedAt:    &now,
	}

	if err := s.ProgressRepo.UpdateQuizProgress(enrollmentID, lessonID, qp); err != nil {
		return err
	}

	s.afterProgressWrite(enrollmentID, lessonID)
	return nil
}

// afterProgressWrite 每次子状态写入后的固定尾工序，重复执行是幂等的
func (s *ProgressService) afterProgressWrite(enrollmentID, lessonID string) {
	if err := s.checkLessonCompletion(enrollmentID, lessonID); err != nil {
		logger.Log.Error("lesson completion check failed",
			zap.String("enrollmentId", enrollmentID),
			zap.String("lessonId", lessonID),
			zap.Error(err))
	}

	if err := s.CourseProgress.Recompute(enrollmentID); err != nil {
		logger.Log.Error("course progress recompute failed",
			zap.String("enrollmentId", enrollmentID),
			zap.Error(err))
	}
}

// checkLessonCompletion 重读当前状态判定课时完成。
// 只在 false→true 的跃迁时写入完成标记和时间戳；已完成的课时
// 不会因为后续事件回退，CompletedAt 一旦写入不再变更。
func (s *ProgressService) checkLessonCompletion(enrollmentID, lessonID string) error {
	progress, err := s.ProgressRepo.Get(enrollmentID, lessonID)
	if err != nil {
		return err
	}

	if progress.LessonCompleted {
		return nil
	}

	if progress.VideoProgress.IsCompleted && progress.QuizProgress.Passed {
		if err = s.ProgressRepo.MarkLessonCompleted(enrollmentID, lessonID, time.Now()); err != nil {
			return err
		}
		monitoring.LessonCompletions.WithLabelValues(progress.CourseID).Inc()
	}

	return nil
}

// watchedPercentage 观看百分比，夹在 [0,100]，总时长非正时为 0
func watchedPercentage(watched, total int) float64 {
	if total <= 0 {
		return 0
	}
	percentage := float64(watched) / float64(total) * 100
	if percentage < 0 {
		return 0
	}
	if percentage > 100 {
		return 100
	}
	return percentage
}
