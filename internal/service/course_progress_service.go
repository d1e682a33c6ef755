package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"lms_tracking_backend/internal/model"
	"lms_tracking_backend/internal/repository"
	"lms_tracking_backend/internal/util"
	"lms_tracking_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const chapterProgressCacheTTL = 5 * time.Minute

// ChapterProgress 章节维度进度视图，按需计算，不落库
type ChapterProgress struct {
	ChapterID          string                 `json:"chapterId"`
	ChapterName        string                 `json:"chapterName"`
	TotalLessons       int                    `json:"totalLessons"`
	CompletedLessons   int                    `json:"completedLessons"`
	ProgressPercentage int                    `json:"progressPercentage"`
	Lessons            []LessonProgressDetail `json:"lessons"`
}

type LessonProgressDetail struct {
	LessonID         string `json:"lessonId"`
	LessonName       string `json:"lessonName"`
	VideoCompleted   bool   `json:"videoCompleted"`
	QuizCompleted    bool   `json:"quizCompleted"`
	OverallCompleted bool   `json:"overallCompleted"`
}

// CourseProgressService 从课时进度全量重算章节与课程汇总并回写报名记录。
// 每次写事件后整体重算而不做增量计数，避免计数漂移；章节视图按报名ID
// 缓存于 Redis，重算时失效。
type CourseProgressService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	ProgressRepo   *repository.LessonProgressRepository
	CatalogRepo    *repository.CatalogRepository
	Redis          *redis.Client
}

func NewCourseProgressService(
	enrollmentRepo *repository.EnrollmentRepository,
	progressRepo *repository.LessonProgressRepository,
	catalogRepo *repository.CatalogRepository,
	rdb *redis.Client,
) *CourseProgressService {
	return &CourseProgressService{
		EnrollmentRepo: enrollmentRepo,
		ProgressRepo:   progressRepo,
		CatalogRepo:    catalogRepo,
		Redis:          rdb,
	}
}

// Recompute 重算课程整体进度并回写报名记录。
// 报名不存在时静默返回；无进度记录时保持原汇总不动。
// 只有整体进度到 100 才把状态置为 completed，其余情况不改状态，
// 避免把外部设置的 suspended 悄悄翻回 active。
func (s *CourseProgressService) Recompute(enrollmentID string) error {
	enrollment, err := s.EnrollmentRepo.FindByID(enrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	records, err := s.ProgressRepo.GetAll(enrollmentID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	completedLessons := 0
	for _, record := range records {
		if record.LessonCompleted {
			completedLessons++
		}
	}
	overallProgress := roundPercentage(completedLessons, len(records))

	chapters, err := s.computeChapterProgress(enrollment)
	if err != nil {
		return err
	}

	completedChapterIDs := make([]string, 0)
	for _, chapter := range chapters {
		if chapter.ProgressPercentage == 100 {
			completedChapterIDs = append(completedChapterIDs, chapter.ChapterID)
		}
	}
	completedJSON, err := json.Marshal(completedChapterIDs)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{
		"overall_progress":   overallProgress,
		"completed_chapters": completedJSON,
		"last_accessed_at":   time.Now(),
	}
	if overallProgress == 100 {
		fields["status"] = model.EnrollmentCompleted
	}

	if err = s.EnrollmentRepo.UpdateProgressSummary(enrollmentID, fields); err != nil {
		return err
	}

	s.invalidateCache(enrollmentID)
	return nil
}

// GetChapterProgress 读路径：章节维度进度，带缓存
func (s *CourseProgressService) GetChapterProgress(enrollmentID string) ([]ChapterProgress, error) {
	if cached, ok := s.cacheGet(enrollmentID); ok {
		return cached, nil
	}

	enrollment, err := s.EnrollmentRepo.FindByID(enrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEnrollmentNotFound
		}
		return nil, err
	}

	chapters, err := s.computeChapterProgress(enrollment)
	if err != nil {
		return nil, err
	}

	s.cacheSet(enrollmentID, chapters)
	return chapters, nil
}

// computeChapterProgress 以目录的有效章节/课时为准连接进度记录。
// 已下架课时不在目录结果中，自然被排除出分母。
func (s *CourseProgressService) computeChapterProgress(enrollment *model.Enrollment) ([]ChapterProgress, error) {
	chapters, err := s.CatalogRepo.ListActiveChapters(enrollment.CourseID)
	if err != nil {
		return nil, err
	}

	result := make([]ChapterProgress, 0, len(chapters))
	for _, chapter := range chapters {
		lessons, err := s.CatalogRepo.ListActiveLessonsByChapter(chapter.ID)
		if err != nil {
			return nil, err
		}

		lessonIDs := make([]string, 0, len(lessons))
		for _, lesson := range lessons {
			lessonIDs = append(lessonIDs, lesson.ID)
		}

		records, err := s.ProgressRepo.GetByLessonIDs(enrollment.ID, lessonIDs)
		if err != nil {
			return nil, err
		}
		recordByLesson := make(map[string]*model.LessonProgress, len(records))
		for i := range records {
			recordByLesson[records[i].LessonID] = &records[i]
		}

		completedLessons := 0
		details := make([]LessonProgressDetail, 0, len(lessons))
		for _, lesson := range lessons {
			detail := LessonProgressDetail{
				LessonID:   lesson.ID,
				LessonName: lesson.LessonName,
			}
			if record := recordByLesson[lesson.ID]; record != nil {
				detail.VideoCompleted = record.VideoProgress.IsCompleted
				detail.QuizCompleted = record.QuizProgress.Passed
				detail.OverallCompleted = record.LessonCompleted
				if record.LessonCompleted {
					completedLessons++
				}
			}
			details = append(details, detail)
		}

		result = append(result, ChapterProgress{
			ChapterID:          chapter.ID,
			ChapterName:        chapter.ChapterName,
			TotalLessons:       len(lessons),
			CompletedLessons:   completedLessons,
			ProgressPercentage: roundPercentage(completedLessons, len(lessons)),
			Lessons:            details,
		})
	}

	return result, nil
}

func roundPercentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

func chapterProgressCacheKey(enrollmentID string) string {
	return fmt.Sprintf("chapter_progress:%s", enrollmentID)
}

func (s *CourseProgressService) cacheGet(enrollmentID string) ([]ChapterProgress, bool) {
	if s.Redis == nil {
		return nil, false
	}
	raw, err := s.Redis.Get(context.Background(), chapterProgressCacheKey(enrollmentID)).Bytes()
	if err != nil {
		return nil, false
	}
	var chapters []ChapterProgress
	if err = json.Unmarshal(raw, &chapters); err != nil {
		return nil, false
	}
	return chapters, true
}

func (s *CourseProgressService) cacheSet(enrollmentID string, chapters []ChapterProgress) {
	if s.Redis == nil {
		return
	}
	raw, err := json.Marshal(chapters)
	if err != nil {
		return
	}
	if err = s.Redis.Set(context.Background(), chapterProgressCacheKey(enrollmentID), raw, chapterProgressCacheTTL).Err(); err != nil {
		logger.Log.Warn("chapter progress cache set failed", zap.String("enrollmentId", enrollmentID), zap.Error(err))
	}
}

func (s *CourseProgressService) invalidateCache(enrollmentID string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), chapterProgressCacheKey(enrollmentID)).Err(); err != nil {
		logger.Log.Warn("chapter progress cache invalidate failed", zap.String("enrollmentId", enrollmentID), zap.Error(err))
	}
}
