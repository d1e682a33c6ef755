package model

import "time"

// VideoProgressThreshold 观看百分比达到该值即视为视频完成
const VideoProgressThreshold = 90.0

// VideoProgress 视频观看子状态，时长单位为秒
// swagger:model VideoProgress
type VideoProgress struct {
	TotalDuration       int     `gorm:"default:0" json:"totalDuration"`
	WatchedDuration     int     `gorm:"default:0" json:"watchedDuration"`
	WatchedPercentage   float64 `gorm:"default:0" json:"watchedPercentage"`
	LastWatchedPosition int     `gorm:"default:0" json:"lastWatchedPosition"`
	IsCompleted         bool    `gorm:"default:false" json:"isCompleted"`
}

// QuizProgress 课时测验子状态
// swagger:model QuizProgress
type QuizProgress struct {
	Attempted      bool       `gorm:"default:false" json:"attempted"`
	Passed         bool       `gorm:"default:false" json:"passed"`
	Score          int        `gorm:"default:0" json:"score"`
	TotalQuestions int        `gorm:"default:0" json:"totalQuestions"`
	CorrectAnswers int        `gorm:"default:0" json:"correctAnswers"`
	AttemptedAt    *time.Time `json:"attemptedAt,omitempty"`
}

// LessonProgress 每条记录对应一个 (报名, 课时) 组合，报名时整批初始化
// LessonCompleted = 视频完成且测验通过；CompletedAt 首次完成时写入，之后不再变更
// swagger:model LessonProgress
type LessonProgress struct {
	UUIDBase
	EnrollmentID    string        `gorm:"index:idx_enrollment_lesson,unique;type:varchar(36);not null" json:"enrollmentId"`
	LessonID        string        `gorm:"index:idx_enrollment_lesson,unique;type:varchar(36);not null" json:"lessonId"`
	StudentID       string        `gorm:"index;type:varchar(36);not null" json:"studentId"`
	CourseID        string        `gorm:"index;type:varchar(36);not null" json:"courseId"`
	ChapterID       string        `gorm:"index;type:varchar(36);not null" json:"chapterId"`
	VideoProgress   VideoProgress `gorm:"embedded;embeddedPrefix:video_" json:"videoProgress"`
	QuizProgress    QuizProgress  `gorm:"embedded;embeddedPrefix:quiz_" json:"quizProgress"`
	LessonCompleted bool          `gorm:"default:false" json:"lessonCompleted"`
	CompletedAt     *time.Time    `json:"completedAt,omitempty"`
	LastAccessedAt  time.Time     `json:"lastAccessedAt"`
}

func (LessonProgress) TableName() string {
	return "lesson_progresses"
}
