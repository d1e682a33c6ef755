package model

import "time"

// CourseForecast 学习排期预估记录，报名时随报名记录一并创建
// 排期字段由学习规划功能稍后填写，初始为 null
// swagger:model CourseForecast
type CourseForecast struct {
	UUIDBase
	EnrollmentID           string     `gorm:"uniqueIndex;type:varchar(36);not null" json:"enrollmentId"`
	StudentID              string     `gorm:"index;type:varchar(36);not null" json:"studentId"`
	CourseID               string     `gorm:"index;type:varchar(36);not null" json:"courseId"`
	CurrentAttempt         int        `gorm:"default:1" json:"currentAttempt"`
	RemainingAttempts      int        `gorm:"default:3" json:"remainingAttempts"`
	DaysPerWeek            *int       `json:"daysPerWeek,omitempty"`
	HoursPerDay            *float64   `json:"hoursPerDay,omitempty"`
	ExpectedCompletionDate *time.Time `json:"expectedCompletionDate,omitempty"`
	LastSetupAt            *time.Time `json:"lastSetupAt,omitempty"`
}

func (CourseForecast) TableName() string {
	return "course_forecasts"
}
