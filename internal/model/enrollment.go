package model

import (
	"encoding/json"
	"time"
)

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentSuspended EnrollmentStatus = "suspended"
)

// Enrollment 学员报名记录，汇总进度字段只由聚合服务回写
// 同一学员同一课程最多一条未删除记录，由联合唯一索引保证
// swagger:model Enrollment
type Enrollment struct {
	UUIDBase
	StudentID         string           `gorm:"index:idx_student_course,unique;type:varchar(36);not null" json:"studentId"`
	CourseID          string           `gorm:"index:idx_student_course,unique;type:varchar(36);not null" json:"courseId"`
	EnrolledAt        time.Time        `json:"enrolledAt"`
	PaymentID         *string          `gorm:"type:varchar(36)" json:"paymentId,omitempty"`
	Status            EnrollmentStatus `gorm:"size:20;default:'active'" json:"status"`
	OverallProgress   int              `gorm:"default:0" json:"overallProgress"`
	CompletedChapters json.RawMessage  `gorm:"type:json" json:"completedChapters"` // JSON: 已完成章节ID数组
	LastAccessedAt    *time.Time       `json:"lastAccessedAt,omitempty"`
	CertificateIssued bool             `gorm:"default:false" json:"certificateIssued"`
}

func (Enrollment) TableName() string {
	return "course_enrollments"
}

// CompletedChapterIDs 解析已完成章节ID数组，解析失败视为空
func (e *Enrollment) CompletedChapterIDs() []string {
	var ids []string
	if len(e.CompletedChapters) == 0 {
		return ids
	}
	_ = json.Unmarshal(e.CompletedChapters, &ids)
	return ids
}
