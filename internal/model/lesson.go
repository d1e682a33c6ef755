package model

// Lesson 课时，归属章节，视频时长单位为秒
// swagger:model Lesson
type Lesson struct {
	UUIDBase
	CourseID   string `gorm:"index;type:varchar(36);not null" json:"courseId"`
	ChapterID  string `gorm:"index;type:varchar(36);not null" json:"chapterId"`
	LessonName string `gorm:"size:255;not null" json:"lessonName"`
	VideoURL   string `gorm:"size:512" json:"videoUrl"`
	Duration   int    `gorm:"default:0" json:"duration"`
	Order      int    `gorm:"column:order;default:0" json:"order"`
	IsActive   bool   `gorm:"default:true" json:"isActive"`
}

func (Lesson) TableName() string {
	return "lessons"
}
