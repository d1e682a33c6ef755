package model

// Chapter 章节，按 Order 字段排序展示
// swagger:model Chapter
type Chapter struct {
	UUIDBase
	CourseID           string `gorm:"index;type:varchar(36);not null" json:"courseId"`
	ChapterName        string `gorm:"size:255;not null" json:"chapterName"`
	ChapterDescription string `gorm:"type:text" json:"chapterDescription"`
	Order              int    `gorm:"column:order;default:0" json:"order"`
	IsActive           bool   `gorm:"default:true" json:"isActive"`
}

func (Chapter) TableName() string {
	return "chapters"
}
