package model

// Course 课程目录实体，后台管理端维护，本服务只读
// swagger:model Course
type Course struct {
	UUIDBase
	CourseName        string  `gorm:"size:255;not null" json:"courseName"`
	CourseDescription string  `gorm:"type:text" json:"courseDescription"`
	Banner            string  `gorm:"size:512" json:"banner"`
	Price             float64 `gorm:"default:0" json:"price"`
	IsActive          bool    `gorm:"default:true" json:"isActive"`
}

func (Course) TableName() string {
	return "courses"
}
