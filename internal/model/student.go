package model

// Student 学员档案，由学员端注册流程维护，本服务只读
// swagger:model Student
type Student struct {
	UUIDBase
	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"size:255;uniqueIndex" json:"email"`
	Mobile   string `gorm:"size:20" json:"mobile"`
	IsActive bool   `gorm:"default:true" json:"isActive"`
}

func (Student) TableName() string {
	return "students"
}
