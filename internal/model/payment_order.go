package model

// PaymentOrder 支付订单流水，网关下单在外部完成，这里只记录回调结果
// swagger:model PaymentOrder
type PaymentOrder struct {
	UUIDBase
	StudentID string  `gorm:"index;type:varchar(36);not null" json:"studentId"`
	CourseID  string  `gorm:"index;type:varchar(36);not null" json:"courseId"`
	OrderRef  string  `gorm:"size:100;index" json:"orderRef"`
	Amount    float64 `gorm:"default:0" json:"amount"`
	Status    string  `gorm:"size:20;default:'created'" json:"status"`
}

func (PaymentOrder) TableName() string {
	return "payment_orders"
}
