package repository

import (
	"lms_tracking_backend/internal/model"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(order *model.PaymentOrder) error {
	return r.DB.Create(order).Error
}

func (r *PaymentRepository) UpdateStatus(orderID, status string) error {
	return r.DB.Model(&model.PaymentOrder{}).
		Where("id = ?", orderID).
		Update("status", status).Error
}
