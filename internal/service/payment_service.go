package service

import (
	"errors"

	"lms_tracking_backend/internal/model"
	"lms_tracking_backend/internal/repository"
	"lms_tracking_backend/internal/util"

	"gorm.io/gorm"
)

// PaymentService 支付成功回调的落地：记一条订单流水，然后以该订单为
// 支付凭据触发报名。向网关下单在外部服务完成，这里不接网关。
type PaymentService struct {
	PaymentRepo *repository.PaymentRepository
	CatalogRepo *repository.CatalogRepository
	StudentRepo *repository.StudentRepository
	Enrollment  *EnrollmentService
}

func NewPaymentService(
	paymentRepo *repository.PaymentRepository,
	catalogRepo *repository.CatalogRepository,
	studentRepo *repository.StudentRepository,
	enrollment *EnrollmentService,
) *PaymentService {
	return &PaymentService{
		PaymentRepo: paymentRepo,
		CatalogRepo: catalogRepo,
		StudentRepo: studentRepo,
		Enrollment:  enrollment,
	}
}

// ConfirmOrder 记录支付订单并完成报名，返回新报名ID
func (s *PaymentService) ConfirmOrder(studentID, courseID, orderRef string, amount float64) (string, error) {
	if _, err := s.CatalogRepo.GetCourse(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrCourseNotFound
		}
		return "", err
	}
	if _, err := s.StudentRepo.GetActiveStudent(studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrStudentNotFound
		}
		return "", err
	}

	order := &model.PaymentOrder{
		StudentID: studentID,
		CourseID:  courseID,
		OrderRef:  orderRef,
		Amount:    amount,
		Status:    "created",
	}
	if err := s.PaymentRepo.Create(order); err != nil {
		return "", err
	}

	enrollmentID, err := s.Enrollment.Enroll(studentID, courseID, &order.ID)
	if err != nil {
		return "", err
	}

	if err = s.PaymentRepo.UpdateStatus(order.ID, "paid"); err != nil {
		return "", err
	}

	return enrollmentID, nil
}
