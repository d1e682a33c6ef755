package util

import "errors"

var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrProgressNotFound   = errors.New("progress record not found")
	ErrAlreadyEnrolled    = errors.New("student is already enrolled in this course")
	ErrInvalidQuizScore   = errors.New("invalid quiz score values")
)
