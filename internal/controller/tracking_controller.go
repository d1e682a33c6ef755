package controller

import (
	"lms_tracking_backend/internal/service"
	"lms_tracking_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TrackingController struct {
	EnrollmentService *service.EnrollmentService
	ProgressService   *service.ProgressService
	CourseProgress    *service.CourseProgressService
}

func NewTrackingController(
	enrollmentService *service.EnrollmentService,
	progressService *service.ProgressService,
	courseProgress *service.CourseProgressService,
) *TrackingController {
	return &TrackingController{
		EnrollmentService: enrollmentService,
		ProgressService:   progressService,
		CourseProgress:    courseProgress,
	}
}

type EnrollRequest struct {
	StudentID string  `json:"studentId" binding:"required"`
	CourseID  string  `json:"courseId" binding:"required"`
	PaymentID *string `json:"paymentId"`
}

// VideoProgressRequest 视频观看心跳，时长单位为秒
type VideoProgressRequest struct {
	WatchedDuration     int `json:"watchedDuration" binding:"min=0"`
	TotalDuration       int `json:"totalDuration" binding:"min=0"`
	LastWatchedPosition int `json:"lastWatchedPosition" binding:"min=0"`
}

type QuizProgressRequest struct {
	Passed         bool `json:"passed"`
	Score          int  `json:"score" binding:"min=0"`
	TotalQuestions int  `json:"totalQuestions" binding:"min=0"`
	CorrectAnswers int  `json:"correctAnswers" binding:"min=0"`
}

// UpdateProgressRequest 同一请求可携带视频与测验两种子进度，至少一种
type UpdateProgressRequest struct {
	EnrollmentID  string                `json:"enrollmentId" binding:"required"`
	LessonID      string                `json:"lessonId" binding:"required"`
	VideoProgress *VideoProgressRequest `json:"videoProgress"`
	QuizProgress  *QuizProgressRequest  `json:"quizProgress"`
}

// @Summary 课程报名
// @Description 为学员创建课程报名并初始化全部课时进度
// @Tags 课程进度
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param enrollment body EnrollRequest true "报名信息"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /course-tracking/enroll [post]
func (c *TrackingController) Enroll(ctx *gin.Context) {
	var req EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrollmentID, err := c.EnrollmentService.Enroll(req.StudentID, req.CourseID, req.PaymentID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"enrollmentId": enrollmentID})
}

// @Summary 更新课时进度
// @Description 记录视频观看或测验结果，并同步重算课程汇总
// @Tags 课程进度
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param progress body UpdateProgressRequest true "进度信息"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /course-tracking/progress [patch]
func (c *TrackingController) UpdateProgress(ctx *gin.Context) {
	var req UpdateProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if req.VideoProgress == nil && req.QuizProgress == nil {
		util.BadRequest(ctx, "either videoProgress or quizProgress is required")
		return
	}

	if vp := req.VideoProgress; vp != nil {
		err := c.ProgressService.RecordVideoProgress(
			req.EnrollmentID, req.LessonID,
			vp.WatchedDuration, vp.TotalDuration, vp.LastWatchedPosition,
		)
		if err != nil {
			util.HandleServiceError(ctx, err)
			return
		}
	}

	if qp := req.QuizProgress; qp != nil {
		err := c.ProgressService.RecordQuizProgress(
			req.EnrollmentID, req.LessonID,
			qp.Passed, qp.Score, qp.TotalQuestions, qp.CorrectAnswers,
		)
		if err != nil {
			util.HandleServiceError(ctx, err)
			return
		}
	}

	util.Success(ctx, gin.H{"message": "Progress updated successfully"})
}

// @Summary 查询课程进度
// @Description 按报名ID返回章节维度的进度明细
// @Tags 课程进度
// @Produce json
// @Security BearerAuth
// @Param enrollmentId path string true "报名ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /course-tracking/progress/{enrollmentId} [get]
func (c *TrackingController) GetCourseProgress(ctx *gin.Context) {
	enrollmentID := ctx.Param("enrollmentId")

	chapters, err := c.CourseProgress.GetChapterProgress(enrollmentID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"chapters": chapters})
}

// @Summary 查询报名详情
// @Description 按学员与课程返回报名记录及章节进度
// @Tags 课程进度
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "学员ID"
// @Param courseId path string true "课程ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /course-tracking/{studentId}/{courseId} [get]
func (c *TrackingController) GetEnrollmentDetails(ctx *gin.Context) {
	studentID := ctx.Param("studentId")
	courseID := ctx.Param("courseId")

	details, err := c.EnrollmentService.GetEnrollmentDetails(studentID, courseID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, details)
}
