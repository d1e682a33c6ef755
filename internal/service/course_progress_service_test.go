package service

import (
	"errors"
	"testing"

	"lms_tracking_backend/internal/model"
	"lms_tracking_backend/internal/util"
)

// 两章三课时的完整走读：0 → 33 → 67 → 100，
// 章节完成与课程完成状态随重算同步推进。
func TestCourseRollup_FullWalkthrough(t *testing.T) {
	env := newTestEnv(t)
	enrollmentID := env.enroll(t)

	env.completeLesson(t, enrollmentID, env.Lesson1.ID)
	enrollment := env.reloadEnrollment(t, enrollmentID)
	if enrollment.OverallProgress != 33 {
		t.Fatalf("1/3 lessons done, expected 33, got %d", enrollment.OverallProgress)
	}
	if ids := enrollment.CompletedChapterIDs(); len(ids) != 0 {
		t.Fatalf("chapter 1 is half done, none should be completed: %v", ids)
	}
	if enrollment.Status != model.EnrollmentActive {
		t.Fatalf("course not finished, status must stay active: %s", enrollment.Status)
	}

	env.completeLesson(t, enrollmentID, env.Lesson2.ID)
	enrollment = env.reloadEnrollment(t, enrollmentID)
	if enrollment.OverallProgress != 67 {
		t.Fatalf("2/3 lessons done, expected 67, got %d", enrollment.OverallProgress)
	}
	ids := enrollment.CompletedChapterIDs()
	if len(ids) != 1 || ids[0] != env.Chapter1.ID {
		t.Fatalf("chapter 1 should now be completed: %v", ids)
	}

	env.completeLesson(t, enrollmentID, env.Lesson3.ID)
	enrollment = env.reloadEnrollment(t, enrollmentID)
	if enrollment.OverallProgress != 100 {
		t.Fatalf("all lessons done, expected 100, got %d", enrollment.OverallProgress)
	}
	if len(enrollment.CompletedChapterIDs()) != 2 {
		t.Fatalf("both chapters should be completed: %v", enrollment.CompletedChapterIDs())
	}
	if enrollment.Status != model.EnrollmentCompleted {
		t.Fatalf("full progress must flip status to completed, got %s", enrollment.Status)
	}
	if enrollment.LastAccessedAt == nil {
		t.Fatalf("lastAccessedAt should be stamped by the rollup")
	}
}

func TestRecompute_MissingEnrollmentIsNoop(t *testing.T) {
	env := newTestEnv(t)

	if err := env.CourseProgress.Recompute("no-such-enrollment"); err != nil {
		t.Fatalf("recompute on unknown enrollment must be a no-op, got %v", err)
	}
}

func TestRecompute_NoProgressRecordsLeavesSummaryAlone(t *testing.T) {
	env := newTestEnv(t)

	// 直接造一条没有任何进度记录的报名
	enrollment := &model.Enrollment{
		StudentID:       env.Student.ID,
		CourseID:        env.Course.ID,
		Status:          model.EnrollmentActive,
		OverallProgress: 42,
	}
	mustCreate(t, env.DB, enrollment)

	if err := env.CourseProgress.Recompute(enrollment.ID); err != nil {
		t.Fatalf("recompute: %v", err)
	}

	stored := env.reloadEnrollment(t, enrollment.ID)
	if stored.OverallProgress != 42 {
		t.Fatalf("summary must stay untouched without progress records, got %d", stored.OverallProgress)
	}
}

func TestRecompute_IsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	enrollmentID := env.enroll(t)
	env.completeLesson(t, enrollmentID, env.Lesson1.ID)

	first := env.reloadEnrollment(t, enrollmentID)
	if err := env.CourseProgress.Recompute(enrollmentID); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	second := env.reloadEnrollment(t, enrollmentID)

	if first.OverallProgress != second.OverallProgress || first.Status != second.Status {
		t.Fatalf("repeated recompute changed the summary: %d/%s vs %d/%s",
			first.OverallProgress, first.Status, second.OverallProgress, second.Status)
	}
}

func TestRecompute_PreservesSuspendedStatus(t *testing.T) {
	env := newTestEnv(t)
	enrollmentID := env.enroll(t)

	if err := env.DB.Model(&model.Enrollment{}).Where("id = ?", enrollmentID).
		Update("status", model.EnrollmentSuspended).Error; err != nil {
		t.Fatalf("suspend enrollment: %v", err)
	}

	env.completeLesson(t, enrollmentID, env.Lesson1.ID)

	enrollment := env.reloadEnrollment(t, enrollmentID)
	if enrollment.Status != model.EnrollmentSuspended {
		t.Fatalf("partial progress must not resurrect a suspended enrollment, got %s", enrollment.Status)
	}
	if enrollment.OverallProgress != 33 {
		t.Fatalf("progress still accrues while suspended, got %d", enrollment.OverallProgress)
	}
}

func TestGetChapterProgress_ReflectsLessonStates(t *testing.T) {
	env := newTestEnv(t)
	enrollmentID := env.enroll(t)

	if err := env.Progress.RecordVideoProgress(enrollmentID, env.Lesson1.ID, 95, 100, 95); err != nil {
		t.Fatalf("record video: %v", err)
	}
	env.completeLesson(t, enrollmentID, env.Lesson3.ID)

	chapters, err := env.CourseProgress.GetChapterProgress(enrollmentID)
	if err != nil {
		t.Fatalf("get chapter progress: %v", err)
	}
	if len(chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(chapters))
	}

	ch1 := chapters[0]
	if ch1.ChapterID != env.Chapter1.ID || ch1.TotalLessons != 2 || ch1.CompletedLessons != 0 {
		t.Fatalf("unexpected chapter 1 view: %+v", ch1)
	}
	if !ch1.Lessons[0].VideoCompleted || ch1.Lessons[0].OverallCompleted {
		t.Fatalf("lesson 1 should have video done only: %+v", ch1.Lessons[0])
	}

	ch2 := chapters[1]
	if ch2.CompletedLessons != 1 || ch2.ProgressPercentage != 100 {
		t.Fatalf("chapter 2 should be fully completed: %+v", ch2)
	}
}

func TestGetChapterProgress_UnknownEnrollment(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.CourseProgress.GetChapterProgress("no-such-enrollment"); !errors.Is(err, util.ErrEnrollmentNotFound) {
		t.Fatalf("expected ErrEnrollmentNotFound, got %v", err)
	}
}

// 下架课时退出章节视图的分母，但已有进度记录仍计入课程整体进度
func TestDeactivatedLesson_LeavesChapterDenominator(t *testing.T) {
	env := newTestEnv(t)
	enrollmentID := env.enroll(t)
	env.completeLesson(t, enrollmentID, env.Lesson1.ID)

	if err := env.DB.Model(env.Lesson2).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate lesson: %v", err)
	}

	chapters, err := env.CourseProgress.GetChapterProgress(enrollmentID)
	if err != nil {
		t.Fatalf("get chapter progress: %v", err)
	}
	ch1 := chapters[0]
	if ch1.TotalLessons != 1 || ch1.ProgressPercentage != 100 {
		t.Fatalf("chapter 1 should now only count lesson 1: %+v", ch1)
	}

	if err := env.CourseProgress.Recompute(enrollmentID); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	enrollment := env.reloadEnrollment(t, enrollmentID)
	if enrollment.OverallProgress != 33 {
		t.Fatalf("overall progress still counts the seeded record, got %d", enrollment.OverallProgress)
	}
	ids := enrollment.CompletedChapterIDs()
	if len(ids) != 1 || ids[0] != env.Chapter1.ID {
		t.Fatalf("chapter 1 counts as completed against active lessons: %v", ids)
	}
}

func TestRoundPercentage(t *testing.T) {
	cases := []struct {
		completed, total, want int
	}{
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
		{1, 2, 50},
		{0, 0, 0},
		{1, 0, 0},
	}
	for _, tc := range cases {
		if got := roundPercentage(tc.completed, tc.total); got != tc.want {
			t.Fatalf("roundPercentage(%d, %d) = %d, want %d", tc.completed, tc.total, got, tc.want)
		}
	}
}
