package service

import (
	"errors"
	"testing"

	"lms_tracking_backend/internal/util"
)

func TestRecordVideoProgress_BelowThresholdKeepsLessonOpen(t *testing.T) {
	env := newTestEnv(t)
	enrollmentID := env.enroll(t)

	if err := env.Progress.RecordVideoProgress(enrollmentID, env.Lesson1.ID, 50, 100, 50); err != nil {
		t.Fatalf("record video: %v", err)
	}

	progress, err := env.ProgressRepo.Get(enrollmentID, env.Lesson1.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if progress.VideoProgress.WatchedPercentage != 50 {
		t.Fatalf("expected 50%%, got %v", progress.VideoProgress.WatchedPercentage)
	}
	if progress.VideoProgress.IsCompleted || progress.LessonCompleted {
		t.Fatalf("half-watched lesson must stay incomplete: %+v", progress)
	}
}

func TestRecordVideoProgress_ThresholdCompletesVideoOnly(t *testing.T) {
	env := newTestEnv(t)
	enrollmentID := env.enroll(t)

	if err := env.Progress.RecordVideoProgress(enrollmentID, env.Lesson1.ID, 95, 100, 95); err != nil {
		t.Fatalf("record video: %v", err)
	}

	progress, err := env.ProgressRepo.Get(enrollmentID, env.Lesson1.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !progress.VideoProgress.IsCompleted {
		t.Fatalf("95%% watched must complete the video")
	}
	// 测验未通过，课时整体不算完成
	if progress.LessonCompleted || progress.CompletedAt != nil {
		t.Fatalf("lesson must not complete without passing the quiz: %+v", progress)
	}
}

func TestRecordVideoProgress_WatchedBeyondTotalClampsTo100(t *testing.T) {
	env := newTestEnv(t)
	enrollmentID := env.enroll(t)

	if err := env.Progress.RecordVideoProgress(enrollmentID, env.Lesson1.ID, 150, 100, 100); err != nil {
		t.Fatalf("record video: %v", err)
	}

	progress, err := env.ProgressRepo.Get(enrollmentID, env.Lesson1.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if progress.VideoProgress.WatchedPercentage != 100 {
		t.Fatalf("percentage must clamp to 100, got %v", progress.VideoProgress.WatchedPercentage)
	}
}

func TestRecordVideoProgress_ZeroTotalDurationIsZeroPercent(t *testing.T) {
	env := newTestEnv(t)
	enrollmentID := env.enroll(t)

	if err := env.Progress.RecordVideoProgress(enrollmentID, env.Lesson1.ID, 30, 0, 30); err != nil {
		t.Fatalf("record video: %v", err)
	}

	progress, err := env.ProgressRepo.Get(enrollmentID, env.Lesson1.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if progress.VideoProgress.WatchedPercentage != 0 || progress.VideoProgress.IsCompleted {
		t.Fatalf("zero total duration must yield 0%%: %+v", progress.VideoProgress)
	}
}

func TestRecordVideoProgress_UnknownLesson(t *testing.T) {
	env := newTestEnv(t)
	enrollmentID := env.enroll(t)

	if err := env.Progress.RecordVideoProgress(enrollmentID, "no-such-lesson", 10, 100, 10); !errors.Is(err, util.ErrProgressNotFound) {
		t.Fatalf("expected ErrProgressNotFound, got %v", err)
	}
}

func TestRecordQuizProgress_PassAfterVideoCompletesLesson(t *testing.T) {
	env := newTestEnv(t)
	enrollmentID := env.enroll(t)

	if err := env.Progress.RecordVideoProgress(enrollmentID, env.Lesson1.ID, 95, 100, 95); err != nil {
		t.Fatalf("record video: %v", err)
	}
	if err := env.Progress.RecordQuizProgress(enrollmentID, env.Lesson1.ID, true, 80, 10, 8); err != nil {
		t.Fatalf("record quiz: %v", err)
	}

	progress, err := env.ProgressRepo.Get(enrollmentID, env.Lesson1.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !progress.LessonCompleted || progress.CompletedAt == nil {
		t.Fatalf("video done + quiz passed must complete the lesson: %+v", progress)
	}
	if progress.QuizProgress.AttemptedAt == nil || !progress.QuizProgress.Attempted {
		t.Fatalf("quiz attempt metadata missing: %+v", progress.QuizProgress)
	}
}

func TestRecordQuizProgress_FailedQuizDoesNotComplete(t *testing.T) {
	env := newTestEnv(t)
	enrollmentID := env.enroll(t)

	if err := env.Progress.RecordVideoProgress(enrollmentID, env.Lesson1.ID, 100, 100, 100); err != nil {
		t.Fatalf("record video: %v", err)
	}
	if err := env.Progress.RecordQuizProgress(enrollmentID, env.Lesson1.ID, false, 40, 10, 4); err != nil {
		t.Fatalf("record quiz: %v", err)
	}

	progress, err := env.ProgressRepo.Get(enrollmentID, env.Lesson1.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if progress.LessonCompleted {
		t.Fatalf("failed quiz must not complete the lesson")
	}
	if !progress.QuizProgress.Attempted || progress.QuizProgress.Passed {
		t.Fatalf("quiz attempt should be recorded as failed: %+v", progress.QuizProgress)
	}
}

func TestRecordQuizProgress_RejectsInvalidScores(t *testing.T) {
	env := newTestEnv(t)
	enrollmentID := env.enroll(t)

	cases := []struct {
		name           string
		score          int
		totalQuestions int
		correctAnswers int
	}{
		{"negative score", -1, 10, 5},
		{"negative totals", 50, -1, 0},
		{"negative correct", 50, 10, -1},
		{"correct beyond total", 50, 10, 11},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := env.Progress.RecordQuizProgress(enrollmentID, env.Lesson1.ID, true, tc.score, tc.totalQuestions, tc.correctAnswers)
			if !errors.Is(err, util.ErrInvalidQuizScore) {
				t.Fatalf("expected ErrInvalidQuizScore, got %v", err)
			}
		})
	}
}

func TestLessonCompletion_NeverRegresses(t *testing.T) {
	env := newTestEnv(t)
	enrollmentID := env.enroll(t)

	env.completeLesson(t, enrollmentID, env.Lesson1.ID)

	before, err := env.ProgressRepo.Get(enrollmentID, env.Lesson1.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	completedAt := *before.CompletedAt

	// 完成后再来一次低进度心跳，完成态与完成时间都不能回退
	if err := env.Progress.RecordVideoProgress(enrollmentID, env.Lesson1.ID, 10, 100, 10); err != nil {
		t.Fatalf("record video: %v", err)
	}

	after, err := env.ProgressRepo.Get(enrollmentID, env.Lesson1.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !after.LessonCompleted {
		t.Fatalf("completed lesson must stay completed")
	}
	if !after.CompletedAt.Equal(completedAt) {
		t.Fatalf("completedAt must stay %v, got %v", completedAt, after.CompletedAt)
	}
	if after.VideoProgress.WatchedPercentage != 10 {
		t.Fatalf("raw video state should still track the latest heartbeat, got %v", after.VideoProgress.WatchedPercentage)
	}

	enrollment := env.reloadEnrollment(t, enrollmentID)
	if enrollment.OverallProgress != 33 {
		t.Fatalf("overall progress must not regress, got %d", enrollment.OverallProgress)
	}
}

func TestWatchedPercentage_Bounds(t *testing.T) {
	cases := []struct {
		watched, total int
		want           float64
	}{
		{0, 100, 0},
		{50, 100, 50},
		{90, 100, 90},
		{150, 100, 100},
		{-10, 100, 0},
		{30, 0, 0},
		{30, -5, 0},
	}
	for _, tc := range cases {
		if got := watchedPercentage(tc.watched, tc.total); got != tc.want {
			t.Fatalf("watchedPercentage(%d, %d) = %v, want %v", tc.watched, tc.total, got, tc.want)
		}
	}
}
