package domain

import (
	"testing"
	"time"
)

func TestTeacherQuestion_Answer(t *testing.T) {
	now := time.Now()
	q := NewTeacherQuestion("user1", "What is the pass mark?")

	if q.Status != TeacherQuestionPending {
		t.Fatalf("new question status = %v, want pending", q.Status)
	}

	if err := q.Answer("It is 40%.", "staff1", now); err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if q.Status != TeacherQuestionAnswered {
		t.Errorf("status = %v, want answered", q.Status)
	}
	if q.AnswerText != "It is 40%." || q.AnsweredBy != "staff1" {
		t.Error("answer fields not set")
	}
	if q.AnsweredAt == nil || !q.AnsweredAt.Equal(now) {
		t.Errorf("AnsweredAt = %v, want %v", q.AnsweredAt, now)
	}

	// A second transition is refused.
	err := q.Answer("again", "staff2", now)
	if err == nil {
		t.Fatal("Answer() on resolved question succeeded, want error")
	}
	if derr, ok := err.(*DomainError); !ok || derr.Code != CodeAlreadyResolved {
		t.Errorf("error = %v, want DomainError with code %s", err, CodeAlreadyResolved)
	}
	if err := q.Reject("staff2", now); err == nil {
		t.Error("Reject() on answered question succeeded, want error")
	}
}

func TestTeacherQuestion_Answer_EmptyText(t *testing.T) {
	q := NewTeacherQuestion("user1", "Why?")
	if err := q.Answer("", "staff1", time.Now()); err == nil {
		t.Error("Answer() with empty text succeeded, want error")
	}
	if q.Status != TeacherQuestionPending {
		t.Errorf("status = %v after failed answer, want pending", q.Status)
	}
}

func TestTeacherQuestion_Reject(t *testing.T) {
	now := time.Now()
	q := NewTeacherQuestion("user1", "Off topic question")

	if err := q.Reject("staff1", now); err != nil {
		t.Fatalf("Reject() error = %v", err)
	}
	if q.Status != TeacherQuestionRejected {
		t.Errorf("status = %v, want rejected", q.Status)
	}
	if err := q.Answer("too late", "staff1", now); err == nil {
		t.Error("Answer() on rejected question succeeded, want error")
	}
}

func TestTeacherQuestion_IsNewFor(t *testing.T) {
	now := time.Now()
	answered := now.Add(-time.Hour)

	q := TeacherQuestion{Status: TeacherQuestionAnswered, AnsweredAt: timePtr(answered)}

	if !q.IsNewFor(nil) {
		t.Error("IsNewFor(nil) = false, want true for never-checked user")
	}
	beforeAnswer := answered.Add(-time.Minute)
	if !q.IsNewFor(&beforeAnswer) {
		t.Error("IsNewFor(check before answer) = false, want true")
	}
	afterAnswer := answered.Add(time.Minute)
	if q.IsNewFor(&afterAnswer) {
		t.Error("IsNewFor(check after answer) = true, want false")
	}

	pending := TeacherQuestion{Status: TeacherQuestionPending}
	if pending.IsNewFor(nil) {
		t.Error("IsNewFor() = true for pending question")
	}
	rejected := TeacherQuestion{Status: TeacherQuestionRejected, AnsweredAt: timePtr(answered)}
	if rejected.IsNewFor(nil) {
		t.Error("IsNewFor() = true for rejected question")
	}
}
