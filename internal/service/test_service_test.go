package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sahajm/Civet/internal/apperr"
	"github.com/sahajm/Civet/internal/dto"
	"github.com/sahajm/Civet/internal/model"
)

func newTestServiceFixture(questions ...model.Question) (TestService, *fakeTestRepo, *fakeResultRepo) {
	testRepo := newFakeTestRepo()
	questionRepo := &fakeQuestionRepo{questions: questions}
	resultRepo := &fakeResultRepo{}
	userRepo := newFakeUserRepo(&model.User{ID: 1, FullName: "Admin", Email: "admin@example.com", Role: model.RoleAdmin})
	return NewTestService(testRepo, questionRepo, resultRepo, userRepo), testRepo, resultRepo
}

func testCreateReq(start time.Time, uids ...string) dto.TestCreateDTO {
	return dto.TestCreateDTO{
		Title:            "Weekly Test",
		StartTime:        start,
		Duration:         60,
		MarksPerQuestion: 2,
		QuestionUIDs:     uids,
	}
}

func TestCreateTestStoresOrderedQuestionRefs(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, testRepo, _ := newTestServiceFixture(makeQuestion("q1", 0), makeQuestion("q2", 1))

	created, err := svc.CreateTest(testCreateReq(start, "q2", "q1"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.TotalMarks != 4 {
		t.Errorf("expected total marks 4, got %v", created.TotalMarks)
	}
	if !created.IsActive {
		t.Error("tests default to active")
	}

	stored, err := testRepo.FindByIDWithQuestions(created.ID)
	if err != nil {
		t.Fatalf("stored test not found: %v", err)
	}
	uids := stored.QuestionUIDs()
	if len(uids) != 2 || uids[0] != "q2" || uids[1] != "q1" {
		t.Errorf("expected request order preserved, got %v", uids)
	}
	for i, tq := range stored.Questions {
		if tq.Position != i {
			t.Errorf("ref %d: expected position %d, got %d", i, i, tq.Position)
		}
	}
}

func TestCreateTestRejectsUnknownUIDs(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, _, _ := newTestServiceFixture(makeQuestion("q1", 0))

	_, err := svc.CreateTest(testCreateReq(start, "q1", "ghost", "phantom"), 1)
	if !errors.Is(err, apperr.ErrDataIntegrity) {
		t.Fatalf("expected data-integrity error, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "ghost") || !strings.Contains(msg, "phantom") {
		t.Errorf("error must name every missing uid, got %q", msg)
	}
	if strings.Contains(msg, "q1") {
		t.Errorf("error must not name resolvable uids, got %q", msg)
	}
}

func TestCreateTestRejectsInactiveQuestions(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	inactive := makeQuestion("q1", 0)
	inactive.IsActive = false
	svc, _, _ := newTestServiceFixture(inactive)

	_, err := svc.CreateTest(testCreateReq(start, "q1"), 1)
	if !errors.Is(err, apperr.ErrDataIntegrity) {
		t.Fatalf("expected data-integrity error for inactive question, got %v", err)
	}
}

func TestCreateTestExplicitInactive(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, _, _ := newTestServiceFixture(makeQuestion("q1", 0))

	req := testCreateReq(start, "q1")
	inactive := false
	req.IsActive = &inactive

	created, err := svc.CreateTest(req, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.IsActive {
		t.Error("explicit is_active=false must be honored")
	}
}

func TestUpdateTestReplacesQuestionSet(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, testRepo, _ := newTestServiceFixture(makeQuestion("q1", 0), makeQuestion("q2", 1), makeQuestion("q3", 2))

	created, err := svc.CreateTest(testCreateReq(start, "q1", "q2"), 1)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.UpdateTest(created.ID, testCreateReq(start, "q3"))
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(updated.QuestionUIDs) != 1 || updated.QuestionUIDs[0] != "q3" {
		t.Errorf("expected question set replaced with [q3], got %v", updated.QuestionUIDs)
	}

	stored, _ := testRepo.FindByIDWithQuestions(created.ID)
	if uids := stored.QuestionUIDs(); len(uids) != 1 || uids[0] != "q3" {
		t.Errorf("stored refs not replaced, got %v", uids)
	}
}

func TestUpdateTestUnknown(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, _, _ := newTestServiceFixture(makeQuestion("q1", 0))

	_, err := svc.UpdateTest(99, testCreateReq(start, "q1"))
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestGetAvailableTestsExcludesEnded(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	running := makeTest(1, now.Add(-30*time.Minute), "q1")
	upcoming := makeTest(2, now.Add(2*time.Hour), "q1")
	ended := makeTest(3, now.Add(-3*time.Hour), "q1")
	inactive := makeTest(4, now.Add(-30*time.Minute), "q1")
	inactive.IsActive = false

	testRepo := newFakeTestRepo(running, upcoming, ended, inactive)
	questionRepo := &fakeQuestionRepo{questions: []model.Question{makeQuestion("q1", 0)}}
	userRepo := newFakeUserRepo()
	svc := NewTestService(testRepo, questionRepo, &fakeResultRepo{}, userRepo)

	summaries, err := svc.GetAvailableTestsForStudent(now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected running and upcoming only, got %d entries", len(summaries))
	}
	for _, s := range summaries {
		if s.ID == 3 || s.ID == 4 {
			t.Errorf("test %d must be excluded", s.ID)
		}
		if len(s.Questions) != 1 || s.Questions[0].UID != "q1" {
			t.Errorf("summary %d: expected lightweight question refs, got %+v", s.ID, s.Questions)
		}
	}
}

func TestGetTestWithValidation(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	testRepo := newFakeTestRepo(makeTest(1, start, "q2", "q1"))
	questionRepo := &fakeQuestionRepo{questions: []model.Question{makeQuestion("q1", 0), makeQuestion("q2", 1)}}
	resultRepo := &fakeResultRepo{}
	svc := NewTestService(testRepo, questionRepo, resultRepo, newFakeUserRepo())

	detail, err := svc.GetTestWithValidation(1, 42, model.RoleStudent, start.Add(10*time.Minute))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Status != model.TestStatusActive {
		t.Errorf("expected ACTIVE status, got %s", detail.Status)
	}
	if len(detail.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(detail.Questions))
	}
	if detail.Questions[0].UID != "q2" || detail.Questions[1].UID != "q1" {
		t.Errorf("questions must follow test order, got %s then %s",
			detail.Questions[0].UID, detail.Questions[1].UID)
	}
	if len(detail.Questions[0].Options) != 3 {
		t.Errorf("student view carries options, got %d", len(detail.Questions[0].Options))
	}
}

func TestGetTestWithValidationBlocksResubmission(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	testRepo := newFakeTestRepo(makeTest(1, start, "q1"))
	questionRepo := &fakeQuestionRepo{questions: []model.Question{makeQuestion("q1", 0)}}
	resultRepo := &fakeResultRepo{}
	resultRepo.Create(&model.Result{TestID: 1, StudentID: 42, SubmittedAt: start})
	svc := NewTestService(testRepo, questionRepo, resultRepo, newFakeUserRepo())

	_, err := svc.GetTestWithValidation(1, 42, model.RoleStudent, start.Add(10*time.Minute))
	if !errors.Is(err, apperr.ErrDuplicateSubmission) {
		t.Fatalf("expected duplicate-submission error, got %v", err)
	}

	// A different student is unaffected.
	if _, err := svc.GetTestWithValidation(1, 43, model.RoleStudent, start.Add(10*time.Minute)); err != nil {
		t.Fatalf("other student blocked: %v", err)
	}
}

func TestGetTestWithFullQuestionsOrdersByPosition(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	testRepo := newFakeTestRepo(makeTest(1, start, "q3", "q1", "q2"))
	questionRepo := &fakeQuestionRepo{questions: []model.Question{
		makeQuestion("q1", 0), makeQuestion("q2", 1), makeQuestion("q3", 2),
	}}
	svc := NewTestService(testRepo, questionRepo, &fakeResultRepo{}, newFakeUserRepo())

	full, err := svc.GetTestWithFullQuestions(1, start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"q3", "q1", "q2"}
	if len(full.Questions) != len(want) {
		t.Fatalf("expected %d questions, got %d", len(want), len(full.Questions))
	}
	for i, uid := range want {
		if full.Questions[i].UID != uid {
			t.Errorf("position %d: expected %s, got %s", i, uid, full.Questions[i].UID)
		}
	}
	if full.Questions[0].CorrectAnswer != 2 {
		t.Errorf("admin view carries correct answers, got %d", full.Questions[0].CorrectAnswer)
	}
}

func TestDeleteTest(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	testRepo := newFakeTestRepo(makeTest(1, start, "q1"))
	svc := NewTestService(testRepo, &fakeQuestionRepo{}, &fakeResultRepo{}, newFakeUserRepo())

	if err := svc.DeleteTest(1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.DeleteTest(1); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not-found on second delete, got %v", err)
	}
}
