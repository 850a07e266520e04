package service

import (
	"time"

	"github.com/sahajm/Civet/internal/model"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mimic the gorm-backed implementations
// closely enough for service tests: not-found surfaces as
// gorm.ErrRecordNotFound, and the result fake enforces the (test, student)
// unique index with gorm.ErrDuplicatedKey.

type fakeTestRepo struct {
	tests map[uint]*model.Test
}

func newFakeTestRepo(tests ...*model.Test) *fakeTestRepo {
	r := &fakeTestRepo{tests: make(map[uint]*model.Test)}
	for _, t := range tests {
		r.tests[t.ID] = t
	}
	return r
}

func (r *fakeTestRepo) Create(test *model.Test) error {
	if test.ID == 0 {
		test.ID = uint(len(r.tests) + 1)
	}
	for i := range test.Questions {
		test.Questions[i].TestID = test.ID
	}
	r.tests[test.ID] = test
	return nil
}

func (r *fakeTestRepo) FindByID(id uint) (*model.Test, error) {
	t, ok := r.tests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *fakeTestRepo) FindByIDWithQuestions(id uint) (*model.Test, error) {
	return r.FindByID(id)
}

func (r *fakeTestRepo) FindAllActive() ([]model.Test, error) {
	var out []model.Test
	for _, t := range r.tests {
		if t.IsActive {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTestRepo) FindAvailable(now time.Time) ([]model.Test, error) {
	var out []model.Test
	for _, t := range r.tests {
		if t.IsActive && t.EndTime().After(now) {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTestRepo) FindByCreator(creatorID uint) ([]model.Test, error) {
	var out []model.Test
	for _, t := range r.tests {
		if t.CreatedByID == creatorID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTestRepo) Update(test *model.Test) error {
	if _, ok := r.tests[test.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.tests[test.ID] = test
	return nil
}

func (r *fakeTestRepo) ReplaceQuestions(testID uint, questions []model.TestQuestion) error {
	t, ok := r.tests[testID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.Questions = questions
	return nil
}

func (r *fakeTestRepo) Delete(id uint) error {
	if _, ok := r.tests[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.tests, id)
	return nil
}

type fakeQuestionRepo struct {
	questions []model.Question
}

func (r *fakeQuestionRepo) CreateBatch(questions []model.Question) error {
	r.questions = append(r.questions, questions...)
	return nil
}

func (r *fakeQuestionRepo) FindByUID(uid string) (*model.Question, error) {
	for i := range r.questions {
		if r.questions[i].UID == uid {
			return &r.questions[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeQuestionRepo) FindByUIDs(uids []string) ([]model.Question, error) {
	wanted := make(map[string]struct{}, len(uids))
	for _, uid := range uids {
		wanted[uid] = struct{}{}
	}
	var out []model.Question
	for _, q := range r.questions {
		if _, ok := wanted[q.UID]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) FindActiveUIDs(uids []string) ([]string, error) {
	active := make(map[string]struct{})
	for _, q := range r.questions {
		if q.IsActive {
			active[q.UID] = struct{}{}
		}
	}
	var out []string
	for _, uid := range uids {
		if _, ok := active[uid]; ok {
			out = append(out, uid)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) FindAll(offset, limit int) ([]model.Question, int64, error) {
	total := int64(len(r.questions))
	if offset >= len(r.questions) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(r.questions) {
		end = len(r.questions)
	}
	return r.questions[offset:end], total, nil
}

func (r *fakeQuestionRepo) FindByTag(tagID uint, offset, limit int) ([]model.Question, int64, error) {
	var matched []model.Question
	for _, q := range r.questions {
		for _, t := range q.Tags {
			if t.ID == tagID {
				matched = append(matched, q)
				break
			}
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeQuestionRepo) Update(question *model.Question) error {
	for i := range r.questions {
		if r.questions[i].UID == question.UID {
			r.questions[i] = *question
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeQuestionRepo) DeleteByUID(uid string) error {
	for i := range r.questions {
		if r.questions[i].UID == uid {
			r.questions = append(r.questions[:i], r.questions[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeResultRepo struct {
	results []*model.Result
	nextID  uint
}

func (r *fakeResultRepo) Create(result *model.Result) error {
	for _, existing := range r.results {
		if existing.TestID == result.TestID && existing.StudentID == result.StudentID {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	result.ID = r.nextID
	r.results = append(r.results, result)
	return nil
}

func (r *fakeResultRepo) FindByID(id uint) (*model.Result, error) {
	for _, res := range r.results {
		if res.ID == id {
			return res, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeResultRepo) FindByTestAndStudent(testID, studentID uint) (*model.Result, error) {
	for _, res := range r.results {
		if res.TestID == testID && res.StudentID == studentID {
			return res, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeResultRepo) FindAllByTest(testID uint) ([]model.Result, error) {
	var out []model.Result
	for _, res := range r.results {
		if res.TestID == testID {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (r *fakeResultRepo) FindAllByStudent(studentID uint) ([]model.Result, error) {
	var out []model.Result
	for _, res := range r.results {
		if res.StudentID == studentID {
			out = append(out, *res)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint]*model.User)}
	for _, u := range users {
		r.users[u.ID] = u
		if u.ID > r.nextID {
			r.nextID = u.ID
		}
	}
	return r
}

func (r *fakeUserRepo) Create(user *model.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) CountByRole(role string) (int64, error) {
	var count int64
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

type fakeTagRepo struct {
	tags   []model.Tag
	nextID uint
}

func (r *fakeTagRepo) Create(tag *model.Tag) error {
	for _, existing := range r.tags {
		if existing.Label == tag.Label {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	tag.ID = r.nextID
	r.tags = append(r.tags, *tag)
	return nil
}

func (r *fakeTagRepo) FindByID(id uint) (*model.Tag, error) {
	for i := range r.tags {
		if r.tags[i].ID == id {
			return &r.tags[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTagRepo) FindByIDs(ids []uint) ([]model.Tag, error) {
	wanted := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	var out []model.Tag
	for _, t := range r.tags {
		if _, ok := wanted[t.ID]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTagRepo) FindAll() ([]model.Tag, error) {
	return r.tags, nil
}

func (r *fakeTagRepo) Update(tag *model.Tag) error {
	for i := range r.tags {
		if r.tags[i].ID == tag.ID {
			r.tags[i] = *tag
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeTagRepo) Delete(id uint) error {
	for i := range r.tags {
		if r.tags[i].ID == id {
			r.tags = append(r.tags[:i], r.tags[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}
