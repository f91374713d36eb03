package service

import (
	"context"
	"errors"
	"hogwarts-school/internal/entity"
	"hogwarts-school/internal/repo"
	"sort"
	"strings"
	"sync"
)

type memStudentRepo struct {
	mu       sync.Mutex
	nextID   int
	students map[int]*entity.Student
}

func newMemStudentRepo(students ...*entity.Student) *memStudentRepo {
	r := &memStudentRepo{students: make(map[int]*entity.Student)}
	for _, s := range students {
		r.students[s.ID] = s
		r.nextID = max(r.nextID, s.ID)
	}
	return r
}

func (r *memStudentRepo) AddStudent(_ context.Context, student *entity.Student) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := *student
	stored.ID = r.nextID
	r.students[stored.ID] = &stored
	return stored.ID, nil
}

func (r *memStudentRepo) GetStudent(_ context.Context, id int) (*entity.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok {
		return nil, repo.ErrStudentNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *memStudentRepo) EditStudent(_ context.Context, student *entity.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[student.ID]; !ok {
		return repo.ErrStudentNotFound
	}
	stored := *student
	r.students[student.ID] = &stored
	return nil
}

func (r *memStudentRepo) DeleteStudent(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[id]; !ok {
		return repo.ErrStudentNotFound
	}
	delete(r.students, id)
	return nil
}

func (r *memStudentRepo) filter(keep func(*entity.Student) bool) []*entity.Student {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*entity.Student, 0)
	for _, s := range r.students {
		if keep(s) {
			copied := *s
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (r *memStudentRepo) GetAllStudents(context.Context) ([]*entity.Student, error) {
	return r.filter(func(*entity.Student) bool { return true }), nil
}

func (r *memStudentRepo) GetStudentsByAge(_ context.Context, age int) ([]*entity.Student, error) {
	return r.filter(func(s *entity.Student) bool { return s.Age == age }), nil
}

func (r *memStudentRepo) GetStudentsByAgeBetween(_ context.Context, from, to int) ([]*entity.Student, error) {
	return r.filter(func(s *entity.Student) bool { return s.Age >= from && s.Age <= to }), nil
}

func (r *memStudentRepo) GetStudentsByFaculty(_ context.Context, facultyID int) ([]*entity.Student, error) {
	return r.filter(func(s *entity.Student) bool { return s.FacultyID != nil && *s.FacultyID == facultyID }), nil
}

func (r *memStudentRepo) CountStudents(context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.students), nil
}

func (r *memStudentRepo) AverageAge(ctx context.Context) (float64, error) {
	all, _ := r.GetAllStudents(ctx)
	if len(all) == 0 {
		return 0, repo.ErrStudentNotFound
	}
	sum := 0
	for _, s := range all {
		sum += s.Age
	}
	return float64(sum) / float64(len(all)), nil
}

func (r *memStudentRepo) GetLastStudents(ctx context.Context, limit int) ([]*entity.Student, error) {
	all, _ := r.GetAllStudents(ctx)
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

type memFacultyRepo struct {
	mu        sync.Mutex
	nextID    int
	faculties map[int]*entity.Faculty
}

func newMemFacultyRepo(faculties ...*entity.Faculty) *memFacultyRepo {
	r := &memFacultyRepo{faculties: make(map[int]*entity.Faculty)}
	for _, f := range faculties {
		r.faculties[f.ID] = f
		r.nextID = max(r.nextID, f.ID)
	}
	return r
}

func (r *memFacultyRepo) AddFaculty(_ context.Context, faculty *entity.Faculty) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := *faculty
	stored.ID = r.nextID
	r.faculties[stored.ID] = &stored
	return stored.ID, nil
}

func (r *memFacultyRepo) GetFaculty(_ context.Context, id int) (*entity.Faculty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.faculties[id]
	if !ok {
		return nil, repo.ErrFacultyNotFound
	}
	copied := *f
	return &copied, nil
}

func (r *memFacultyRepo) EditFaculty(_ context.Context, faculty *entity.Faculty) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.faculties[faculty.ID]; !ok {
		return repo.ErrFacultyNotFound
	}
	stored := *faculty
	r.faculties[faculty.ID] = &stored
	return nil
}

func (r *memFacultyRepo) DeleteFaculty(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.faculties[id]; !ok {
		return repo.ErrFacultyNotFound
	}
	delete(r.faculties, id)
	return nil
}

func (r *memFacultyRepo) GetAllFaculties(ctx context.Context) ([]*entity.Faculty, error) {
	return r.FindFaculties(ctx, "", "")
}

func (r *memFacultyRepo) FindFaculties(_ context.Context, color, name string) ([]*entity.Faculty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*entity.Faculty, 0)
	for _, f := range r.faculties {
		if color != "" && f.Color != color {
			continue
		}
		if name != "" && !strings.EqualFold(f.Name, name) {
			continue
		}
		copied := *f
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *memFacultyRepo) GetLongestFacultyName(ctx context.Context) (string, error) {
	all, _ := r.GetAllFaculties(ctx)
	if len(all) == 0 {
		return "", repo.ErrFacultyNotFound
	}
	longest := all[0].Name
	for _, f := range all[1:] {
		if len(f.Name) > len(longest) {
			longest = f.Name
		}
	}
	return longest, nil
}

// memAvatarRepo ведет себя как таблица с уникальным student_id
type memAvatarRepo struct {
	mu        sync.Mutex
	nextID    int
	byStudent map[int]*entity.Avatar
	saveErr   error
}

func newMemAvatarRepo() *memAvatarRepo {
	return &memAvatarRepo{byStudent: make(map[int]*entity.Avatar)}
}

func (r *memAvatarRepo) GetAvatarByStudentID(_ context.Context, studentID int) (*entity.Avatar, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byStudent[studentID]
	if !ok {
		return nil, repo.ErrAvatarNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *memAvatarRepo) SaveAvatar(_ context.Context, avatar *entity.Avatar) (*entity.Avatar, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	if existing, ok := r.byStudent[avatar.StudentID]; ok {
		avatar.ID = existing.ID
	} else {
		r.nextID++
		avatar.ID = r.nextID
	}
	stored := *avatar
	r.byStudent[avatar.StudentID] = &stored
	return avatar, nil
}

func (r *memAvatarRepo) ListAvatars(_ context.Context, offset, limit int) ([]*entity.Avatar, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*entity.Avatar, 0, len(r.byStudent))
	for _, a := range r.byStudent {
		copied := *a
		copied.Data = nil
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if offset >= len(all) {
		return []*entity.Avatar{}, nil
	}
	return all[offset:min(offset+limit, len(all))], nil
}

func (r *memAvatarRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byStudent)
}

type memEventRepo struct {
	mu         sync.Mutex
	published  []*entity.AvatarEvent
	publishErr error
}

func (r *memEventRepo) PublishAvatarEvent(_ context.Context, event *entity.AvatarEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.publishErr != nil {
		return r.publishErr
	}
	r.published = append(r.published, event)
	return nil
}

func (r *memEventRepo) SubscribeAvatarEvents(context.Context) (<-chan *entity.AvatarEvent, error) {
	return nil, errors.New("not implemented")
}

func (r *memEventRepo) Close() error {
	return nil
}
