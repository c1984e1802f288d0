package repository

import (
	"context"
	"strings"
	"time"

	"github.com/douradinams/Douradinams/internal/models"
	"github.com/douradinams/Douradinams/pkg/export"
)

// CSV export layout.
var csvHeaders = []string{"Nome", "CPF", "Escola"}

// StudentRepository manages the students collection.
type StudentRepository struct {
	c     *Collections
	newID IDGenerator
	now   func() time.Time
	intN  func(int) int
	csv   *export.CSVExporter
}

// StudentOption customises a StudentRepository.
type StudentOption func(*StudentRepository)

// WithStudentClock overrides the creation clock.
func WithStudentClock(now func() time.Time) StudentOption {
	return func(r *StudentRepository) { r.now = now }
}

// WithStudentIDs overrides id generation.
func WithStudentIDs(gen IDGenerator) StudentOption {
	return func(r *StudentRepository) { r.newID = gen }
}

// WithRegistrationRand overrides the registration number draw.
func WithRegistrationRand(intN func(int) int) StudentOption {
	return func(r *StudentRepository) { r.intN = intN }
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(c *Collections, opts ...StudentOption) *StudentRepository {
	r := &StudentRepository{
		c:     c,
		newID: NewID,
		now:   time.Now,
		intN:  defaultIntN,
		csv:   export.NewCSVExporter(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List returns every student in insertion order. Nothing is persisted when
// the collection is absent.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	return load[models.Student](ctx, r.c, StudentsKey)
}

// Search filters by case-insensitive name substring or registration number
// substring, keeping insertion order.
func (r *StudentRepository) Search(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	students, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	term := strings.TrimSpace(filter.Search)
	if term == "" {
		return students, nil
	}

	lowered := strings.ToLower(term)
	matches := make([]models.Student, 0, len(students))
	for _, s := range students {
		if strings.Contains(strings.ToLower(s.Name), lowered) || strings.Contains(s.RegistrationNumber, term) {
			matches = append(matches, s)
		}
	}
	return matches, nil
}

// Save merges patch into the student with the same id, or creates a new
// student when the id is empty or unknown.
func (r *StudentRepository) Save(ctx context.Context, patch models.StudentPatch) (models.Student, error) {
	saved, err := r.SaveAll(ctx, []models.StudentPatch{patch})
	if err != nil {
		return models.Student{}, err
	}
	return saved[0], nil
}

// SaveAll applies several patches in one read-modify-write.
func (r *StudentRepository) SaveAll(ctx context.Context, patches []models.StudentPatch) ([]models.Student, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	students, err := load[models.Student](ctx, r.c, StudentsKey)
	if err != nil {
		return nil, err
	}

	saved := make([]models.Student, 0, len(patches))
	for _, patch := range patches {
		var student models.Student
		students, student = r.apply(students, patch)
		saved = append(saved, student)
	}

	if err := r.c.writeJSON(ctx, StudentsKey, students); err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *StudentRepository) apply(students []models.Student, patch models.StudentPatch) ([]models.Student, models.Student) {
	if patch.ID != "" {
		for i := range students {
			if students[i].ID == patch.ID {
				patch.Apply(&students[i])
				return students, students[i]
			}
		}
	}

	now := r.now()
	student := models.Student{}
	patch.Apply(&student)
	student.ID = uniqueID(r.newID, func(id string) bool {
		for _, s := range students {
			if s.ID == id {
				return true
			}
		}
		return false
	})
	student.RegistrationNumber = RegistrationNumber(now, r.intN)
	student.CreatedAt = now.UnixMilli()
	return append(students, student), student
}

// GetByID returns the first student with id.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	return r.find(ctx, func(s models.Student) bool { return s.ID == id })
}

// GetByCPFAndBirth matches both fields exactly; CPF formatting is not normalised.
func (r *StudentRepository) GetByCPFAndBirth(ctx context.Context, cpf, birthDate string) (*models.Student, error) {
	return r.find(ctx, func(s models.Student) bool { return s.CPF == cpf && s.BirthDate == birthDate })
}

// CountBySchool counts students whose free-text school equals name.
func (r *StudentRepository) CountBySchool(ctx context.Context, name string) (int, error) {
	students, err := r.List(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, s := range students {
		if s.School == name {
			count++
		}
	}
	return count, nil
}

// ExportCSV renders the roster as "Nome,CPF,Escola" lines without escaping.
func (r *StudentRepository) ExportCSV(ctx context.Context) ([]byte, error) {
	students, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return r.csv.Render(RosterTable(students))
}

// RosterTable projects students onto the three export columns.
func RosterTable(students []models.Student) export.Table {
	table := export.Table{Headers: csvHeaders, Rows: make([][]string, 0, len(students))}
	for _, s := range students {
		table.Rows = append(table.Rows, []string{s.Name, s.CPF, s.School})
	}
	return table
}

func (r *StudentRepository) find(ctx context.Context, match func(models.Student) bool) (*models.Student, error) {
	students, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range students {
		if match(students[i]) {
			return &students[i], nil
		}
	}
	return nil, ErrRecordNotFound
}
