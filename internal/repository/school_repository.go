package repository

import (
	"context"

	"github.com/douradinams/Douradinams/internal/models"
)

// SchoolRepository manages the schools collection.
type SchoolRepository struct {
	c     *Collections
	newID IDGenerator
}

// NewSchoolRepository constructs a SchoolRepository.
func NewSchoolRepository(c *Collections) *SchoolRepository {
	return &SchoolRepository{c: c, newID: NewID}
}

// List returns all schools, seeding the collection on first use.
func (r *SchoolRepository) List(ctx context.Context) ([]models.School, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	return loadSeeded(ctx, r.c, SchoolsKey, seedSchools())
}

// Add appends a school with a fresh id.
func (r *SchoolRepository) Add(ctx context.Context, name, address string) (models.School, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	schools, err := loadSeeded(ctx, r.c, SchoolsKey, seedSchools())
	if err != nil {
		return models.School{}, err
	}
	school := models.School{
		ID: uniqueID(r.newID, func(id string) bool {
			for _, s := range schools {
				if s.ID == id {
					return true
				}
			}
			return false
		}),
		Name:    name,
		Address: address,
	}
	schools = append(schools, school)
	if err := r.c.writeJSON(ctx, SchoolsKey, schools); err != nil {
		return models.School{}, err
	}
	return school, nil
}

// Delete removes the first school with id. The collection is rewritten even
// when nothing matched. It reports the removed school, if any.
func (r *SchoolRepository) Delete(ctx context.Context, id string) (*models.School, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	schools, err := loadSeeded(ctx, r.c, SchoolsKey, seedSchools())
	if err != nil {
		return nil, err
	}
	remaining, removed := removeFirst(schools, func(s models.School) bool { return s.ID == id })
	if err := r.c.writeJSON(ctx, SchoolsKey, remaining); err != nil {
		return nil, err
	}
	return removed, nil
}

// removeFirst drops the first item matching and returns it.
func removeFirst[T any](items []T, match func(T) bool) ([]T, *T) {
	for i := range items {
		if match(items[i]) {
			removed := items[i]
			out := make([]T, 0, len(items)-1)
			out = append(out, items[:i]...)
			out = append(out, items[i+1:]...)
			return out, &removed
		}
	}
	return items, nil
}
