package repository

import (
	"context"

	"github.com/douradinams/Douradinams/internal/models"
)

// StaffRepository manages the staff roster.
type StaffRepository struct {
	c     *Collections
	newID IDGenerator
}

// NewStaffRepository constructs a StaffRepository.
func NewStaffRepository(c *Collections) *StaffRepository {
	return &StaffRepository{c: c, newID: NewID}
}

// List returns the roster, seeding it on first use.
func (r *StaffRepository) List(ctx context.Context) ([]models.StaffMember, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	return loadSeeded(ctx, r.c, StaffKey, seedStaff())
}

// Add appends member under a fresh id; any id on member is ignored.
func (r *StaffRepository) Add(ctx context.Context, member models.StaffMember) (models.StaffMember, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	staff, err := loadSeeded(ctx, r.c, StaffKey, seedStaff())
	if err != nil {
		return models.StaffMember{}, err
	}
	member.ID = uniqueID(r.newID, func(id string) bool {
		for _, m := range staff {
			if m.ID == id {
				return true
			}
		}
		return false
	})
	staff = append(staff, member)
	if err := r.c.writeJSON(ctx, StaffKey, staff); err != nil {
		return models.StaffMember{}, err
	}
	return member, nil
}

// Delete removes the first member with id; an unknown id is a no-op.
func (r *StaffRepository) Delete(ctx context.Context, id string) (*models.StaffMember, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	staff, err := loadSeeded(ctx, r.c, StaffKey, seedStaff())
	if err != nil {
		return nil, err
	}
	remaining, removed := removeFirst(staff, func(m models.StaffMember) bool { return m.ID == id })
	if err := r.c.writeJSON(ctx, StaffKey, remaining); err != nil {
		return nil, err
	}
	return removed, nil
}

// GetByCPF returns the first member with an exactly equal CPF.
func (r *StaffRepository) GetByCPF(ctx context.Context, cpf string) (*models.StaffMember, error) {
	staff, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range staff {
		if staff[i].CPF == cpf {
			return &staff[i], nil
		}
	}
	return nil, ErrRecordNotFound
}
