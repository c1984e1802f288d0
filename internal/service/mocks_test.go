package service

import (
	"context"
	"errors"

	"github.com/douradinams/Douradinams/internal/models"
	"github.com/douradinams/Douradinams/internal/repository"
)

type mockStudentRepo struct {
	items   []models.Student
	saveErr error
	getErr  error
	saved   []models.StudentPatch
}

func (m *mockStudentRepo) Search(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.items, nil
}

func (m *mockStudentRepo) Save(ctx context.Context, patch models.StudentPatch) (models.Student, error) {
	if m.saveErr != nil {
		return models.Student{}, m.saveErr
	}
	m.saved = append(m.saved, patch)
	for i := range m.items {
		if m.items[i].ID == patch.ID {
			patch.Apply(&m.items[i])
			return m.items[i], nil
		}
	}
	student := models.Student{ID: "new000001", RegistrationNumber: "2026-100"}
	patch.Apply(&student)
	m.items = append(m.items, student)
	return student, nil
}

func (m *mockStudentRepo) GetByID(ctx context.Context, id string) (*models.Student, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for i := range m.items {
		if m.items[i].ID == id {
			cp := m.items[i]
			return &cp, nil
		}
	}
	return nil, repository.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByCPFAndBirth(ctx context.Context, cpf, birthDate string) (*models.Student, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for i := range m.items {
		if m.items[i].CPF == cpf && m.items[i].BirthDate == birthDate {
			cp := m.items[i]
			return &cp, nil
		}
	}
	return nil, repository.ErrRecordNotFound
}

type mockStaffRepo struct {
	members []models.StaffMember
	err     error
}

func (m *mockStaffRepo) GetByCPF(ctx context.Context, cpf string) (*models.StaffMember, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.members {
		if m.members[i].CPF == cpf {
			cp := m.members[i]
			return &cp, nil
		}
	}
	return nil, repository.ErrRecordNotFound
}

type mockSchoolLister struct {
	schools []models.School
	err     error
}

func (m *mockSchoolLister) List(ctx context.Context) ([]models.School, error) {
	return m.schools, m.err
}

var errBoom = errors.New("boom")
