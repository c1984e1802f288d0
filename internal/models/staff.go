package models

// StaffRole distinguishes drivers from school administrators.
type StaffRole string

const (
	StaffRoleDriver StaffRole = "driver"
	StaffRoleAdmin  StaffRole = "admin"
)

// StaffMember can sign in with their CPF.
type StaffMember struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	CPF  string    `json:"cpf"`
	Role StaffRole `json:"role"`
}

// CreateStaffRequest registers a staff member.
type CreateStaffRequest struct {
	Name string    `json:"name" validate:"required"`
	CPF  string    `json:"cpf" validate:"required"`
	Role StaffRole `json:"role" validate:"required,oneof=driver admin"`
}
