package models

// StudentStatus tracks where a student is in the pass issuing flow.
type StudentStatus string

const (
	StudentStatusActive   StudentStatus = "Active"
	StudentStatusPending  StudentStatus = "Pending"
	StudentStatusInactive StudentStatus = "Inactive"
)

// DefaultBloodType is preselected on the registration form.
const DefaultBloodType = "O+"

// Student is a transport pass holder. The JSON layout is the persisted layout.
type Student struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	CPF                string        `json:"cpf"`
	BirthDate          string        `json:"birthDate"`
	Parents            string        `json:"parents"`
	Phone              string        `json:"phone"`
	EmergencyPhone     string        `json:"emergencyPhone"`
	BloodType          string        `json:"bloodType"`
	SpecialNeeds       bool          `json:"specialNeeds"`
	School             string        `json:"school"`
	PhotoURL           string        `json:"photoUrl,omitempty"`
	Status             StudentStatus `json:"status"`
	RegistrationNumber string        `json:"registrationNumber"`
	CreatedAt          int64         `json:"createdAt"`
}

// StudentPatch is a partial student. Nil fields are left untouched on merge.
// An empty or unknown ID creates a new record.
type StudentPatch struct {
	ID             string
	Name           *string
	CPF            *string
	BirthDate      *string
	Parents        *string
	Phone          *string
	EmergencyPhone *string
	BloodType      *string
	SpecialNeeds   *bool
	School         *string
	PhotoURL       *string
	Status         *StudentStatus
}

// Apply copies every set field of p onto s.
func (p StudentPatch) Apply(s *Student) {
	setString(&s.Name, p.Name)
	setString(&s.CPF, p.CPF)
	setString(&s.BirthDate, p.BirthDate)
	setString(&s.Parents, p.Parents)
	setString(&s.Phone, p.Phone)
	setString(&s.EmergencyPhone, p.EmergencyPhone)
	setString(&s.BloodType, p.BloodType)
	setString(&s.School, p.School)
	setString(&s.PhotoURL, p.PhotoURL)
	if p.SpecialNeeds != nil {
		s.SpecialNeeds = *p.SpecialNeeds
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// StudentFilter narrows the dashboard list.
type StudentFilter struct {
	Search string
}

// CreateStudentRequest is the registration form payload.
type CreateStudentRequest struct {
	Name           string        `json:"name" validate:"required"`
	CPF            string        `json:"cpf" validate:"required"`
	BirthDate      string        `json:"birthDate" validate:"required,datetime=2006-01-02"`
	Parents        string        `json:"parents"`
	Phone          string        `json:"phone"`
	EmergencyPhone string        `json:"emergencyPhone"`
	BloodType      string        `json:"bloodType"`
	SpecialNeeds   bool          `json:"specialNeeds"`
	School         string        `json:"school"`
	PhotoURL       string        `json:"photoUrl"`
	Status         StudentStatus `json:"status" validate:"omitempty,oneof=Active Pending Inactive"`
}

// UpdateStudentRequest carries only the fields being edited.
type UpdateStudentRequest struct {
	Name           *string        `json:"name" validate:"omitempty,min=1"`
	CPF            *string        `json:"cpf" validate:"omitempty,min=1"`
	BirthDate      *string        `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	Parents        *string        `json:"parents"`
	Phone          *string        `json:"phone"`
	EmergencyPhone *string        `json:"emergencyPhone"`
	BloodType      *string        `json:"bloodType"`
	SpecialNeeds   *bool          `json:"specialNeeds"`
	School         *string        `json:"school"`
	PhotoURL       *string        `json:"photoUrl"`
	Status         *StudentStatus `json:"status" validate:"omitempty,oneof=Active Pending Inactive"`
}

// ImportResult summarises a roster upload.
type ImportResult struct {
	Imported int           `json:"imported"`
	Skipped  []ImportIssue `json:"skipped"`
	Students []Student     `json:"students"`
}

// ImportIssue explains why a spreadsheet row was not imported.
type ImportIssue struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}
