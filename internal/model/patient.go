package model

// Gender choices
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "O"
)

// Patient is a patient record owned by the user that created it.
type Patient struct {
	Base
	Name             string `json:"name" db:"name"`
	Email            string `json:"email" db:"email"`
	Phone            string `json:"phone" db:"phone"`
	DateOfBirth      Date   `json:"date_of_birth" db:"date_of_birth"`
	Gender           string `json:"gender" db:"gender"`
	Address          string `json:"address" db:"address"`
	MedicalHistory   string `json:"medical_history" db:"medical_history"`
	EmergencyContact string `json:"emergency_contact" db:"emergency_contact"`
	EmergencyPhone   string `json:"emergency_phone" db:"emergency_phone"`
	CreatedBy        int64  `json:"created_by" db:"created_by"`
}

// PatientSummary is the nested view embedded in mapping responses.
type PatientSummary struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}

func (p *Patient) Summary() *PatientSummary {
	return &PatientSummary{ID: p.ID, Name: p.Name, Email: p.Email}
}

type CreatePatientRequest struct {
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone" binding:"required"`
	DateOfBirth      Date   `json:"date_of_birth" binding:"required"`
	Gender           string `json:"gender" binding:"required,oneof=M F O"`
	Address          string `json:"address" binding:"required"`
	MedicalHistory   string `json:"medical_history"`
	EmergencyContact string `json:"emergency_contact"`
	EmergencyPhone   string `json:"emergency_phone"`
}

type UpdatePatientRequest struct {
	Name             *string `json:"name"`
	Email            *string `json:"email" binding:"omitempty,email"`
	Phone            *string `json:"phone"`
	DateOfBirth      *Date   `json:"date_of_birth"`
	Gender           *string `json:"gender" binding:"omitempty,oneof=M F O"`
	Address          *string `json:"address"`
	MedicalHistory   *string `json:"medical_history"`
	EmergencyContact *string `json:"emergency_contact"`
	EmergencyPhone   *string `json:"emergency_phone"`
}
