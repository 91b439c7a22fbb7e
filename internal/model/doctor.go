package model

// Specialization values
const (
	SpecializationCardiology       = "CARDIOLOGY"
	SpecializationDermatology      = "DERMATOLOGY"
	SpecializationEndocrinology    = "ENDOCRINOLOGY"
	SpecializationGastroenterology = "GASTROENTEROLOGY"
	SpecializationGeneralPractice  = "GENERAL_PRACTICE"
	SpecializationNeurology        = "NEUROLOGY"
	SpecializationOncology         = "ONCOLOGY"
	SpecializationOrthopedics      = "ORTHOPEDICS"
	SpecializationPediatrics       = "PEDIATRICS"
	SpecializationPsychiatry       = "PSYCHIATRY"
	SpecializationRadiology        = "RADIOLOGY"
	SpecializationSurgery          = "SURGERY"
	SpecializationUrology          = "UROLOGY"
)

// SpecializationChoice is a (value, label) pair for client choice lists.
type SpecializationChoice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SpecializationChoices lists every supported specialization in display order.
var SpecializationChoices = []SpecializationChoice{
	{SpecializationCardiology, "Cardiology"},
	{SpecializationDermatology, "Dermatology"},
	{SpecializationEndocrinology, "Endocrinology"},
	{SpecializationGastroenterology, "Gastroenterology"},
	{SpecializationGeneralPractice, "General Practice"},
	{SpecializationNeurology, "Neurology"},
	{SpecializationOncology, "Oncology"},
	{SpecializationOrthopedics, "Orthopedics"},
	{SpecializationPediatrics, "Pediatrics"},
	{SpecializationPsychiatry, "Psychiatry"},
	{SpecializationRadiology, "Radiology"},
	{SpecializationSurgery, "Surgery"},
	{SpecializationUrology, "Urology"},
}

// IsValidSpecialization reports whether value is one of the supported choices.
func IsValidSpecialization(value string) bool {
	for _, c := range SpecializationChoices {
		if c.Value == value {
			return true
		}
	}
	return false
}

// Doctor is a directory entry visible to every authenticated user.
type Doctor struct {
	Base
	Name                string  `json:"name" db:"name"`
	Email               string  `json:"email" db:"email"`
	Phone               string  `json:"phone" db:"phone"`
	Specialization      string  `json:"specialization" db:"specialization"`
	LicenseNumber       string  `json:"license_number" db:"license_number"`
	YearsOfExperience   int     `json:"years_of_experience" db:"years_of_experience"`
	HospitalAffiliation string  `json:"hospital_affiliation" db:"hospital_affiliation"`
	ConsultationFee     float64 `json:"consultation_fee" db:"consultation_fee"`
	AvailabilityHours   string  `json:"availability_hours" db:"availability_hours"`
	Bio                 string  `json:"bio" db:"bio"`
	IsActive            bool    `json:"is_active" db:"is_active"`
}

// DoctorSummary is the condensed view used in lists and mapping responses.
type DoctorSummary struct {
	ID                  int64   `json:"id" db:"id"`
	Name                string  `json:"name" db:"name"`
	Specialization      string  `json:"specialization" db:"specialization"`
	HospitalAffiliation string  `json:"hospital_affiliation" db:"hospital_affiliation"`
	ConsultationFee     float64 `json:"consultation_fee" db:"consultation_fee"`
	YearsOfExperience   int     `json:"years_of_experience" db:"years_of_experience"`
	IsActive            bool    `json:"is_active" db:"is_active"`
}

func (d *Doctor) Summary() *DoctorSummary {
	return &DoctorSummary{
		ID:                  d.ID,
		Name:                d.Name,
		Specialization:      d.Specialization,
		HospitalAffiliation: d.HospitalAffiliation,
		ConsultationFee:     d.ConsultationFee,
		YearsOfExperience:   d.YearsOfExperience,
		IsActive:            d.IsActive,
	}
}

// DoctorFilters narrows the directory listing.
type DoctorFilters struct {
	Specialization string
	IsActive       *bool
}

type CreateDoctorRequest struct {
	Name                string  `json:"name" binding:"required"`
	Email               string  `json:"email" binding:"required,email"`
	Phone               string  `json:"phone" binding:"required"`
	Specialization      string  `json:"specialization" binding:"required,specialization"`
	LicenseNumber       string  `json:"license_number" binding:"required"`
	YearsOfExperience   int     `json:"years_of_experience" binding:"min=0,max=70"`
	HospitalAffiliation string  `json:"hospital_affiliation" binding:"required"`
	ConsultationFee     float64 `json:"consultation_fee" binding:"min=0"`
	AvailabilityHours   string  `json:"availability_hours" binding:"required"`
	Bio                 string  `json:"bio"`
	IsActive            *bool   `json:"is_active"`
}

type UpdateDoctorRequest struct {
	Name                *string  `json:"name"`
	Email               *string  `json:"email" binding:"omitempty,email"`
	Phone               *string  `json:"phone"`
	Specialization      *string  `json:"specialization" binding:"omitempty,specialization"`
	LicenseNumber       *string  `json:"license_number"`
	YearsOfExperience   *int     `json:"years_of_experience" binding:"omitempty,min=0,max=70"`
	HospitalAffiliation *string  `json:"hospital_affiliation"`
	ConsultationFee     *float64 `json:"consultation_fee" binding:"omitempty,min=0"`
	AvailabilityHours   *string  `json:"availability_hours"`
	Bio                 *string  `json:"bio"`
	IsActive            *bool    `json:"is_active"`
}
