package model

import "time"

// PatientDoctorMapping assigns a doctor to a patient. The (patient, doctor)
// pair is unique and at most one active mapping per patient carries
// is_primary=true.
type PatientDoctorMapping struct {
	Base
	PatientID    int64     `json:"patient" db:"patient_id"`
	DoctorID     int64     `json:"doctor" db:"doctor_id"`
	AssignedDate time.Time `json:"assigned_date" db:"assigned_date"`
	Notes        string    `json:"notes" db:"notes"`
	IsPrimary    bool      `json:"is_primary" db:"is_primary"`
	IsActive     bool      `json:"is_active" db:"is_active"`

	PatientDetails *PatientSummary `json:"patient_details,omitempty" db:"-"`
	DoctorDetails  *DoctorSummary  `json:"doctor_details,omitempty" db:"-"`
}

type CreateMappingRequest struct {
	PatientID int64  `json:"patient_id" binding:"required"`
	DoctorID  int64  `json:"doctor_id" binding:"required"`
	Notes     string `json:"notes"`
	IsPrimary bool   `json:"is_primary"`
}

type UpdateMappingRequest struct {
	Notes     *string `json:"notes"`
	IsPrimary *bool   `json:"is_primary"`
	IsActive  *bool   `json:"is_active"`
}

type BulkAssignRequest struct {
	PatientID int64   `json:"patient_id" binding:"required"`
	DoctorIDs []int64 `json:"doctor_ids" binding:"required,min=1"`
	Notes     string  `json:"notes"`
}

// BulkAssignResult carries the independent per-item outcomes of a bulk
// assignment. A partial failure is not an overall failure.
type BulkAssignResult struct {
	Created []*PatientDoctorMapping
	Errors  []string
}
