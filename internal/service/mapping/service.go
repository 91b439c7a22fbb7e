package mapping

import (
	"context"
	"errors"
	"fmt"

	"github.com/carelink/healthcare-api/internal/model"
	"github.com/carelink/healthcare-api/internal/repository"
	apperrors "github.com/carelink/healthcare-api/pkg/errors"
)

// Service manages patient-doctor assignments for the requesting user's own
// patients. It maintains two invariants: the (patient, doctor) pair is unique,
// and at most one mapping per patient is flagged primary.
type Service interface {
	Create(ctx context.Context, userID int64, req *model.CreateMappingRequest) (*model.PatientDoctorMapping, error)
	List(ctx context.Context, userID int64) ([]*model.PatientDoctorMapping, error)
	Update(ctx context.Context, userID, id int64, req *model.UpdateMappingRequest) (*model.PatientDoctorMapping, error)
	Destroy(ctx context.Context, userID, id int64) (*model.PatientDoctorMapping, error)
	DoctorsByPatient(ctx context.Context, userID, patientID int64) (*model.Patient, []*model.PatientDoctorMapping, error)
	BulkAssign(ctx context.Context, userID int64, req *model.BulkAssignRequest) (*model.BulkAssignResult, error)
}

type service struct {
	repo     repository.MappingRepository
	patients repository.PatientRepository
	doctors  repository.DoctorRepository
}

func NewService(repo repository.MappingRepository, patients repository.PatientRepository, doctors repository.DoctorRepository) Service {
	return &service{
		repo:     repo,
		patients: patients,
		doctors:  doctors,
	}
}

func (s *service) Create(ctx context.Context, userID int64, req *model.CreateMappingRequest) (*model.PatientDoctorMapping, error) {
	patient, err := s.patients.Get(ctx, req.PatientID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Validation("You can only assign doctors to your own patients.")
		}
		return nil, err
	}

	doctor, err := s.doctors.Get(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Doctor not found")
		}
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, req.PatientID, req.DoctorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("This doctor is already assigned to this patient.")
	}

	mapping := &model.PatientDoctorMapping{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Notes:     req.Notes,
		IsPrimary: req.IsPrimary,
		IsActive:  true,
	}

	if err := s.write(ctx, mapping, mapping.IsPrimary, func(tx repository.MappingWriter) error {
		return tx.Create(ctx, mapping)
	}); err != nil {
		return nil, err
	}

	mapping.PatientDetails = patient.Summary()
	mapping.DoctorDetails = doctor.Summary()
	return mapping, nil
}

func (s *service) List(ctx context.Context, userID int64) ([]*model.PatientDoctorMapping, error) {
	return s.repo.ListForOwner(ctx, userID)
}

func (s *service) Update(ctx context.Context, userID, id int64, req *model.UpdateMappingRequest) (*model.PatientDoctorMapping, error) {
	mapping, err := s.repo.GetForOwner(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Mapping not found")
		}
		return nil, err
	}

	if req.Notes != nil {
		mapping.Notes = *req.Notes
	}
	if req.IsPrimary != nil {
		mapping.IsPrimary = *req.IsPrimary
	}
	if req.IsActive != nil {
		mapping.IsActive = *req.IsActive
	}

	if err := s.write(ctx, mapping, mapping.IsPrimary, func(tx repository.MappingWriter) error {
		return tx.Update(ctx, mapping)
	}); err != nil {
		return nil, err
	}
	return mapping, nil
}

func (s *service) Destroy(ctx context.Context, userID, id int64) (*model.PatientDoctorMapping, error) {
	mapping, err := s.repo.GetForOwner(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Mapping not found")
		}
		return nil, err
	}

	// No invariant to restore: a deleted primary leaves the patient without
	// a primary doctor.
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return mapping, nil
}

func (s *service) DoctorsByPatient(ctx context.Context, userID, patientID int64) (*model.Patient, []*model.PatientDoctorMapping, error) {
	patient, err := s.patients.Get(ctx, patientID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, apperrors.NotFound("Patient not found or you do not have permission to view this patient")
		}
		return nil, nil, err
	}

	mappings, err := s.repo.ListActiveForPatient(ctx, patientID)
	if err != nil {
		return nil, nil, err
	}
	return patient, mappings, nil
}

// BulkAssign creates one mapping per doctor id, best effort. Item failures are
// collected as messages in request order; only an unresolvable patient fails
// the whole call.
func (s *service) BulkAssign(ctx context.Context, userID int64, req *model.BulkAssignRequest) (*model.BulkAssignResult, error) {
	patient, err := s.patients.Get(ctx, req.PatientID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Patient not found or you do not have permission to access this patient")
		}
		return nil, err
	}

	result := &model.BulkAssignResult{
		Created: []*model.PatientDoctorMapping{},
		Errors:  []string{},
	}

	for _, doctorID := range req.DoctorIDs {
		doctor, err := s.doctors.Get(ctx, doctorID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				result.Errors = append(result.Errors, fmt.Sprintf("Doctor with ID %d not found", doctorID))
				continue
			}
			return nil, err
		}

		exists, err := s.repo.Exists(ctx, req.PatientID, doctorID)
		if err != nil {
			return nil, err
		}
		if exists {
			result.Errors = append(result.Errors, fmt.Sprintf("Dr. %s is already assigned to this patient", doctor.Name))
			continue
		}

		// Bulk assignment never sets primary.
		mapping := &model.PatientDoctorMapping{
			PatientID: req.PatientID,
			DoctorID:  doctorID,
			Notes:     req.Notes,
			IsActive:  true,
		}
		if err := s.repo.Create(ctx, mapping); err != nil {
			if apperrors.IsType(err, apperrors.TypeConflict) {
				result.Errors = append(result.Errors, fmt.Sprintf("Dr. %s is already assigned to this patient", doctor.Name))
				continue
			}
			return nil, err
		}

		mapping.PatientDetails = patient.Summary()
		mapping.DoctorDetails = doctor.Summary()
		result.Created = append(result.Created, mapping)
	}

	return result, nil
}

// write persists a mapping. When the record is flagged primary the demotion of
// every other mapping for the patient and the write itself run inside one
// transaction, so two racing writers cannot leave two primaries standing.
func (s *service) write(ctx context.Context, mapping *model.PatientDoctorMapping, primary bool, op func(repository.MappingWriter) error) error {
	if !primary {
		return op(s.repo)
	}

	return s.repo.WithTx(ctx, func(tx repository.MappingWriter) error {
		if err := tx.DemoteOtherPrimaries(ctx, mapping.PatientID, mapping.ID); err != nil {
			return err
		}
		return op(tx)
	})
}
