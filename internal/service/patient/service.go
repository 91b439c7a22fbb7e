package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/carelink/healthcare-api/internal/model"
	"github.com/carelink/healthcare-api/internal/repository"
	apperrors "github.com/carelink/healthcare-api/pkg/errors"
)

// Service exposes patient CRUD scoped to the requesting user. A patient owned
// by a different user is indistinguishable from a missing one.
type Service interface {
	Create(ctx context.Context, userID int64, req *model.CreatePatientRequest) (*model.Patient, error)
	Get(ctx context.Context, userID, id int64) (*model.Patient, error)
	List(ctx context.Context, userID int64) ([]*model.Patient, error)
	Update(ctx context.Context, userID, id int64, req *model.UpdatePatientRequest) (*model.Patient, error)
	Delete(ctx context.Context, userID, id int64) error
}

type service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID int64, req *model.CreatePatientRequest) (*model.Patient, error) {
	taken, err := s.repo.EmailExistsForOwner(ctx, req.Email, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check patient email: %w", err)
	}
	if taken {
		return nil, apperrors.FieldValidation("email", "A patient with this email already exists.")
	}

	patient := &model.Patient{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		DateOfBirth:      req.DateOfBirth,
		Gender:           req.Gender,
		Address:          req.Address,
		MedicalHistory:   req.MedicalHistory,
		EmergencyContact: req.EmergencyContact,
		EmergencyPhone:   req.EmergencyPhone,
		CreatedBy:        userID,
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *service) Get(ctx context.Context, userID, id int64) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id, userID)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return patient, nil
}

func (s *service) List(ctx context.Context, userID int64) ([]*model.Patient, error) {
	return s.repo.List(ctx, userID)
}

func (s *service) Update(ctx context.Context, userID, id int64, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id, userID)
	if err != nil {
		return nil, translateNotFound(err)
	}

	if req.Email != nil && *req.Email != patient.Email {
		taken, err := s.repo.EmailExistsForOwner(ctx, *req.Email, userID, patient.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check patient email: %w", err)
		}
		if taken {
			return nil, apperrors.FieldValidation("email", "A patient with this email already exists.")
		}
		patient.Email = *req.Email
	}

	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}
	if req.DateOfBirth != nil {
		patient.DateOfBirth = *req.DateOfBirth
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}
	if req.MedicalHistory != nil {
		patient.MedicalHistory = *req.MedicalHistory
	}
	if req.EmergencyContact != nil {
		patient.EmergencyContact = *req.EmergencyContact
	}
	if req.EmergencyPhone != nil {
		patient.EmergencyPhone = *req.EmergencyPhone
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, translateNotFound(err)
	}
	return patient, nil
}

func (s *service) Delete(ctx context.Context, userID, id int64) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return translateNotFound(err)
	}
	return nil
}

func translateNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("Patient not found")
	}
	return err
}
