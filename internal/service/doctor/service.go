package doctor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/carelink/healthcare-api/internal/model"
	"github.com/carelink/healthcare-api/internal/repository"
	apperrors "github.com/carelink/healthcare-api/pkg/errors"
)

const (
	cacheTTL     = 5 * time.Minute
	cacheCleanup = 10 * time.Minute
)

// Service exposes the global doctor directory. Unlike patients, doctors are
// visible and mutable to every authenticated user.
type Service interface {
	Create(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error)
	Get(ctx context.Context, id int64) (*model.Doctor, error)
	List(ctx context.Context, filters *model.DoctorFilters) ([]*model.Doctor, error)
	Update(ctx context.Context, id int64, req *model.UpdateDoctorRequest) (*model.Doctor, error)
	Delete(ctx context.Context, id int64) error
	Specializations() []model.SpecializationChoice
}

type service struct {
	repo  repository.DoctorRepository
	cache *cache.Cache
}

func NewService(repo repository.DoctorRepository) Service {
	return &service{
		repo:  repo,
		cache: cache.New(cacheTTL, cacheCleanup),
	}
}

func (s *service) Create(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	if err := s.checkUnique(ctx, req.Email, req.LicenseNumber, 0); err != nil {
		return nil, err
	}

	doctor := &model.Doctor{
		Name:                req.Name,
		Email:               req.Email,
		Phone:               req.Phone,
		Specialization:      req.Specialization,
		LicenseNumber:       req.LicenseNumber,
		YearsOfExperience:   req.YearsOfExperience,
		HospitalAffiliation: req.HospitalAffiliation,
		ConsultationFee:     req.ConsultationFee,
		AvailabilityHours:   req.AvailabilityHours,
		Bio:                 req.Bio,
		IsActive:            true,
	}
	if req.IsActive != nil {
		doctor.IsActive = *req.IsActive
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, err
	}

	s.cache.Flush()
	return doctor, nil
}

func (s *service) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	key := cacheKey(id)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*model.Doctor), nil
	}

	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Doctor not found")
		}
		return nil, err
	}

	s.cache.Set(key, doctor, cache.DefaultExpiration)
	return doctor, nil
}

func (s *service) List(ctx context.Context, filters *model.DoctorFilters) ([]*model.Doctor, error) {
	return s.repo.List(ctx, filters)
}

func (s *service) Update(ctx context.Context, id int64, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Doctor not found")
		}
		return nil, err
	}

	email := doctor.Email
	if req.Email != nil {
		email = *req.Email
	}
	license := doctor.LicenseNumber
	if req.LicenseNumber != nil {
		license = *req.LicenseNumber
	}
	if err := s.checkUnique(ctx, email, license, doctor.ID); err != nil {
		return nil, err
	}

	doctor.Email = email
	doctor.LicenseNumber = license
	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Phone != nil {
		doctor.Phone = *req.Phone
	}
	if req.Specialization != nil {
		doctor.Specialization = *req.Specialization
	}
	if req.YearsOfExperience != nil {
		doctor.YearsOfExperience = *req.YearsOfExperience
	}
	if req.HospitalAffiliation != nil {
		doctor.HospitalAffiliation = *req.HospitalAffiliation
	}
	if req.ConsultationFee != nil {
		doctor.ConsultationFee = *req.ConsultationFee
	}
	if req.AvailabilityHours != nil {
		doctor.AvailabilityHours = *req.AvailabilityHours
	}
	if req.Bio != nil {
		doctor.Bio = *req.Bio
	}
	if req.IsActive != nil {
		doctor.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, doctor); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Doctor not found")
		}
		return nil, err
	}

	s.cache.Delete(cacheKey(id))
	return doctor, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Doctor not found")
		}
		return err
	}

	s.cache.Delete(cacheKey(id))
	return nil
}

func (s *service) Specializations() []model.SpecializationChoice {
	return model.SpecializationChoices
}

func (s *service) checkUnique(ctx context.Context, email, license string, excludeID int64) error {
	taken, err := s.repo.EmailExists(ctx, email, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check doctor email: %w", err)
	}
	if taken {
		return apperrors.FieldValidation("email", "A doctor with this email already exists.")
	}

	taken, err = s.repo.LicenseExists(ctx, license, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check doctor license: %w", err)
	}
	if taken {
		return apperrors.FieldValidation("license_number", "A doctor with this license number already exists.")
	}
	return nil
}

func cacheKey(id int64) string {
	return fmt.Sprintf("doctor:%d", id)
}
