package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/carelink/healthcare-api/internal/model"
	"github.com/carelink/healthcare-api/internal/repository"
	apperrors "github.com/carelink/healthcare-api/pkg/errors"
)

type doctorRepository struct {
	db *sqlx.DB
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (name, email, phone, specialization, license_number,
			years_of_experience, hospital_affiliation, consultation_fee,
			availability_hours, bio, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = doctor.CreatedAt

	err := r.db.QueryRowxContext(ctx, query,
		doctor.Name,
		doctor.Email,
		doctor.Phone,
		doctor.Specialization,
		doctor.LicenseNumber,
		doctor.YearsOfExperience,
		doctor.HospitalAffiliation,
		doctor.ConsultationFee,
		doctor.AvailabilityHours,
		doctor.Bio,
		doctor.IsActive,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	).Scan(&doctor.ID)
	if err != nil {
		return translateDoctorError(err)
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, `SELECT * FROM doctors WHERE id = $1`, id)
	if err != nil {
		return nil, notFound(err)
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context, filters *model.DoctorFilters) ([]*model.Doctor, error) {
	query := `SELECT * FROM doctors`
	args := []interface{}{}
	where := ""

	if filters != nil {
		if filters.Specialization != "" {
			args = append(args, filters.Specialization)
			where = fmt.Sprintf(" WHERE specialization = $%d", len(args))
		}
		if filters.IsActive != nil {
			args = append(args, *filters.IsActive)
			clause := fmt.Sprintf("is_active = $%d", len(args))
			if where == "" {
				where = " WHERE " + clause
			} else {
				where += " AND " + clause
			}
		}
	}

	doctors := []*model.Doctor{}
	err := r.db.SelectContext(ctx, &doctors, query+where+` ORDER BY name`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE doctors
		SET name = $1, email = $2, phone = $3, specialization = $4,
			license_number = $5, years_of_experience = $6, hospital_affiliation = $7,
			consultation_fee = $8, availability_hours = $9, bio = $10,
			is_active = $11, updated_at = $12
		WHERE id = $13
	`
	doctor.UpdatedAt = time.Now()

	res, err := r.db.ExecContext(ctx, query,
		doctor.Name,
		doctor.Email,
		doctor.Phone,
		doctor.Specialization,
		doctor.LicenseNumber,
		doctor.YearsOfExperience,
		doctor.HospitalAffiliation,
		doctor.ConsultationFee,
		doctor.AvailabilityHours,
		doctor.Bio,
		doctor.IsActive,
		doctor.UpdatedAt,
		doctor.ID,
	)
	if err != nil {
		return translateDoctorError(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *doctorRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *doctorRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM doctors WHERE lower(email) = lower($1) AND id <> $2)`,
		email, excludeID)
	if err != nil {
		return false, fmt.Errorf("failed to check doctor email: %w", err)
	}
	return exists, nil
}

func (r *doctorRepository) LicenseExists(ctx context.Context, license string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM doctors WHERE license_number = $1 AND id <> $2)`,
		license, excludeID)
	if err != nil {
		return false, fmt.Errorf("failed to check doctor license: %w", err)
	}
	return exists, nil
}

func translateDoctorError(err error) error {
	switch {
	case isUniqueViolation(err, "doctors_email_key"):
		return apperrors.FieldValidation("email", "A doctor with this email already exists.")
	case isUniqueViolation(err, "doctors_license_number_key"):
		return apperrors.FieldValidation("license_number", "A doctor with this license number already exists.")
	default:
		return fmt.Errorf("failed to write doctor: %w", err)
	}
}
