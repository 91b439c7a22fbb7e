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

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (name, email, phone, date_of_birth, gender, address,
			medical_history, emergency_contact, emergency_phone, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = patient.CreatedAt

	err := r.db.QueryRowxContext(ctx, query,
		patient.Name,
		patient.Email,
		patient.Phone,
		patient.DateOfBirth,
		patient.Gender,
		patient.Address,
		patient.MedicalHistory,
		patient.EmergencyContact,
		patient.EmergencyPhone,
		patient.CreatedBy,
		patient.CreatedAt,
		patient.UpdatedAt,
	).Scan(&patient.ID)
	if err != nil {
		if isUniqueViolation(err, "patients_owner_email_key") {
			return apperrors.FieldValidation("email", "A patient with this email already exists.")
		}
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id, ownerID int64) (*model.Patient, error) {
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient,
		`SELECT * FROM patients WHERE id = $1 AND created_by = $2`, id, ownerID)
	if err != nil {
		return nil, notFound(err)
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context, ownerID int64) ([]*model.Patient, error) {
	patients := []*model.Patient{}
	err := r.db.SelectContext(ctx, &patients,
		`SELECT * FROM patients WHERE created_by = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET name = $1, email = $2, phone = $3, date_of_birth = $4, gender = $5,
			address = $6, medical_history = $7, emergency_contact = $8,
			emergency_phone = $9, updated_at = $10
		WHERE id = $11 AND created_by = $12
	`
	patient.UpdatedAt = time.Now()

	res, err := r.db.ExecContext(ctx, query,
		patient.Name,
		patient.Email,
		patient.Phone,
		patient.DateOfBirth,
		patient.Gender,
		patient.Address,
		patient.MedicalHistory,
		patient.EmergencyContact,
		patient.EmergencyPhone,
		patient.UpdatedAt,
		patient.ID,
		patient.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "patients_owner_email_key") {
			return apperrors.FieldValidation("email", "A patient with this email already exists.")
		}
		return fmt.Errorf("failed to update patient: %w", err)
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

func (r *patientRepository) Delete(ctx context.Context, id, ownerID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM patients WHERE id = $1 AND created_by = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
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

func (r *patientRepository) EmailExistsForOwner(ctx context.Context, email string, ownerID, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM patients
			WHERE lower(email) = lower($1) AND created_by = $2 AND id <> $3
		)`, email, ownerID, excludeID)
	if err != nil {
		return false, fmt.Errorf("failed to check patient email: %w", err)
	}
	return exists, nil
}
