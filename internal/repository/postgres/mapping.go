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

type mappingRepository struct {
	db *sqlx.DB
	mappingWriter
}

func NewMappingRepository(db *sqlx.DB) repository.MappingRepository {
	return &mappingRepository{db: db, mappingWriter: mappingWriter{q: db}}
}

// WithTx runs fn against a writer bound to one transaction, so a demotion and
// the subsequent write are observed as a single logical unit.
func (r *mappingRepository) WithTx(ctx context.Context, fn func(tx repository.MappingWriter) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&mappingWriter{q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}

// mappingWriter issues mapping writes against either the pool or a transaction.
type mappingWriter struct {
	q sqlx.ExtContext
}

func (w *mappingWriter) Create(ctx context.Context, mapping *model.PatientDoctorMapping) error {
	query := `
		INSERT INTO patient_doctor_mappings
			(patient_id, doctor_id, assigned_date, notes, is_primary, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	now := time.Now()
	mapping.AssignedDate = now
	mapping.CreatedAt = now
	mapping.UpdatedAt = now

	err := w.q.QueryRowxContext(ctx, query,
		mapping.PatientID,
		mapping.DoctorID,
		mapping.AssignedDate,
		mapping.Notes,
		mapping.IsPrimary,
		mapping.IsActive,
		mapping.CreatedAt,
		mapping.UpdatedAt,
	).Scan(&mapping.ID)
	if err != nil {
		if isUniqueViolation(err, "patient_doctor_mappings_patient_id_doctor_id_key") {
			return apperrors.Conflict("This doctor is already assigned to this patient.")
		}
		return fmt.Errorf("failed to create mapping: %w", err)
	}
	return nil
}

func (w *mappingWriter) Update(ctx context.Context, mapping *model.PatientDoctorMapping) error {
	query := `
		UPDATE patient_doctor_mappings
		SET notes = $1, is_primary = $2, is_active = $3, updated_at = $4
		WHERE id = $5
	`
	mapping.UpdatedAt = time.Now()

	res, err := w.q.ExecContext(ctx, query,
		mapping.Notes,
		mapping.IsPrimary,
		mapping.IsActive,
		mapping.UpdatedAt,
		mapping.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update mapping: %w", err)
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

func (w *mappingWriter) DemoteOtherPrimaries(ctx context.Context, patientID, excludeID int64) error {
	_, err := w.q.ExecContext(ctx, `
		UPDATE patient_doctor_mappings
		SET is_primary = FALSE, updated_at = $1
		WHERE patient_id = $2 AND id <> $3 AND is_primary
	`, time.Now(), patientID, excludeID)
	if err != nil {
		return fmt.Errorf("failed to demote other primaries: %w", err)
	}
	return nil
}

// mappingRow joins the mapping with its patient and doctor summaries.
type mappingRow struct {
	model.PatientDoctorMapping
	Patient model.PatientSummary `db:"patient"`
	Doctor  model.DoctorSummary  `db:"doctor"`
}

func (row *mappingRow) toModel() *model.PatientDoctorMapping {
	m := row.PatientDoctorMapping
	patient := row.Patient
	doctor := row.Doctor
	m.PatientDetails = &patient
	m.DoctorDetails = &doctor
	return &m
}

const mappingSelect = `
	SELECT m.id, m.patient_id, m.doctor_id, m.assigned_date, m.notes,
		m.is_primary, m.is_active, m.created_at, m.updated_at,
		p.id AS "patient.id", p.name AS "patient.name", p.email AS "patient.email",
		d.id AS "doctor.id", d.name AS "doctor.name",
		d.specialization AS "doctor.specialization",
		d.hospital_affiliation AS "doctor.hospital_affiliation",
		d.consultation_fee AS "doctor.consultation_fee",
		d.years_of_experience AS "doctor.years_of_experience",
		d.is_active AS "doctor.is_active"
	FROM patient_doctor_mappings m
	JOIN patients p ON p.id = m.patient_id
	JOIN doctors d ON d.id = m.doctor_id
`

func (r *mappingRepository) GetForOwner(ctx context.Context, id, ownerID int64) (*model.PatientDoctorMapping, error) {
	var row mappingRow
	err := r.db.GetContext(ctx, &row,
		mappingSelect+` WHERE m.id = $1 AND p.created_by = $2`, id, ownerID)
	if err != nil {
		return nil, notFound(err)
	}
	return row.toModel(), nil
}

func (r *mappingRepository) ListForOwner(ctx context.Context, ownerID int64) ([]*model.PatientDoctorMapping, error) {
	var rows []mappingRow
	err := r.db.SelectContext(ctx, &rows,
		mappingSelect+` WHERE p.created_by = $1 ORDER BY m.assigned_date DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list mappings: %w", err)
	}

	mappings := make([]*model.PatientDoctorMapping, 0, len(rows))
	for i := range rows {
		mappings = append(mappings, rows[i].toModel())
	}
	return mappings, nil
}

func (r *mappingRepository) ListActiveForPatient(ctx context.Context, patientID int64) ([]*model.PatientDoctorMapping, error) {
	var rows []mappingRow
	err := r.db.SelectContext(ctx, &rows,
		mappingSelect+` WHERE m.patient_id = $1 AND m.is_active ORDER BY m.assigned_date DESC`,
		patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list mappings for patient: %w", err)
	}

	mappings := make([]*model.PatientDoctorMapping, 0, len(rows))
	for i := range rows {
		mappings = append(mappings, rows[i].toModel())
	}
	return mappings, nil
}

func (r *mappingRepository) Exists(ctx context.Context, patientID, doctorID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM patient_doctor_mappings
			WHERE patient_id = $1 AND doctor_id = $2
		)`, patientID, doctorID)
	if err != nil {
		return false, fmt.Errorf("failed to check mapping existence: %w", err)
	}
	return exists, nil
}

func (r *mappingRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM patient_doctor_mappings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete mapping: %w", err)
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
