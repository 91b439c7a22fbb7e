package repository

import (
	"context"
	"errors"

	"github.com/carelink/healthcare-api/internal/model"
)

// ErrNotFound is returned when a row does not exist or is not visible to the
// requesting owner. Callers cannot distinguish the two cases.
var ErrNotFound = errors.New("record not found")

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// PatientRepository scopes every operation to the owning user.
type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id, ownerID int64) (*model.Patient, error)
	List(ctx context.Context, ownerID int64) ([]*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) error
	Delete(ctx context.Context, id, ownerID int64) error
	EmailExistsForOwner(ctx context.Context, email string, ownerID, excludeID int64) (bool, error)
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	Get(ctx context.Context, id int64) (*model.Doctor, error)
	List(ctx context.Context, filters *model.DoctorFilters) ([]*model.Doctor, error)
	Update(ctx context.Context, doctor *model.Doctor) error
	Delete(ctx context.Context, id int64) error
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	LicenseExists(ctx context.Context, license string, excludeID int64) (bool, error)
}

// MappingWriter is the write surface available inside a mapping transaction.
type MappingWriter interface {
	Create(ctx context.Context, mapping *model.PatientDoctorMapping) error
	Update(ctx context.Context, mapping *model.PatientDoctorMapping) error
	// DemoteOtherPrimaries clears is_primary on every other mapping of the
	// patient, so the subsequent write leaves at most one primary standing.
	DemoteOtherPrimaries(ctx context.Context, patientID, excludeID int64) error
}

type MappingRepository interface {
	MappingWriter
	// WithTx runs fn against a writer bound to a single database transaction.
	WithTx(ctx context.Context, fn func(tx MappingWriter) error) error
	GetForOwner(ctx context.Context, id, ownerID int64) (*model.PatientDoctorMapping, error)
	ListForOwner(ctx context.Context, ownerID int64) ([]*model.PatientDoctorMapping, error)
	ListActiveForPatient(ctx context.Context, patientID int64) ([]*model.PatientDoctorMapping, error)
	Exists(ctx context.Context, patientID, doctorID int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}
