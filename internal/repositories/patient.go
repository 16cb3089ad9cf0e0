package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"caresync/hospital-api/internal/models"
)

type PatientRepository interface {
	Create(patient *models.Patient) error
	FindByEmail(email string) (*models.Patient, error)
	FindByID(id uuid.UUID) (*models.Patient, error)
	FindUnassigned(page int) ([]models.Patient, int64, error)
	SearchUnassignedByEmail(email string) ([]models.Patient, error)
}

type patientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) PatientRepository {
	return &patientRepository{db: db}
}

// Create implements PatientRepository.
func (r *patientRepository) Create(patient *models.Patient) error {
	if err := r.db.Create(patient).Error; err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}

	return nil
}

// FindByEmail implements PatientRepository.
func (r *patientRepository) FindByEmail(email string) (*models.Patient, error) {
	var patient models.Patient
	if err := r.db.Where("email = ?", email).First(&patient).Error; err != nil {
		return nil, fmt.Errorf("failed to find patient by email: %w", err)
	}

	return &patient, nil
}

// FindByID implements PatientRepository.
func (r *patientRepository) FindByID(id uuid.UUID) (*models.Patient, error) {
	var patient models.Patient
	if err := r.db.Where("id = ?", id).First(&patient).Error; err != nil {
		return nil, fmt.Errorf("failed to find patient: %w", err)
	}

	return &patient, nil
}

// FindUnassigned returns one page of patients that have no DoctorPatient row,
// together with the total number of unassigned patients. Order is natural id
// order; callers must not depend on it across pages.
func (r *patientRepository) FindUnassigned(page int) ([]models.Patient, int64, error) {
	query := r.db.Model(&models.Patient{}).
		Joins("LEFT JOIN doctor_patients ON doctor_patients.patient_id = patients.id").
		Where("doctor_patients.id IS NULL").
		Session(&gorm.Session{})

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count unassigned patients: %w", err)
	}

	var patients []models.Patient
	if err := query.Offset(pageOffset(page)).Limit(PageSize).Find(&patients).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find unassigned patients: %w", err)
	}

	return patients, count, nil
}

// SearchUnassignedByEmail filters the unassigned set by exact email. A miss is
// an empty slice, not an error.
func (r *patientRepository) SearchUnassignedByEmail(email string) ([]models.Patient, error) {
	var patients []models.Patient
	err := r.db.Model(&models.Patient{}).
		Joins("LEFT JOIN doctor_patients ON doctor_patients.patient_id = patients.id").
		Where("doctor_patients.id IS NULL").
		Where("patients.email = ?", email).
		Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search unassigned patients: %w", err)
	}

	return patients, nil
}
