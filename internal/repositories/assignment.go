package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"caresync/hospital-api/internal/models"
)

type AssignmentRepository interface {
	Create(assignment *models.DoctorPatient) error
	DeleteByDoctorAndPatient(doctorID, patientID uuid.UUID) (int64, error)
	FindByPatient(patientID uuid.UUID) (*models.DoctorPatient, error)
	ListByDoctor(doctorID uuid.UUID, page int) ([]models.DoctorPatient, int64, error)
	SearchByDoctorAndEmail(doctorID uuid.UUID, email string) ([]models.DoctorPatient, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

// Create inserts the assignment. The unique index on patient_id makes the
// insert the conflict check: assigning an already-assigned patient fails with
// gorm.ErrDuplicatedKey, regardless of which doctor holds the assignment.
func (r *assignmentRepository) Create(assignment *models.DoctorPatient) error {
	if err := r.db.Create(assignment).Error; err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}

	return nil
}

// DeleteByDoctorAndPatient removes the assignment matching both ids and
// reports how many rows went away. Zero means the patient is not assigned to
// this doctor; another doctor's assignment is never touched.
func (r *assignmentRepository) DeleteByDoctorAndPatient(doctorID, patientID uuid.UUID) (int64, error) {
	result := r.db.
		Where("doctor_id = ? AND patient_id = ?", doctorID, patientID).
		Delete(&models.DoctorPatient{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete assignment: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// FindByPatient is the inverse lookup: the one assignment for a patient, with
// the doctor detail joined.
func (r *assignmentRepository) FindByPatient(patientID uuid.UUID) (*models.DoctorPatient, error) {
	var assignment models.DoctorPatient
	err := r.db.
		Preload("Doctor").
		Where("patient_id = ?", patientID).
		First(&assignment).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}

	return &assignment, nil
}

// ListByDoctor returns one page of the doctor's assignments with patient
// details, plus the doctor's total assignment count.
func (r *assignmentRepository) ListByDoctor(doctorID uuid.UUID, page int) ([]models.DoctorPatient, int64, error) {
	var count int64
	if err := r.db.Model(&models.DoctorPatient{}).Where("doctor_id = ?", doctorID).Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count assignments: %w", err)
	}

	var assignments []models.DoctorPatient
	err := r.db.
		Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Offset(pageOffset(page)).
		Limit(PageSize).
		Find(&assignments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assignments: %w", err)
	}

	return assignments, count, nil
}

// SearchByDoctorAndEmail filters the doctor's assignments by exact patient
// email.
func (r *assignmentRepository) SearchByDoctorAndEmail(doctorID uuid.UUID, email string) ([]models.DoctorPatient, error) {
	var assignments []models.DoctorPatient
	err := r.db.
		Preload("Patient").
		Joins("JOIN patients ON patients.id = doctor_patients.patient_id").
		Where("doctor_patients.doctor_id = ? AND patients.email = ?", doctorID, email).
		Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search assignments: %w", err)
	}

	return assignments, nil
}
