package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"caresync/hospital-api/internal/models"
)

type DoctorRepository interface {
	Create(doctor *models.Doctor) error
	FindByEmail(email string) (*models.Doctor, error)
	FindByID(id uuid.UUID) (*models.Doctor, error)
}

type doctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) DoctorRepository {
	return &doctorRepository{db: db}
}

// Create implements DoctorRepository. A duplicate email surfaces as
// gorm.ErrDuplicatedKey through the wrapped error.
func (r *doctorRepository) Create(doctor *models.Doctor) error {
	if err := r.db.Create(doctor).Error; err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}

	return nil
}

// FindByEmail implements DoctorRepository.
func (r *doctorRepository) FindByEmail(email string) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := r.db.Where("email = ?", email).First(&doctor).Error; err != nil {
		return nil, fmt.Errorf("failed to find doctor by email: %w", err)
	}

	return &doctor, nil
}

// FindByID implements DoctorRepository.
func (r *doctorRepository) FindByID(id uuid.UUID) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := r.db.Where("id = ?", id).First(&doctor).Error; err != nil {
		return nil, fmt.Errorf("failed to find doctor: %w", err)
	}

	return &doctor, nil
}
