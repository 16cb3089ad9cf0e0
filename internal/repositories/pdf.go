package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"caresync/hospital-api/internal/models"
)

type PdfRepository interface {
	Create(pdf *models.Pdf) error
	ListByDoctor(doctorID uuid.UUID, page int) ([]models.Pdf, error)
	SearchByName(doctorID uuid.UUID, name string) ([]models.Pdf, error)
	CountByDoctor(doctorID uuid.UUID) (int64, error)
}

type pdfRepository struct {
	db *gorm.DB
}

func NewPdfRepository(db *gorm.DB) PdfRepository {
	return &pdfRepository{db: db}
}

// Create implements PdfRepository.
func (r *pdfRepository) Create(pdf *models.Pdf) error {
	if err := r.db.Create(pdf).Error; err != nil {
		return fmt.Errorf("failed to create pdf record: %w", err)
	}

	return nil
}

// ListByDoctor returns one page of the doctor's PDFs, newest first.
func (r *pdfRepository) ListByDoctor(doctorID uuid.UUID, page int) ([]models.Pdf, error) {
	var pdfs []models.Pdf
	err := r.db.
		Where("doctor_id = ?", doctorID).
		Order("created_at DESC").
		Offset(pageOffset(page)).
		Limit(PageSize).
		Find(&pdfs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pdfs: %w", err)
	}

	return pdfs, nil
}

// SearchByName filters the doctor's PDFs by exact name, unpaginated.
func (r *pdfRepository) SearchByName(doctorID uuid.UUID, name string) ([]models.Pdf, error) {
	var pdfs []models.Pdf
	err := r.db.
		Where("doctor_id = ? AND name = ?", doctorID, name).
		Find(&pdfs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search pdfs: %w", err)
	}

	return pdfs, nil
}

// CountByDoctor implements PdfRepository.
func (r *pdfRepository) CountByDoctor(doctorID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Pdf{}).Where("doctor_id = ?", doctorID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count pdfs: %w", err)
	}

	return count, nil
}
