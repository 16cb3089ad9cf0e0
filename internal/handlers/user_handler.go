package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"caresync/hospital-api/internal/middleware"
	"caresync/hospital-api/internal/models"
	"caresync/hospital-api/internal/repositories"
)

// UserHandler serves the role-agnostic current-user lookup. Role is not
// stored anywhere; it falls out of which table the token's id matches.
type UserHandler struct {
	doctorRepo  repositories.DoctorRepository
	patientRepo repositories.PatientRepository
}

func NewUserHandler(doctorRepo repositories.DoctorRepository, patientRepo repositories.PatientRepository) *UserHandler {
	return &UserHandler{
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
	}
}

func (h *UserHandler) HandleDetails(c *fiber.Ctx) error {
	id, ok := middleware.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.Response{
			Success: false,
			Message: "authorization required",
		})
	}

	doctor, err := h.doctorRepo.FindByID(id)
	if err == nil {
		return c.JSON(models.Response{
			Success: true,
			Data:    models.UserDetails{Role: models.RoleDoctor, User: doctor},
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(models.Response{
			Success: false,
			Message: "something went wrong",
		})
	}

	patient, err := h.patientRepo.FindByID(id)
	if err == nil {
		return c.JSON(models.Response{
			Success: true,
			Data:    models.UserDetails{Role: models.RolePatient, User: patient},
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(models.Response{
			Success: false,
			Message: "something went wrong",
		})
	}

	return c.Status(fiber.StatusNotFound).JSON(models.Response{
		Success: false,
		Message: "user doesn't exist",
	})
}
