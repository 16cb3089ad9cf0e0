package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"caresync/hospital-api/internal/auth"
	"caresync/hospital-api/internal/models"
	"caresync/hospital-api/internal/repositories"
)

type PatientHandler struct {
	patientRepo repositories.PatientRepository
	jwtSecret   string
}

func NewPatientHandler(patientRepo repositories.PatientRepository, jwtSecret string) *PatientHandler {
	return &PatientHandler{
		patientRepo: patientRepo,
		jwtSecret:   jwtSecret,
	}
}

func (h *PatientHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterPatientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{
			Success: false,
			Message: "invalid request body",
		})
	}

	if msg := validateCredentials(req.Email, req.Password); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{
			Success: false,
			Message: msg,
		})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.Response{
			Success: false,
			Message: "something went wrong",
		})
	}

	patient := models.Patient{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hash,
	}

	if err := h.patientRepo.Create(&patient); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(models.Response{
				Success: false,
				Message: "patient already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.Response{
			Success: false,
			Message: "something went wrong",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.Response{
		Success: true,
		Message: "patient registered successfully",
		Data:    patient,
	})
}

func (h *PatientHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{
			Success: false,
			Message: "invalid request body",
		})
	}

	patient, err := h.patientRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.Response{
				Success: false,
				Message: "patient doesn't exist",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.Response{
			Success: false,
			Message: "something went wrong",
		})
	}

	if !auth.CheckPassword(patient.Password, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(models.Response{
			Success: false,
			Message: "invalid email or password",
		})
	}

	token, err := auth.NewAccessToken(h.jwtSecret, patient.ID.String(), patient.Email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.Response{
			Success: false,
			Message: "failed to generate token",
		})
	}

	return c.JSON(models.Response{
		Success: true,
		Message: "login successful",
		Data:    models.LoginResponse{Token: token},
	})
}
