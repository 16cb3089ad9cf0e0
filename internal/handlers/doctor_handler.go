package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"caresync/hospital-api/internal/auth"
	"caresync/hospital-api/internal/models"
	"caresync/hospital-api/internal/repositories"
)

type DoctorHandler struct {
	doctorRepo repositories.DoctorRepository
	jwtSecret  string
}

func NewDoctorHandler(doctorRepo repositories.DoctorRepository, jwtSecret string) *DoctorHandler {
	return &DoctorHandler{
		doctorRepo: doctorRepo,
		jwtSecret:  jwtSecret,
	}
}

func (h *DoctorHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterDoctorRequest
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

	doctor := models.Doctor{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hash,
		Specialty: req.Specialty,
	}

	if err := h.doctorRepo.Create(&doctor); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(models.Response{
				Success: false,
				Message: "doctor already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.Response{
			Success: false,
			Message: "something went wrong",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.Response{
		Success: true,
		Message: "doctor registered successfully",
		Data:    doctor,
	})
}

func (h *DoctorHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{
			Success: false,
			Message: "invalid request body",
		})
	}

	doctor, err := h.doctorRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.Response{
				Success: false,
				Message: "doctor doesn't exist",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.Response{
			Success: false,
			Message: "something went wrong",
		})
	}

	if !auth.CheckPassword(doctor.Password, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(models.Response{
			Success: false,
			Message: "invalid email or password",
		})
	}

	token, err := auth.NewAccessToken(h.jwtSecret, doctor.ID.String(), doctor.Email)
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
