package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"caresync/hospital-api/internal/middleware"
	"caresync/hospital-api/internal/models"
	"caresync/hospital-api/internal/repositories"
)

type AssignmentHandler struct {
	assignmentRepo repositories.AssignmentRepository
	patientRepo    repositories.PatientRepository
}

func NewAssignmentHandler(
	assignmentRepo repositories.AssignmentRepository,
	patientRepo repositories.PatientRepository,
) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentRepo: assignmentRepo,
		patientRepo:    patientRepo,
	}
}

// HandleAssign places the patient under the caller's care. The unique index
// on the join table is the conflict check, so two concurrent assigns of one
// patient cannot both succeed.
func (h *AssignmentHandler) HandleAssign(c *fiber.Ctx) error {
	doctorID, ok := middleware.UserID(c)
	if !ok {
		return unauthorizedResponse(c)
	}

	patientID, errMsg := parsePatientID(c)
	if errMsg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{
			Success: false,
			Message: errMsg,
		})
	}

	assignment := models.DoctorPatient{
		DoctorID:  doctorID,
		PatientID: patientID,
	}

	if err := h.assignmentRepo.Create(&assignment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(models.Response{
				Success: false,
				Message: "patient already assigned",
			})
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
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

	return c.Status(fiber.StatusCreated).JSON(models.Response{
		Success: true,
		Message: "patient assigned successfully",
	})
}

// HandleUnassign removes the caller's assignment of the patient. The delete
// is filtered by both ids, so a patient assigned to a different doctor yields
// not-found instead of touching that doctor's row.
func (h *AssignmentHandler) HandleUnassign(c *fiber.Ctx) error {
	doctorID, ok := middleware.UserID(c)
	if !ok {
		return unauthorizedResponse(c)
	}

	patientID, errMsg := parsePatientID(c)
	if errMsg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{
			Success: false,
			Message: errMsg,
		})
	}

	deleted, err := h.assignmentRepo.DeleteByDoctorAndPatient(doctorID, patientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.Response{
			Success: false,
			Message: "something went wrong",
		})
	}
	if deleted == 0 {
		return c.Status(fiber.StatusNotFound).JSON(models.Response{
			Success: false,
			Message: "patient is not assigned to this doctor",
		})
	}

	return c.JSON(models.Response{
		Success: true,
		Message: "patient unassigned successfully",
	})
}

func (h *AssignmentHandler) HandleUnassignedPatients(c *fiber.Ctx) error {
	page, errMsg := parsePage(c)
	if errMsg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{
			Success: false,
			Message: errMsg,
		})
	}

	patients, count, err := h.patientRepo.FindUnassigned(page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.Response{
			Success: false,
			Message: "something went wrong",
		})
	}

	if patients == nil {
		patients = []models.Patient{}
	}

	return c.JSON(models.Response{
		Success: true,
		Data: models.PatientPage{
			Patients:   patients,
			TotalPages: repositories.TotalPages(count),
		},
	})
}

func (h *AssignmentHandler) HandleSearchUnassigned(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{
			Success: false,
			Message: "email is required",
		})
	}

	patients, err := h.patientRepo.SearchUnassignedByEmail(email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.Response{
			Success: false,
			Message: "something went wrong",
		})
	}

	if patients == nil {
		patients = []models.Patient{}
	}

	// A miss is an empty result, not an error.
	return c.JSON(models.Response{
		Success: true,
		Data:    patients,
	})
}

func (h *AssignmentHandler) HandleAssignedPatients(c *fiber.Ctx) error {
	doctorID, ok := middleware.UserID(c)
	if !ok {
		return unauthorizedResponse(c)
	}

	page, errMsg := parsePage(c)
	if errMsg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{
			Success: false,
			Message: errMsg,
		})
	}

	assignments, count, err := h.assignmentRepo.ListByDoctor(doctorID, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.Response{
			Success: false,
			Message: "something went wrong",
		})
	}

	return c.JSON(models.Response{
		Success: true,
		Data: models.AssignedPatientPage{
			Patients:   toAssignedPatients(assignments),
			TotalPages: repositories.TotalPages(count),
		},
	})
}

func (h *AssignmentHandler) HandleSearchAssigned(c *fiber.Ctx) error {
	doctorID, ok := middleware.UserID(c)
	if !ok {
		return unauthorizedResponse(c)
	}

	email := c.Query("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{
			Success: false,
			Message: "email is required",
		})
	}

	assignments, err := h.assignmentRepo.SearchByDoctorAndEmail(doctorID, email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.Response{
			Success: false,
			Message: "something went wrong",
		})
	}

	return c.JSON(models.Response{
		Success: true,
		Data:    toAssignedPatients(assignments),
	})
}

// HandleAssignedDoctor is the patient-side inverse lookup.
func (h *AssignmentHandler) HandleAssignedDoctor(c *fiber.Ctx) error {
	patientID, ok := middleware.UserID(c)
	if !ok {
		return unauthorizedResponse(c)
	}

	assignment, err := h.assignmentRepo.FindByPatient(patientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.Response{
				Success: false,
				Message: "no doctor assigned",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.Response{
			Success: false,
			Message: "something went wrong",
		})
	}

	return c.JSON(models.Response{
		Success: true,
		Data:    assignment.Doctor,
	})
}

func toAssignedPatients(assignments []models.DoctorPatient) []models.AssignedPatient {
	patients := make([]models.AssignedPatient, 0, len(assignments))
	for _, a := range assignments {
		patients = append(patients, models.AssignedPatient{
			AssignmentID: a.ID.String(),
			Patient:      a.Patient,
		})
	}
	return patients
}

func parsePatientID(c *fiber.Ctx) (uuid.UUID, string) {
	var req models.AssignPatientRequest
	if err := c.BodyParser(&req); err != nil {
		return uuid.Nil, "invalid request body"
	}
	if req.PatientID == "" {
		return uuid.Nil, "patientId is required"
	}
	id, err := uuid.Parse(req.PatientID)
	if err != nil {
		return uuid.Nil, "invalid patientId"
	}
	return id, ""
}

func parsePage(c *fiber.Ctx) (int, string) {
	page, err := strconv.Atoi(c.Params("page"))
	if err != nil || page < 1 {
		return 0, "invalid page number"
	}
	return page, ""
}

func unauthorizedResponse(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(models.Response{
		Success: false,
		Message: "authorization required",
	})
}
