package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"caresync/hospital-api/internal/middleware"
	"caresync/hospital-api/internal/models"
	"caresync/hospital-api/internal/repositories"
	"caresync/hospital-api/internal/services"
)

type PdfHandler struct {
	pdfRepo   repositories.PdfRepository
	storage   services.StorageService
	validator services.PdfValidatorService
	cloud     services.CloudStorage
}

func NewPdfHandler(
	pdfRepo repositories.PdfRepository,
	storage services.StorageService,
	validator services.PdfValidatorService,
	cloud services.CloudStorage,
) *PdfHandler {
	return &PdfHandler{
		pdfRepo:   pdfRepo,
		storage:   storage,
		validator: validator,
		cloud:     cloud,
	}
}

// HandleUpload takes a single multipart file field "pdf", holds it in the
// temp dir, verifies it parses as a PDF, pushes it to object storage, drops
// the temp copy, then records the metadata row. A failed cloud write leaves
// no database row; a failed database write can leave an orphaned stored
// object, which is not reconciled.
func (h *PdfHandler) HandleUpload(c *fiber.Ctx) error {
	doctorID, ok := middleware.UserID(c)
	if !ok {
		return unauthorizedResponse(c)
	}

	file, err := c.FormFile("pdf")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{
			Success: false,
			Message: "no file selected",
		})
	}

	filename, filePath, err := h.storage.SaveFile(file)
	if err != nil {
		if errors.Is(err, services.ErrNotPdf) {
			return c.Status(fiber.StatusBadRequest).JSON(models.Response{
				Success: false,
				Message: "PDFs only",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.Response{
			Success: false,
			Message: "failed to save uploaded file",
		})
	}

	if _, err := h.validator.Validate(filePath); err != nil {
		h.storage.DeleteFile(filename)
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{
			Success: false,
			Message: "PDFs only",
		})
	}

	url, err := h.cloud.UploadPdf(filePath, filename)
	if err != nil {
		h.storage.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(models.Response{
			Success: false,
			Message: "failed to upload file",
		})
	}

	h.storage.DeleteFile(filename)

	pdf := models.Pdf{
		DoctorID: doctorID,
		Name:     file.Filename,
		FilePath: url,
	}
	if err := h.pdfRepo.Create(&pdf); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.Response{
			Success: false,
			Message: "something went wrong",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.Response{
		Success: true,
		Message: "pdf uploaded successfully",
		Data:    pdf,
	})
}

func (h *PdfHandler) HandleList(c *fiber.Ctx) error {
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

	pdfs, err := h.pdfRepo.ListByDoctor(doctorID, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.Response{
			Success: false,
			Message: "something went wrong",
		})
	}

	count, err := h.pdfRepo.CountByDoctor(doctorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.Response{
			Success: false,
			Message: "something went wrong",
		})
	}

	if pdfs == nil {
		pdfs = []models.Pdf{}
	}

	return c.JSON(models.Response{
		Success: true,
		Data: models.PdfPage{
			Pdfs:       pdfs,
			TotalPages: repositories.TotalPages(count),
		},
	})
}

func (h *PdfHandler) HandleSearch(c *fiber.Ctx) error {
	doctorID, ok := middleware.UserID(c)
	if !ok {
		return unauthorizedResponse(c)
	}

	name := c.Query("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{
			Success: false,
			Message: "name is required",
		})
	}

	pdfs, err := h.pdfRepo.SearchByName(doctorID, name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.Response{
			Success: false,
			Message: "something went wrong",
		})
	}

	if pdfs == nil {
		pdfs = []models.Pdf{}
	}

	return c.JSON(models.Response{
		Success: true,
		Data:    pdfs,
	})
}

func (h *PdfHandler) HandleTotalPages(c *fiber.Ctx) error {
	doctorID, ok := middleware.UserID(c)
	if !ok {
		return unauthorizedResponse(c)
	}

	count, err := h.pdfRepo.CountByDoctor(doctorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.Response{
			Success: false,
			Message: "something went wrong",
		})
	}

	return c.JSON(models.Response{
		Success: true,
		Data:    repositories.TotalPages(count),
	})
}
