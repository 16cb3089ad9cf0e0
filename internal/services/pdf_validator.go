package services

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// PdfValidatorService parses a saved upload to make sure it really is a PDF.
// A renamed .txt or image fails here before any cloud storage write happens.
type PdfValidatorService interface {
	Validate(filePath string) (int, error)
}

type pdfValidatorService struct{}

func NewPdfValidatorService() PdfValidatorService {
	return &pdfValidatorService{}
}

// Validate opens the file with the PDF parser and returns its page count.
func (p *pdfValidatorService) Validate(filePath string) (int, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return 0, fmt.Errorf("file does not exist: %s", filePath)
	}

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	totalPage := r.NumPage()
	if totalPage < 1 {
		return 0, fmt.Errorf("no pages found in PDF")
	}

	return totalPage, nil
}
