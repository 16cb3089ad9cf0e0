package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"caresync/hospital-api/internal/auth"
	"caresync/hospital-api/internal/middleware"
	"caresync/hospital-api/internal/models"
	"caresync/hospital-api/internal/repositories"
	"caresync/hospital-api/internal/services"
)

const testSecret = "test-secret"

// fakeDB backs in-memory repository fakes with the same error semantics the
// gorm repositories have: gorm.ErrRecordNotFound on misses, and
// gorm.ErrDuplicatedKey where a unique index would fire.
type fakeDB struct {
	doctors     []models.Doctor
	patients    []models.Patient
	assignments []models.DoctorPatient
	pdfs        []models.Pdf
}

type fakeDoctorRepo struct{ db *fakeDB }

func (r *fakeDoctorRepo) Create(doctor *models.Doctor) error {
	for _, d := range r.db.doctors {
		if d.Email == doctor.Email {
			return fmt.Errorf("failed to create doctor: %w", gorm.ErrDuplicatedKey)
		}
	}
	if doctor.ID == uuid.Nil {
		doctor.ID = uuid.New()
	}
	r.db.doctors = append(r.db.doctors, *doctor)
	return nil
}

func (r *fakeDoctorRepo) FindByEmail(email string) (*models.Doctor, error) {
	for _, d := range r.db.doctors {
		if d.Email == email {
			doctor := d
			return &doctor, nil
		}
	}
	return nil, fmt.Errorf("failed to find doctor by email: %w", gorm.ErrRecordNotFound)
}

func (r *fakeDoctorRepo) FindByID(id uuid.UUID) (*models.Doctor, error) {
	for _, d := range r.db.doctors {
		if d.ID == id {
			doctor := d
			return &doctor, nil
		}
	}
	return nil, fmt.Errorf("failed to find doctor: %w", gorm.ErrRecordNotFound)
}

type fakePatientRepo struct{ db *fakeDB }

func (r *fakePatientRepo) Create(patient *models.Patient) error {
	for _, p := range r.db.patients {
		if p.Email == patient.Email {
			return fmt.Errorf("failed to create patient: %w", gorm.ErrDuplicatedKey)
		}
	}
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	r.db.patients = append(r.db.patients, *patient)
	return nil
}

func (r *fakePatientRepo) FindByEmail(email string) (*models.Patient, error) {
	for _, p := range r.db.patients {
		if p.Email == email {
			patient := p
			return &patient, nil
		}
	}
	return nil, fmt.Errorf("failed to find patient by email: %w", gorm.ErrRecordNotFound)
}

func (r *fakePatientRepo) FindByID(id uuid.UUID) (*models.Patient, error) {
	for _, p := range r.db.patients {
		if p.ID == id {
			patient := p
			return &patient, nil
		}
	}
	return nil, fmt.Errorf("failed to find patient: %w", gorm.ErrRecordNotFound)
}

func (r *fakePatientRepo) unassigned() []models.Patient {
	var out []models.Patient
	for _, p := range r.db.patients {
		assigned := false
		for _, a := range r.db.assignments {
			if a.PatientID == p.ID {
				assigned = true
				break
			}
		}
		if !assigned {
			out = append(out, p)
		}
	}
	return out
}

func (r *fakePatientRepo) FindUnassigned(page int) ([]models.Patient, int64, error) {
	all := r.unassigned()
	count := int64(len(all))
	start := (page - 1) * repositories.PageSize
	if start >= len(all) {
		return nil, count, nil
	}
	end := start + repositories.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], count, nil
}

func (r *fakePatientRepo) SearchUnassignedByEmail(email string) ([]models.Patient, error) {
	var out []models.Patient
	for _, p := range r.unassigned() {
		if p.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeAssignmentRepo struct{ db *fakeDB }

func (r *fakeAssignmentRepo) Create(assignment *models.DoctorPatient) error {
	patientExists := false
	for _, p := range r.db.patients {
		if p.ID == assignment.PatientID {
			patientExists = true
			break
		}
	}
	if !patientExists {
		return fmt.Errorf("failed to create assignment: %w", gorm.ErrForeignKeyViolated)
	}
	for _, a := range r.db.assignments {
		if a.PatientID == assignment.PatientID {
			return fmt.Errorf("failed to create assignment: %w", gorm.ErrDuplicatedKey)
		}
	}
	if assignment.ID == uuid.Nil {
		assignment.ID = uuid.New()
	}
	r.db.assignments = append(r.db.assignments, *assignment)
	return nil
}

func (r *fakeAssignmentRepo) DeleteByDoctorAndPatient(doctorID, patientID uuid.UUID) (int64, error) {
	var kept []models.DoctorPatient
	var deleted int64
	for _, a := range r.db.assignments {
		if a.DoctorID == doctorID && a.PatientID == patientID {
			deleted++
			continue
		}
		kept = append(kept, a)
	}
	r.db.assignments = kept
	return deleted, nil
}

func (r *fakeAssignmentRepo) FindByPatient(patientID uuid.UUID) (*models.DoctorPatient, error) {
	for _, a := range r.db.assignments {
		if a.PatientID == patientID {
			assignment := a
			for _, d := range r.db.doctors {
				if d.ID == a.DoctorID {
					assignment.Doctor = d
				}
			}
			return &assignment, nil
		}
	}
	return nil, fmt.Errorf("failed to find assignment: %w", gorm.ErrRecordNotFound)
}

func (r *fakeAssignmentRepo) forDoctor(doctorID uuid.UUID) []models.DoctorPatient {
	var out []models.DoctorPatient
	for _, a := range r.db.assignments {
		if a.DoctorID != doctorID {
			continue
		}
		for _, p := range r.db.patients {
			if p.ID == a.PatientID {
				a.Patient = p
			}
		}
		out = append(out, a)
	}
	return out
}

func (r *fakeAssignmentRepo) ListByDoctor(doctorID uuid.UUID, page int) ([]models.DoctorPatient, int64, error) {
	all := r.forDoctor(doctorID)
	count := int64(len(all))
	start := (page - 1) * repositories.PageSize
	if start >= len(all) {
		return nil, count, nil
	}
	end := start + repositories.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], count, nil
}

func (r *fakeAssignmentRepo) SearchByDoctorAndEmail(doctorID uuid.UUID, email string) ([]models.DoctorPatient, error) {
	var out []models.DoctorPatient
	for _, a := range r.forDoctor(doctorID) {
		if a.Patient.Email == email {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakePdfRepo struct{ db *fakeDB }

func (r *fakePdfRepo) Create(pdf *models.Pdf) error {
	if pdf.ID == uuid.Nil {
		pdf.ID = uuid.New()
	}
	r.db.pdfs = append(r.db.pdfs, *pdf)
	return nil
}

func (r *fakePdfRepo) ListByDoctor(doctorID uuid.UUID, page int) ([]models.Pdf, error) {
	var all []models.Pdf
	for _, p := range r.db.pdfs {
		if p.DoctorID == doctorID {
			all = append(all, p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	start := (page - 1) * repositories.PageSize
	if start >= len(all) {
		return nil, nil
	}
	end := start + repositories.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (r *fakePdfRepo) SearchByName(doctorID uuid.UUID, name string) ([]models.Pdf, error) {
	var out []models.Pdf
	for _, p := range r.db.pdfs {
		if p.DoctorID == doctorID && p.Name == name {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePdfRepo) CountByDoctor(doctorID uuid.UUID) (int64, error) {
	var count int64
	for _, p := range r.db.pdfs {
		if p.DoctorID == doctorID {
			count++
		}
	}
	return count, nil
}

type fakeCloud struct {
	calls int
	fail  bool
}

func (c *fakeCloud) UploadPdf(localPath, objectName string) (string, error) {
	c.calls++
	if c.fail {
		return "", fmt.Errorf("failed to upload file to storage: bucket unavailable")
	}
	return "https://cdn.example.com/doctorPdf/" + objectName, nil
}

type fakeValidator struct{ err error }

func (v *fakeValidator) Validate(filePath string) (int, error) {
	if v.err != nil {
		return 0, v.err
	}
	return 1, nil
}

type testServer struct {
	app   *fiber.App
	db    *fakeDB
	cloud *fakeCloud
}

// newTestServer wires the handlers over the fakes with the same routes the
// real server registers.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := &fakeDB{}
	doctorRepo := &fakeDoctorRepo{db: db}
	patientRepo := &fakePatientRepo{db: db}
	assignmentRepo := &fakeAssignmentRepo{db: db}
	pdfRepo := &fakePdfRepo{db: db}

	storage := services.NewStorageService(t.TempDir())
	if err := storage.EnsureUploadDir(); err != nil {
		t.Fatalf("ensure upload dir: %v", err)
	}
	cloud := &fakeCloud{}

	doctorHandler := NewDoctorHandler(doctorRepo, testSecret)
	patientHandler := NewPatientHandler(patientRepo, testSecret)
	userHandler := NewUserHandler(doctorRepo, patientRepo)
	assignmentHandler := NewAssignmentHandler(assignmentRepo, patientRepo)
	pdfHandler := NewPdfHandler(pdfRepo, storage, &fakeValidator{}, cloud)

	app := fiber.New()
	protected := middleware.Protected(testSecret)

	doctor := app.Group("/doctor")
	doctor.Post("/register", doctorHandler.HandleRegister)
	doctor.Post("/login", doctorHandler.HandleLogin)

	patient := app.Group("/patient")
	patient.Post("/register", patientHandler.HandleRegister)
	patient.Post("/login", patientHandler.HandleLogin)

	user := app.Group("/user", protected)
	user.Get("/details", userHandler.HandleDetails)

	assignment := app.Group("/doctoPatient", protected)
	assignment.Post("/assignPatient", assignmentHandler.HandleAssign)
	assignment.Delete("/removePatient", assignmentHandler.HandleUnassign)
	assignment.Get("/unassignedPatients/:page", assignmentHandler.HandleUnassignedPatients)
	assignment.Get("/searchUnassignedPatients", assignmentHandler.HandleSearchUnassigned)
	assignment.Get("/assignedPatients/:page", assignmentHandler.HandleAssignedPatients)
	assignment.Get("/searchassignedPatients", assignmentHandler.HandleSearchAssigned)
	assignment.Get("/assignedDoctor", assignmentHandler.HandleAssignedDoctor)

	pdf := app.Group("/pdf", protected)
	pdf.Post("/upload", pdfHandler.HandleUpload)
	pdf.Get("/upload/:page", pdfHandler.HandleList)
	pdf.Get("/search", pdfHandler.HandleSearch)
	pdf.Get("/page", pdfHandler.HandleTotalPages)

	return &testServer{app: app, db: db, cloud: cloud}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, path, err)
	}

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("decode response %s: %v", raw, err)
		}
	}
	return resp, env
}

func (s *testServer) uploadPdf(t *testing.T, token, filename string, content []byte) (*http.Response, envelope) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("pdf", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/pdf/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("upload request: %v", err)
	}

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("decode response %s: %v", raw, err)
		}
	}
	return resp, env
}

// seedDoctor registers a doctor directly in the fake store and returns its id
// and a valid token.
func (s *testServer) seedDoctor(t *testing.T, email string) (uuid.UUID, string) {
	t.Helper()

	hash, err := auth.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	doctor := models.Doctor{
		ID:        uuid.New(),
		FirstName: "Gregory",
		LastName:  "House",
		Email:     email,
		Password:  hash,
		Specialty: "diagnostics",
	}
	s.db.doctors = append(s.db.doctors, doctor)

	token, err := auth.NewAccessToken(testSecret, doctor.ID.String(), doctor.Email)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return doctor.ID, token
}

func (s *testServer) seedPatient(t *testing.T, email string) (uuid.UUID, string) {
	t.Helper()

	hash, err := auth.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	patient := models.Patient{
		ID:        uuid.New(),
		FirstName: "John",
		LastName:  "Doe",
		Email:     email,
		Password:  hash,
	}
	s.db.patients = append(s.db.patients, patient)

	token, err := auth.NewAccessToken(testSecret, patient.ID.String(), patient.Email)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return patient.ID, token
}
