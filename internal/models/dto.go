package models

// Response is the JSON envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type RegisterDoctorRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Specialty string `json:"specialty"`
}

type RegisterPatientRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type AssignPatientRequest struct {
	PatientID string `json:"patientId"`
}

// Role values for UserDetails.
const (
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// UserDetails tags the current-user lookup with the table the id matched.
type UserDetails struct {
	Role string      `json:"role"`
	User interface{} `json:"user"`
}

type PatientPage struct {
	Patients   []Patient `json:"patients"`
	TotalPages int       `json:"totalPages"`
}

// AssignedPatient is a DoctorPatient row with the patient detail joined.
type AssignedPatient struct {
	AssignmentID string  `json:"assignmentId"`
	Patient      Patient `json:"patient"`
}

type AssignedPatientPage struct {
	Patients   []AssignedPatient `json:"patients"`
	TotalPages int               `json:"totalPages"`
}

type PdfPage struct {
	Pdfs       []Pdf `json:"pdfs"`
	TotalPages int   `json:"totalPages"`
}
