package models

import "github.com/google/uuid"

// DoctorPatient is the active care assignment between one doctor and one
// patient. The unique index on PatientID is what enforces the
// one-doctor-per-patient invariant: concurrent assigns of the same patient
// resolve at the database, not in application code.
type DoctorPatient struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"doctorId"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"patientId"`

	// Relations
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"-"`
	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
}

func (DoctorPatient) TableName() string {
	return "doctor_patients"
}
