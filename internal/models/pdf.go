package models

import (
	"time"

	"github.com/google/uuid"
)

type Pdf struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"doctorId"`
	Name      string    `gorm:"type:text" json:"name"`
	FilePath  string    `gorm:"type:varchar(200)" json:"filePath"`
	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"createdAt"`

	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"-"`
}

func (Pdf) TableName() string {
	return "pdfs"
}
