package models

import "github.com/google/uuid"

type Doctor struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FirstName string    `gorm:"type:varchar(100)" json:"firstName"`
	LastName  string    `gorm:"type:varchar(100)" json:"lastName"`
	Email     string    `gorm:"type:varchar(100);uniqueIndex" json:"email"`
	Password  string    `gorm:"type:varchar(225)" json:"-"`
	Specialty string    `gorm:"type:varchar(100)" json:"specialty"`
}

func (Doctor) TableName() string {
	return "doctors"
}
