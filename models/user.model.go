package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleVolunteer = "VOLUNTEER"
	RoleNGO       = "NGO"
)

type User struct {
	gorm.Model
	Name             string    `json:"name" gorm:"default:''"`
	Email            string    `json:"email" gorm:"unique;not null"`
	Mobile           string    `json:"mobile" gorm:"default:''"`
	Role             string    `json:"role" gorm:"default:'VOLUNTEER'"` // VOLUNTEER, NGO
	OrganizationName string    `json:"organization_name" gorm:"default:''"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	LastLogin        time.Time `json:"last_login" gorm:"default:NULL"`
	IsDeleted        bool      `gorm:"default:false"`
}
