package models

import "gorm.io/gorm"

// Operator is a staff account allowed to mutate room status (maintenance
// windows) and drive reservation transitions. Authentication itself is
// handled by the surrounding platform.
type Operator struct {
	gorm.Model
	FullName string `json:"fullName"`
	Username string `json:"username" gorm:"uniqueIndex;type:varchar(255)"`
	Password string `json:"-"`
}
