package models

// User is an API account. The password field holds a bcrypt hash.
type User struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(24)"`
	Username string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password string `gorm:"type:varchar(255)" validate:"required,min=6"`
}
