package domain

type Customer struct {
	ID          string `json:"id" gorm:"primaryKey;size:36"`
	FullName    string `json:"fullName" gorm:"size:128;not null"`
	Phone       string `json:"phone" gorm:"size:32;not null"`
	Email       string `json:"email,omitempty" gorm:"size:128"`
	Address     string `json:"address" gorm:"size:255"`
	Preferences string `json:"preferences,omitempty" gorm:"type:text"`
	Audit
}
