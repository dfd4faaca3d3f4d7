package domain

import "time"

type OrderStatus string

const (
	StatusCOD          OrderStatus = "COD"
	StatusAdvanceTaken OrderStatus = "Advance Taken"
	StatusCompleted    OrderStatus = "Completed"
	StatusDelivered    OrderStatus = "Delivered"
)

// ValidStatus reports whether s is one of the four canonical order statuses.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusCOD, StatusAdvanceTaken, StatusCompleted, StatusDelivered:
		return true
	}
	return false
}

type Order struct {
	ID                  string      `json:"id" gorm:"primaryKey;size:36"`
	OrderCode           string      `json:"orderCode" gorm:"size:16;index"`
	CustomerID          string      `json:"customerId" gorm:"size:36;index"`
	OrderDate           time.Time   `json:"orderDate" gorm:"index"`
	DeliveryDate        time.Time   `json:"deliveryDate" gorm:"index"`
	Products            string      `json:"products" gorm:"type:text"`
	TotalValue          float64     `json:"totalValue" gorm:"not null"`
	Status              OrderStatus `json:"status" gorm:"type:enum('COD','Advance Taken','Completed','Delivered');default:'COD'"`
	AdvanceAmount       float64     `json:"advanceAmount,omitempty"`
	SpecialInstructions string      `json:"specialInstructions,omitempty" gorm:"type:text"`
	Audit
}

// Audit records who touched a record and when. CreatedBy/UpdatedBy hold the
// acting user's identifier, or "System" when no actor is known.
type Audit struct {
	CreatedAt time.Time `json:"createdAt,omitempty"`
	CreatedBy string    `json:"createdBy,omitempty" gorm:"size:128"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
	UpdatedBy string    `json:"updatedBy,omitempty" gorm:"size:128"`
}
