package http

import "time"

type CustomerRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Preferences string `json:"preferences"`
}

type OrderRequest struct {
	CustomerID          string    `json:"customerId" binding:"required"`
	DeliveryDate        time.Time `json:"deliveryDate" binding:"required"`
	Products            string    `json:"products" binding:"required"`
	TotalValue          float64   `json:"totalValue" binding:"gte=0"`
	Status              string    `json:"status" binding:"required"`
	AdvanceAmount       float64   `json:"advanceAmount" binding:"gte=0"`
	SpecialInstructions string    `json:"specialInstructions"`
}
