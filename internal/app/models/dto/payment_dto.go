package dto

import (
	"time"

	"github.com/yigit/coursehub/internal/app/models"
)

// CreatePaymentRequest records a purchase. A zero price means the course price.
type CreatePaymentRequest struct {
	UserID   int64   `json:"userId" binding:"required,min=1"`
	CourseID int64   `json:"courseId" binding:"required,min=1"`
	Price    float64 `json:"price" binding:"gte=0"`
}

// PaymentResponse represents a payment
type PaymentResponse struct {
	ID        string    `json:"id" example:"5d1f0a5e-7a4b-4c1e-9a77-2f1d6c9b8e10"`
	UserID    int64     `json:"userId" example:"3"`
	CourseID  int64     `json:"courseId" example:"7"`
	Price     float64   `json:"price" example:"49.99"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewPaymentResponse converts a payment
func NewPaymentResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		CourseID:  p.CourseID,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
	}
}
