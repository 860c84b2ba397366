package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/auth"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/metrics"
)

// PaymentService defines the operations on payment records
type PaymentService interface {
	CreatePayment(ctx context.Context, actor *auth.Principal, req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error)
	GetPayment(ctx context.Context, actor *auth.Principal, paymentID string) (*dto.PaymentResponse, error)
	ListPayments(ctx context.Context, actor *auth.Principal) ([]dto.PaymentResponse, error)
	DeletePayment(ctx context.Context, actor *auth.Principal, paymentID string) error
}

// paymentServiceImpl implements PaymentService
type paymentServiceImpl struct {
	store  repositories.Store
	logger zerolog.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(store repositories.Store, logger zerolog.Logger) PaymentService {
	return &paymentServiceImpl{
		store:  store,
		logger: logger,
	}
}

// CreatePayment records a purchase for a user. The user and course are looked up in the
// same transaction as the insert, so a missing reference leaves no row behind.
func (s *paymentServiceImpl) CreatePayment(ctx context.Context, actor *auth.Principal, req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if req.UserID <= 0 || req.CourseID <= 0 {
		return nil, apperrors.NewValidationError(msgMissingFields)
	}
	if req.Price < 0 {
		return nil, apperrors.NewValidationError("price must not be negative")
	}
	if err := auth.AuthorizeSelfOr(actor, req.UserID, auth.AdminOnly); err != nil {
		return nil, err
	}

	payment := &models.Payment{
		UserID:   req.UserID,
		CourseID: req.CourseID,
		Price:    req.Price,
	}

	err := s.store.WithTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		if _, err := tx.Users().GetByID(ctx, req.UserID); err != nil {
			return err
		}
		course, err := tx.Courses().GetByID(ctx, req.CourseID)
		if err != nil {
			return err
		}
		if payment.Price == 0 {
			payment.Price = course.Price
		}
		return tx.Payments().Create(ctx, payment)
	})
	if err != nil {
		if !apperrors.NotFound(err) {
			s.logger.Error().Err(err).Int64("userID", req.UserID).Int64("courseID", req.CourseID).Msg("Failed to create payment")
		}
		return nil, err
	}

	metrics.RecordPayment()
	s.logger.Info().Str("paymentID", payment.ID).Int64("userID", payment.UserID).Int64("courseID", payment.CourseID).Msg("Payment recorded")
	resp := dto.NewPaymentResponse(payment)
	return &resp, nil
}

// GetPayment returns a payment to its payer or to an admin
func (s *paymentServiceImpl) GetPayment(ctx context.Context, actor *auth.Principal, paymentID string) (*dto.PaymentResponse, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	payment, err := s.store.Payments().GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if err := auth.AuthorizeSelfOr(actor, payment.UserID, auth.AdminOnly); err != nil {
		return nil, err
	}
	resp := dto.NewPaymentResponse(payment)
	return &resp, nil
}

// ListPayments returns every payment. Admin only.
func (s *paymentServiceImpl) ListPayments(ctx context.Context, actor *auth.Principal) ([]dto.PaymentResponse, error) {
	if err := auth.Authorize(actor, auth.AdminOnly); err != nil {
		return nil, err
	}
	payments, err := s.store.Payments().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing payments: %w", err)
	}
	out := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, dto.NewPaymentResponse(&payments[i]))
	}
	return out, nil
}

// DeletePayment removes a payment. Admin only.
func (s *paymentServiceImpl) DeletePayment(ctx context.Context, actor *auth.Principal, paymentID string) error {
	if err := auth.Authorize(actor, auth.AdminOnly); err != nil {
		return err
	}
	if err := s.store.Payments().Delete(ctx, paymentID); err != nil {
		return err
	}
	s.logger.Info().Str("paymentID", paymentID).Int64("actorID", actor.UserID).Msg("Payment deleted")
	return nil
}
