package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

func TestPaymentService_CreatePayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, instructor := f.seedUser(t, "ivy", models.RoleInstructor)
	buyer, buyerPrincipal := f.seedUser(t, "jon", models.RoleUser)
	_, stranger := f.seedUser(t, "kim", models.RoleUser)
	_, admin := f.seedUser(t, "root", models.RoleAdmin)

	course, err := f.courses.CreateCourse(ctx, instructor, &dto.CreateCourseRequest{Title: "Paid", Price: 49.99})
	require.NoError(t, err)

	t.Run("zero price uses the course price", func(t *testing.T) {
		resp, err := f.payments.CreatePayment(ctx, buyerPrincipal, &dto.CreatePaymentRequest{UserID: buyer.ID, CourseID: course.ID})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, 49.99, resp.Price)
	})

	t.Run("explicit price", func(t *testing.T) {
		resp, err := f.payments.CreatePayment(ctx, admin, &dto.CreatePaymentRequest{UserID: buyer.ID, CourseID: course.ID, Price: 10})
		require.NoError(t, err)
		assert.Equal(t, 10.0, resp.Price)
	})

	t.Run("paying for someone else is forbidden", func(t *testing.T) {
		_, err := f.payments.CreatePayment(ctx, stranger, &dto.CreatePaymentRequest{UserID: buyer.ID, CourseID: course.ID})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("missing course leaves no row", func(t *testing.T) {
		before := f.store.Counts()["payments"]
		_, err := f.payments.CreatePayment(ctx, buyerPrincipal, &dto.CreatePaymentRequest{UserID: buyer.ID, CourseID: 9999})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
		assert.Equal(t, "no course found!", err.Error())
		assert.Equal(t, before, f.store.Counts()["payments"])
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := f.payments.CreatePayment(ctx, admin, &dto.CreatePaymentRequest{UserID: 9999, CourseID: course.ID})
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		assert.Equal(t, "no user found!", err.Error())
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := f.payments.CreatePayment(ctx, buyerPrincipal, &dto.CreatePaymentRequest{UserID: buyer.ID, CourseID: course.ID, Price: -1})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestPaymentService_ReadAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, instructor := f.seedUser(t, "lou", models.RoleInstructor)
	buyer, buyerPrincipal := f.seedUser(t, "max", models.RoleUser)
	_, stranger := f.seedUser(t, "ned", models.RoleUser)
	_, admin := f.seedUser(t, "root", models.RoleAdmin)

	course, err := f.courses.CreateCourse(ctx, instructor, &dto.CreateCourseRequest{Title: "Paid", Price: 5})
	require.NoError(t, err)
	payment, err := f.payments.CreatePayment(ctx, buyerPrincipal, &dto.CreatePaymentRequest{UserID: buyer.ID, CourseID: course.ID})
	require.NoError(t, err)

	got, err := f.payments.GetPayment(ctx, buyerPrincipal, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.ID, got.ID)

	_, err = f.payments.GetPayment(ctx, stranger, payment.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = f.payments.ListPayments(ctx, buyerPrincipal)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	all, err := f.payments.ListPayments(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	assert.ErrorIs(t, f.payments.DeletePayment(ctx, buyerPrincipal, payment.ID), apperrors.ErrPermissionDenied)
	require.NoError(t, f.payments.DeletePayment(ctx, admin, payment.ID))
	assert.ErrorIs(t, f.payments.DeletePayment(ctx, admin, payment.ID), apperrors.ErrPaymentNotFound)

	_, err = f.payments.GetPayment(ctx, admin, payment.ID)
	assert.ErrorIs(t, err, apperrors.ErrPaymentNotFound)
}
