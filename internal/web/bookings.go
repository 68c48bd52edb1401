package web

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"

	"tourismBooking/internal/db"
	"tourismBooking/models"
	"tourismBooking/repository"
)

const (
	bookingsPage = "/bookings"
	paymentsPage = "/payments"
)

// packageNames returns the catalog menu. A failed refresh is logged and the
// last good menu served.
func (h *Handler) packageNames(c *gin.Context) []string {
	if h.catalog == nil {
		return []string{}
	}
	snap, err := h.catalog.Get(c.Request.Context())
	if err != nil {
		h.log.ErrorErr("package catalog refresh failed", err)
	}
	if snap.Names == nil {
		return []string{}
	}
	return snap.Names
}

func (h *Handler) Bookings(c *gin.Context) {
	bookings := []models.Booking{}
	next := int64(1)
	ok := h.load(c, "Error loading bookings: ", func(ctx context.Context, q *db.Conn) error {
		repo := repository.NewBookingRepository(q)
		var err error
		if bookings, err = repo.List(ctx); err != nil {
			return err
		}
		next, err = repo.NextID(ctx)
		return err
	})
	if ok {
		h.view.Render(c, "bookings", gin.H{
			"packages":        h.packageNames(c),
			"bookings":        bookings,
			"next_booking_id": next,
		})
	}
}

func (h *Handler) ViewBookings(c *gin.Context) {
	bookings := []models.Booking{}
	ok := h.load(c, "Error loading bookings: ", func(ctx context.Context, q *db.Conn) error {
		var err error
		bookings, err = repository.NewBookingRepository(q).List(ctx)
		return err
	})
	if ok {
		h.view.Render(c, "bookings", gin.H{"bookings": bookings, "packages": h.packageNames(c)})
	}
}

func bookingFromForm(f *form) models.Booking {
	return models.Booking{
		ID:          f.positiveInt("booking_id", "Booking ID"),
		CustomerID:  f.positiveInt("customer_id", "Customer ID"),
		PackageID:   f.positiveInt("package_id", "Package ID"),
		BookingDate: f.date("booking_date", "Booking Date"),
		Status:      f.required("status", "Status"),
	}
}

func (h *Handler) AddBooking(c *gin.Context) {
	f := newForm(c)
	b := bookingFromForm(f)
	if h.invalid(c, f, bookingsPage) {
		return
	}
	h.mutate(c, mutation{
		back:    bookingsPage,
		success: fmt.Sprintf("Booking %d added successfully!", b.ID),
		failure: "Database error (Check Customer ID and Package ID):\n",
		exec: func(ctx context.Context, tx *sql.Tx) (int64, error) {
			return 1, repository.NewBookingRepository(tx).Create(ctx, &b)
		},
	})
}

func (h *Handler) UpdateBooking(c *gin.Context) {
	f := newForm(c)
	b := bookingFromForm(f)
	if h.invalid(c, f, bookingsPage) {
		return
	}
	h.mutate(c, mutation{
		back:     bookingsPage,
		success:  fmt.Sprintf("Booking %d updated successfully!", b.ID),
		notFound: fmt.Sprintf("Booking ID %d not found.", b.ID),
		failure:  "Database error (Check Customer ID and Package ID):\n",
		exec: func(ctx context.Context, tx *sql.Tx) (int64, error) {
			return repository.NewBookingRepository(tx).Update(ctx, &b)
		},
	})
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	f := newForm(c)
	id := f.positiveInt("booking_id", "Booking ID")
	if h.invalid(c, f, bookingsPage) {
		return
	}
	h.mutate(c, mutation{
		back:     bookingsPage,
		success:  fmt.Sprintf("Booking %d deleted successfully!", id),
		notFound: fmt.Sprintf("Booking ID %d not found.", id),
		failure:  "Cannot delete booking. Delete dependent records first.\nError: ",
		exec: func(ctx context.Context, tx *sql.Tx) (int64, error) {
			return repository.NewBookingRepository(tx).Delete(ctx, id)
		},
	})
}

func (h *Handler) Payments(c *gin.Context) {
	payments := []models.Payment{}
	next := int64(1)
	ok := h.load(c, "Error loading payments: ", func(ctx context.Context, q *db.Conn) error {
		repo := repository.NewPaymentRepository(q)
		var err error
		if payments, err = repo.List(ctx); err != nil {
			return err
		}
		next, err = repo.NextID(ctx)
		return err
	})
	if ok {
		h.view.Render(c, "payments", gin.H{"payments": payments, "next_payment_id": next})
	}
}

func (h *Handler) ViewPayments(c *gin.Context) {
	payments := []models.Payment{}
	ok := h.load(c, "Error loading payments: ", func(ctx context.Context, q *db.Conn) error {
		var err error
		payments, err = repository.NewPaymentRepository(q).List(ctx)
		return err
	})
	if ok {
		h.view.Render(c, "payments", gin.H{"payments": payments})
	}
}

func paymentFromForm(f *form) models.Payment {
	return models.Payment{
		ID:          f.positiveInt("payment_id", "Payment ID"),
		BookingID:   f.positiveInt("booking_id", "Booking ID"),
		Amount:      f.nonNegative("amount", "Amount"),
		PaymentDate: f.date("payment_date", "Payment Date"),
		Method:      f.required("method", "Payment Method"),
	}
}

func (h *Handler) AddPayment(c *gin.Context) {
	f := newForm(c)
	p := paymentFromForm(f)
	if h.invalid(c, f, paymentsPage) {
		return
	}
	h.mutate(c, mutation{
		back:    paymentsPage,
		success: fmt.Sprintf("Payment %d added successfully! Amount: ₹%.2f", p.ID, p.Amount),
		failure: "Database error (Check Booking ID):\n",
		exec: func(ctx context.Context, tx *sql.Tx) (int64, error) {
			return 1, repository.NewPaymentRepository(tx).Create(ctx, &p)
		},
	})
}

func (h *Handler) UpdatePayment(c *gin.Context) {
	f := newForm(c)
	p := paymentFromForm(f)
	if h.invalid(c, f, paymentsPage) {
		return
	}
	h.mutate(c, mutation{
		back:     paymentsPage,
		success:  fmt.Sprintf("Payment %d updated successfully!", p.ID),
		notFound: fmt.Sprintf("Payment ID %d not found.", p.ID),
		failure:  "Database error: ",
		exec: func(ctx context.Context, tx *sql.Tx) (int64, error) {
			return repository.NewPaymentRepository(tx).Update(ctx, &p)
		},
	})
}

func (h *Handler) DeletePayment(c *gin.Context) {
	f := newForm(c)
	id := f.positiveInt("payment_id", "Payment ID")
	if h.invalid(c, f, paymentsPage) {
		return
	}
	h.mutate(c, mutation{
		back:     paymentsPage,
		success:  fmt.Sprintf("Payment %d deleted successfully!", id),
		notFound: fmt.Sprintf("Payment ID %d not found.", id),
		failure:  "Database error: ",
		exec: func(ctx context.Context, tx *sql.Tx) (int64, error) {
			return repository.NewPaymentRepository(tx).Delete(ctx, id)
		},
	})
}
