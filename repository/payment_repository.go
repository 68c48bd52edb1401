package repository

import (
	"context"

	"tourismBooking/models"
)

type PaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(q DBTX) *PaymentRepository {
	return &PaymentRepository{db: q}
}

func (r *PaymentRepository) List(ctx context.Context) ([]models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT PaymentID, Amount, PaymentDate, PaymentMethod, BookingID
		FROM Payment ORDER BY PaymentID`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.Amount, &p.PaymentDate, &p.Method, &p.BookingID); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PaymentRepository) NextID(ctx context.Context) (int64, error) {
	return nextID(ctx, r.db, "Payment", "PaymentID")
}

func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	_, err := execAffected(ctx, r.db,
		`INSERT INTO Payment (PaymentID, Amount, PaymentDate, PaymentMethod, BookingID) VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.Amount, p.PaymentDate, p.Method, p.BookingID)
	return err
}

func (r *PaymentRepository) Update(ctx context.Context, p *models.Payment) (int64, error) {
	return execAffected(ctx, r.db,
		`UPDATE Payment SET Amount = $1, PaymentDate = $2, PaymentMethod = $3, BookingID = $4 WHERE PaymentID = $5`,
		p.Amount, p.PaymentDate, p.Method, p.BookingID, p.ID)
}

func (r *PaymentRepository) Delete(ctx context.Context, id int64) (int64, error) {
	return execAffected(ctx, r.db, `DELETE FROM Payment WHERE PaymentID = $1`, id)
}
