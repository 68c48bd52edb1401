package repository

import (
	"context"

	"tourismBooking/models"
)

type BookingRepository struct {
	db DBTX
}

func NewBookingRepository(q DBTX) *BookingRepository {
	return &BookingRepository{db: q}
}

func (r *BookingRepository) List(ctx context.Context) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT BookingID, BookingDate, Status, CustomerID, PackageID
		FROM Booking ORDER BY BookingID`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.BookingDate, &b.Status, &b.CustomerID, &b.PackageID); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BookingRepository) NextID(ctx context.Context) (int64, error) {
	return nextID(ctx, r.db, "Booking", "BookingID")
}

func (r *BookingRepository) Create(ctx context.Context, b *models.Booking) error {
	_, err := execAffected(ctx, r.db,
		`INSERT INTO Booking (BookingID, BookingDate, Status, CustomerID, PackageID) VALUES ($1, $2, $3, $4, $5)`,
		b.ID, b.BookingDate, b.Status, b.CustomerID, b.PackageID)
	return err
}

func (r *BookingRepository) Update(ctx context.Context, b *models.Booking) (int64, error) {
	return execAffected(ctx, r.db,
		`UPDATE Booking SET BookingDate = $1, Status = $2, CustomerID = $3, PackageID = $4 WHERE BookingID = $5`,
		b.BookingDate, b.Status, b.CustomerID, b.PackageID, b.ID)
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) (int64, error) {
	return execAffected(ctx, r.db, `DELETE FROM Booking WHERE BookingID = $1`, id)
}
