package repository

import (
	"context"

	"tourismBooking/models"
)

type TransportRepository struct {
	db DBTX
}

func NewTransportRepository(q DBTX) *TransportRepository {
	return &TransportRepository{db: q}
}

func (r *TransportRepository) List(ctx context.Context) ([]models.Transport, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT TransportID, COALESCE(TransportType, ''), COALESCE(DepartLocation, ''),
		COALESCE(ArrivalLocation, ''), DepartDateTime, ArrivalDateTime, TransportPrice
		FROM Transport ORDER BY TransportID`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Transport{}
	for rows.Next() {
		var t models.Transport
		if err := rows.Scan(&t.ID, &t.Type, &t.DepartLocation, &t.ArrivalLocation, &t.DepartAt, &t.ArriveAt, &t.Price); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TransportRepository) NextID(ctx context.Context) (int64, error) {
	return nextID(ctx, r.db, "Transport", "TransportID")
}

func (r *TransportRepository) Create(ctx context.Context, t *models.Transport) error {
	_, err := execAffected(ctx, r.db,
		`INSERT INTO Transport (TransportID, TransportType, DepartLocation, ArrivalLocation, DepartDateTime, ArrivalDateTime, TransportPrice)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.Type, t.DepartLocation, t.ArrivalLocation, t.DepartAt, t.ArriveAt, t.Price)
	return err
}

func (r *TransportRepository) Update(ctx context.Context, t *models.Transport) (int64, error) {
	return execAffected(ctx, r.db,
		`UPDATE Transport SET TransportType = $1, DepartLocation = $2, ArrivalLocation = $3, DepartDateTime = $4,
		ArrivalDateTime = $5, TransportPrice = $6 WHERE TransportID = $7`,
		t.Type, t.DepartLocation, t.ArrivalLocation, t.DepartAt, t.ArriveAt, t.Price, t.ID)
}

func (r *TransportRepository) Delete(ctx context.Context, id int64) (int64, error) {
	return execAffected(ctx, r.db, `DELETE FROM Transport WHERE TransportID = $1`, id)
}
