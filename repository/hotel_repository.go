package repository

import (
	"context"

	"tourismBooking/models"
)

type HotelRepository struct {
	db DBTX
}

func NewHotelRepository(q DBTX) *HotelRepository {
	return &HotelRepository{db: q}
}

func (r *HotelRepository) List(ctx context.Context) ([]models.Hotel, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT HotelID, COALESCE(HotelName, ''), COALESCE(Address, ''), Rating, HotelPrice
		FROM Hotel ORDER BY HotelID`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Hotel{}
	for rows.Next() {
		var h models.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Address, &h.Rating, &h.Price); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *HotelRepository) NextID(ctx context.Context) (int64, error) {
	return nextID(ctx, r.db, "Hotel", "HotelID")
}

func (r *HotelRepository) Create(ctx context.Context, h *models.Hotel) error {
	_, err := execAffected(ctx, r.db,
		`INSERT INTO Hotel (HotelID, HotelName, Address, Rating, HotelPrice) VALUES ($1, $2, $3, $4, $5)`,
		h.ID, h.Name, h.Address, h.Rating, h.Price)
	return err
}

func (r *HotelRepository) Update(ctx context.Context, h *models.Hotel) (int64, error) {
	return execAffected(ctx, r.db,
		`UPDATE Hotel SET HotelName = $1, Address = $2, Rating = $3, HotelPrice = $4 WHERE HotelID = $5`,
		h.Name, h.Address, h.Rating, h.Price, h.ID)
}

func (r *HotelRepository) Delete(ctx context.Context, id int64) (int64, error) {
	return execAffected(ctx, r.db, `DELETE FROM Hotel WHERE HotelID = $1`, id)
}
