package repository

import (
	"context"

	"tourismBooking/models"
)

type DestinationRepository struct {
	db DBTX
}

func NewDestinationRepository(q DBTX) *DestinationRepository {
	return &DestinationRepository{db: q}
}

func (r *DestinationRepository) List(ctx context.Context) ([]models.Destination, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT DestinationID, COALESCE(DestinationName, ''), COALESCE(Dlocation, '')
		FROM Destination ORDER BY DestinationID`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Destination{}
	for rows.Next() {
		var d models.Destination
		if err := rows.Scan(&d.ID, &d.Name, &d.Location); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DestinationRepository) NextID(ctx context.Context) (int64, error) {
	return nextID(ctx, r.db, "Destination", "DestinationID")
}

func (r *DestinationRepository) Create(ctx context.Context, d *models.Destination) error {
	_, err := execAffected(ctx, r.db,
		`INSERT INTO Destination (DestinationID, DestinationName, Dlocation) VALUES ($1, $2, $3)`,
		d.ID, d.Name, d.Location)
	return err
}

func (r *DestinationRepository) Update(ctx context.Context, d *models.Destination) (int64, error) {
	return execAffected(ctx, r.db,
		`UPDATE Destination SET DestinationName = $1, Dlocation = $2 WHERE DestinationID = $3`,
		d.Name, d.Location, d.ID)
}

func (r *DestinationRepository) Delete(ctx context.Context, id int64) (int64, error) {
	return execAffected(ctx, r.db, `DELETE FROM Destination WHERE DestinationID = $1`, id)
}
