package repository

import (
	"context"

	"tourismBooking/models"
)

type DependentRepository struct {
	db DBTX
}

func NewDependentRepository(q DBTX) *DependentRepository {
	return &DependentRepository{db: q}
}

func (r *DependentRepository) List(ctx context.Context) ([]models.Dependent, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT DependentID, DependentName, Age, Relation, CustomerID
		FROM TravelDependent ORDER BY DependentID`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Dependent{}
	for rows.Next() {
		var d models.Dependent
		if err := rows.Scan(&d.ID, &d.Name, &d.Age, &d.Relation, &d.CustomerID); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Create inserts d and returns it with the generated DependentID.
func (r *DependentRepository) Create(ctx context.Context, d *models.Dependent) (*models.Dependent, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	out := *d
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO TravelDependent (DependentName, Age, Relation, CustomerID) VALUES ($1, $2, $3, $4) RETURNING DependentID`,
		d.Name, d.Age, d.Relation, d.CustomerID).Scan(&out.ID)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *DependentRepository) Update(ctx context.Context, d *models.Dependent) (int64, error) {
	return execAffected(ctx, r.db,
		`UPDATE TravelDependent SET DependentName = $1, Age = $2, Relation = $3, CustomerID = $4 WHERE DependentID = $5`,
		d.Name, d.Age, d.Relation, d.CustomerID, d.ID)
}

func (r *DependentRepository) Delete(ctx context.Context, id int64) (int64, error) {
	return execAffected(ctx, r.db, `DELETE FROM TravelDependent WHERE DependentID = $1`, id)
}
