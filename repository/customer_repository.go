package repository

import (
	"context"

	"tourismBooking/models"
)

type CustomerRepository struct {
	db DBTX
}

func NewCustomerRepository(q DBTX) *CustomerRepository {
	return &CustomerRepository{db: q}
}

func (r *CustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT CustomerID, COALESCE(Cname, ''), COALESCE(Email, ''), COALESCE(State, ''),
		COALESCE(City, ''), COALESCE(Country, ''), COALESCE(Refers, 0)
		FROM Customer ORDER BY CustomerID`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Customer{}
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.State, &c.City, &c.Country, &c.Refers); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListRefs returns id/name pairs for pickers.
func (r *CustomerRepository) ListRefs(ctx context.Context) ([]models.CustomerRef, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT CustomerID, COALESCE(Cname, '') FROM Customer ORDER BY CustomerID`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.CustomerRef{}
	for rows.Next() {
		var c models.CustomerRef
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CustomerRepository) NextID(ctx context.Context) (int64, error) {
	return nextID(ctx, r.db, "Customer", "CustomerID")
}

func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	_, err := execAffected(ctx, r.db,
		`INSERT INTO Customer (CustomerID, Cname, Email, State, City, Country, Refers) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Name, c.Email, c.State, c.City, c.Country, c.Refers)
	return err
}

// Update overwrites every column of the customer with c.ID and returns the
// number of rows changed (0 when the id does not exist).
func (r *CustomerRepository) Update(ctx context.Context, c *models.Customer) (int64, error) {
	return execAffected(ctx, r.db,
		`UPDATE Customer SET Cname = $1, Email = $2, State = $3, City = $4, Country = $5, Refers = $6 WHERE CustomerID = $7`,
		c.Name, c.Email, c.State, c.City, c.Country, c.Refers, c.ID)
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) (int64, error) {
	return execAffected(ctx, r.db, `DELETE FROM Customer WHERE CustomerID = $1`, id)
}
