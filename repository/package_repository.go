package repository

import (
	"context"

	"tourismBooking/models"
)

type PackageRepository struct {
	db DBTX
}

func NewPackageRepository(q DBTX) *PackageRepository {
	return &PackageRepository{db: q}
}

func (r *PackageRepository) List(ctx context.Context) ([]models.TourPackage, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT PackageID, PackageName, PackagePrice, Duration, No_of_Travelers
		FROM TourPackage ORDER BY PackageID`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.TourPackage{}
	for rows.Next() {
		var p models.TourPackage
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Duration, &p.Travelers); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PackageRepository) NextID(ctx context.Context) (int64, error) {
	return nextID(ctx, r.db, "TourPackage", "PackageID")
}

func (r *PackageRepository) Create(ctx context.Context, p *models.TourPackage) error {
	_, err := execAffected(ctx, r.db,
		`INSERT INTO TourPackage (PackageID, PackageName, PackagePrice, Duration, No_of_Travelers) VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.Name, p.Price, p.Duration, p.Travelers)
	return err
}

func (r *PackageRepository) Update(ctx context.Context, p *models.TourPackage) (int64, error) {
	return execAffected(ctx, r.db,
		`UPDATE TourPackage SET PackageName = $1, PackagePrice = $2, Duration = $3, No_of_Travelers = $4 WHERE PackageID = $5`,
		p.Name, p.Price, p.Duration, p.Travelers, p.ID)
}

func (r *PackageRepository) Delete(ctx context.Context, id int64) (int64, error) {
	return execAffected(ctx, r.db, `DELETE FROM TourPackage WHERE PackageID = $1`, id)
}
