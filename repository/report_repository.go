package repository

import (
	"context"
	"database/sql"

	"tourismBooking/internal/db"
	"tourismBooking/models"
)

// ReportRepository runs the dashboard counters and canned reports. The two
// routine-backed reports call the stored routines on postgres and run the
// equivalent inline SQL on sqlite, which has no stored routines.
type ReportRepository struct {
	db     DBTX
	driver string
}

func NewReportRepository(q DBTX, driver string) *ReportRepository {
	return &ReportRepository{db: q, driver: driver}
}

const (
	packageTotalCostRoutine = `SELECT * FROM calculate_package_total_cost($1)`
	packageTotalCostInline  = `SELECT PackageID AS package_id, PackageName AS package_name, PackagePrice AS package_price,
		No_of_Travelers AS travelers, PackagePrice * No_of_Travelers AS total_cost
		FROM TourPackage WHERE PackageID = $1`

	totalAmountSpentRoutine = `SELECT TotalAmountSpent($1)`
	totalAmountSpentInline  = `SELECT SUM(p.Amount) FROM Payment p
		JOIN Booking b ON b.BookingID = p.BookingID WHERE b.CustomerID = $1`
)

// Dashboard counts customers, bookings and payments.
func (r *ReportRepository) Dashboard(ctx context.Context) (models.Dashboard, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var d models.Dashboard
	for _, q := range []struct {
		table string
		dst   *int64
	}{
		{"Customer", &d.TotalCustomers},
		{"Booking", &d.TotalBookings},
		{"Payment", &d.TotalPayments},
	} {
		if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+q.table).Scan(q.dst); err != nil {
			return models.Dashboard{}, err
		}
	}
	return d, nil
}

func (r *ReportRepository) PackageExists(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM TourPackage WHERE PackageID = $1`, id).Scan(&n)
	return n > 0, err
}

// PackageTotalCost returns the rows produced by calculate_package_total_cost
// for package id, with whatever columns the routine declares.
func (r *ReportRepository) PackageTotalCost(ctx context.Context, id int64) (*models.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := packageTotalCostRoutine
	if r.driver == db.DriverSQLite {
		query = packageTotalCostInline
	}
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTable(rows)
}

// TotalAmountSpent returns the sum of payments over the customer's bookings.
// ok is false when the customer does not exist or has no payments.
func (r *ReportRepository) TotalAmountSpent(ctx context.Context, customerID int64) (total float64, ok bool, err error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := totalAmountSpentRoutine
	if r.driver == db.DriverSQLite {
		query = totalAmountSpentInline
	}
	var sum sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, query, customerID).Scan(&sum); err != nil {
		return 0, false, err
	}
	return sum.Float64, sum.Valid, nil
}

// DependentCounts lists every customer with their number of travel dependents.
func (r *ReportRepository) DependentCounts(ctx context.Context) ([]models.DependentCount, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT COALESCE(c.Cname, ''), COUNT(td.DependentName) AS Total_Dependents
		FROM Customer c
		LEFT JOIN TravelDependent td ON c.CustomerID = td.CustomerID
		GROUP BY c.CustomerID, c.Cname
		ORDER BY c.CustomerID`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.DependentCount{}
	for rows.Next() {
		var dc models.DependentCount
		if err := rows.Scan(&dc.CustomerName, &dc.TotalDependents); err != nil {
			return nil, err
		}
		out = append(out, dc)
	}
	return out, rows.Err()
}

// TopPackages returns the limit most expensive packages, priciest first.
func (r *ReportRepository) TopPackages(ctx context.Context, limit int) ([]models.PackagePrice, error) {
	if limit <= 0 {
		limit = 3
	}
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT PackageName, PackagePrice FROM TourPackage
		ORDER BY PackagePrice DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.PackagePrice{}
	for rows.Next() {
		var p models.PackagePrice
		if err := rows.Scan(&p.PackageName, &p.PackagePrice); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ConfirmedStays lists confirmed or paid bookings with the hotel booked on
// their itinerary.
func (r *ReportRepository) ConfirmedStays(ctx context.Context) ([]models.ConfirmedStay, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT b.BookingID, COALESCE(c.Cname, ''), COALESCE(h.HotelName, ''), h.Rating
		FROM Booking b
		JOIN Customer c ON b.CustomerID = c.CustomerID
		JOIN Itinerary i ON b.BookingID = i.BookingID
		JOIN Hotel h ON i.HotelID = h.HotelID
		WHERE b.Status = 'Confirmed' OR b.Status = 'Paid'
		ORDER BY b.BookingID`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.ConfirmedStay{}
	for rows.Next() {
		var s models.ConfirmedStay
		if err := rows.Scan(&s.BookingID, &s.CustomerName, &s.HotelName, &s.Rating); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanTable(rows *sql.Rows) (*models.Table, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	t := &models.Table{Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		t.Rows = append(t.Rows, vals)
	}
	return t, rows.Err()
}
