package models

// Dashboard holds the headline counters shown on the home page.
type Dashboard struct {
	TotalCustomers int64 `json:"total_customers"`
	TotalBookings  int64 `json:"total_bookings"`
	TotalPayments  int64 `json:"total_payments"`
}

// Table is a generic result set for reports whose shape is decided by the
// database (stored routines).
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// DependentCount is one row of the dependents-per-customer report.
type DependentCount struct {
	CustomerName    string `json:"customer_name"`
	TotalDependents int64  `json:"total_dependents"`
}

// PackagePrice is one row of the most-expensive-packages report.
type PackagePrice struct {
	PackageName  string  `json:"package_name"`
	PackagePrice float64 `json:"package_price"`
}

// ConfirmedStay is one row of the confirmed-bookings-with-hotel report.
type ConfirmedStay struct {
	BookingID    int64   `json:"booking_id"`
	CustomerName string  `json:"customer_name"`
	HotelName    string  `json:"hotel_name"`
	Rating       float64 `json:"rating"`
}
