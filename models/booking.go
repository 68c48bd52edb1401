package models

import "time"

// Booking maps to the `Booking` table.
type Booking struct {
	ID          int64     `db:"BookingID" json:"booking_id"`
	BookingDate time.Time `db:"BookingDate" json:"booking_date"`
	Status      string    `db:"Status" json:"status"`
	CustomerID  int64     `db:"CustomerID" json:"customer_id"`
	PackageID   int64     `db:"PackageID" json:"package_id"`
}

// Payment maps to the `Payment` table.
type Payment struct {
	ID          int64     `db:"PaymentID" json:"payment_id"`
	Amount      float64   `db:"Amount" json:"amount"`
	PaymentDate time.Time `db:"PaymentDate" json:"payment_date"`
	Method      string    `db:"PaymentMethod" json:"method"`
	BookingID   int64     `db:"BookingID" json:"booking_id"`
}
