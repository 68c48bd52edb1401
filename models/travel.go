package models

import "time"

// TourPackage maps to the `TourPackage` table.
type TourPackage struct {
	ID        int64   `db:"PackageID" json:"package_id"`
	Name      string  `db:"PackageName" json:"package_name"`
	Price     float64 `db:"PackagePrice" json:"price"`
	Duration  int64   `db:"Duration" json:"duration"`
	Travelers int64   `db:"No_of_Travelers" json:"travelers"`
}

// Destination maps to the `Destination` table.
type Destination struct {
	ID       int64  `db:"DestinationID" json:"destination_id"`
	Name     string `db:"DestinationName" json:"destination_name"`
	Location string `db:"Dlocation" json:"dlocation"`
}

// Hotel maps to the `Hotel` table.
type Hotel struct {
	ID      int64   `db:"HotelID" json:"hotel_id"`
	Name    string  `db:"HotelName" json:"hotel_name"`
	Address string  `db:"Address" json:"address"`
	Rating  float64 `db:"Rating" json:"rating"`
	Price   float64 `db:"HotelPrice" json:"hotel_price"`
}

// Transport maps to the `Transport` table.
type Transport struct {
	ID              int64     `db:"TransportID" json:"transport_id"`
	Type            string    `db:"TransportType" json:"transport_type"`
	DepartLocation  string    `db:"DepartLocation" json:"depart_location"`
	ArrivalLocation string    `db:"ArrivalLocation" json:"arrival_location"`
	DepartAt        time.Time `db:"DepartDateTime" json:"depart_datetime"`
	ArriveAt        time.Time `db:"ArrivalDateTime" json:"arrival_datetime"`
	Price           float64   `db:"TransportPrice" json:"transport_price"`
}
