package repository

import (
	"context"

	"tourismBooking/models"
)

// UserRepositoryI defines operations on AppUser entities.
type UserRepositoryI interface {
	Create(ctx context.Context, username, passwordHash string, role models.Role) (*models.AppUser, error)
	GetByUsername(ctx context.Context, username string) (*models.AppUser, error)
	GetByID(ctx context.Context, id int64) (*models.AppUser, error)
}

// CustomerRepositoryI defines operations on Customer entities.
type CustomerRepositoryI interface {
	List(ctx context.Context) ([]models.Customer, error)
	ListRefs(ctx context.Context) ([]models.CustomerRef, error)
	NextID(ctx context.Context) (int64, error)
	Create(ctx context.Context, c *models.Customer) error
	Update(ctx context.Context, c *models.Customer) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// DependentRepositoryI defines operations on TravelDependent entities.
type DependentRepositoryI interface {
	List(ctx context.Context) ([]models.Dependent, error)
	Create(ctx context.Context, d *models.Dependent) (*models.Dependent, error)
	Update(ctx context.Context, d *models.Dependent) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// BookingRepositoryI defines operations on Booking entities.
type BookingRepositoryI interface {
	List(ctx context.Context) ([]models.Booking, error)
	NextID(ctx context.Context) (int64, error)
	Create(ctx context.Context, b *models.Booking) error
	Update(ctx context.Context, b *models.Booking) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// PaymentRepositoryI defines operations on Payment entities.
type PaymentRepositoryI interface {
	List(ctx context.Context) ([]models.Payment, error)
	NextID(ctx context.Context) (int64, error)
	Create(ctx context.Context, p *models.Payment) error
	Update(ctx context.Context, p *models.Payment) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// PackageRepositoryI defines operations on TourPackage entities.
type PackageRepositoryI interface {
	List(ctx context.Context) ([]models.TourPackage, error)
	NextID(ctx context.Context) (int64, error)
	Create(ctx context.Context, p *models.TourPackage) error
	Update(ctx context.Context, p *models.TourPackage) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// DestinationRepositoryI defines operations on Destination entities.
type DestinationRepositoryI interface {
	List(ctx context.Context) ([]models.Destination, error)
	NextID(ctx context.Context) (int64, error)
	Create(ctx context.Context, d *models.Destination) error
	Update(ctx context.Context, d *models.Destination) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// HotelRepositoryI defines operations on Hotel entities.
type HotelRepositoryI interface {
	List(ctx context.Context) ([]models.Hotel, error)
	NextID(ctx context.Context) (int64, error)
	Create(ctx context.Context, h *models.Hotel) error
	Update(ctx context.Context, h *models.Hotel) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// TransportRepositoryI defines operations on Transport entities.
type TransportRepositoryI interface {
	List(ctx context.Context) ([]models.Transport, error)
	NextID(ctx context.Context) (int64, error)
	Create(ctx context.Context, t *models.Transport) error
	Update(ctx context.Context, t *models.Transport) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// ReportRepositoryI defines the canned reports and dashboard counters.
type ReportRepositoryI interface {
	Dashboard(ctx context.Context) (models.Dashboard, error)
	PackageExists(ctx context.Context, id int64) (bool, error)
	PackageTotalCost(ctx context.Context, id int64) (*models.Table, error)
	TotalAmountSpent(ctx context.Context, customerID int64) (float64, bool, error)
	DependentCounts(ctx context.Context) ([]models.DependentCount, error)
	TopPackages(ctx context.Context, limit int) ([]models.PackagePrice, error)
	ConfirmedStays(ctx context.Context) ([]models.ConfirmedStay, error)
}

var (
	_ UserRepositoryI        = (*UserRepository)(nil)
	_ CustomerRepositoryI    = (*CustomerRepository)(nil)
	_ DependentRepositoryI   = (*DependentRepository)(nil)
	_ BookingRepositoryI     = (*BookingRepository)(nil)
	_ PaymentRepositoryI     = (*PaymentRepository)(nil)
	_ PackageRepositoryI     = (*PackageRepository)(nil)
	_ DestinationRepositoryI = (*DestinationRepository)(nil)
	_ HotelRepositoryI       = (*HotelRepository)(nil)
	_ TransportRepositoryI   = (*TransportRepository)(nil)
	_ ReportRepositoryI      = (*ReportRepository)(nil)
)
