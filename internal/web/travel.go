package web

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"

	"tourismBooking/internal/db"
	"tourismBooking/models"
	"tourismBooking/repository"
)

const (
	destinationsPage = "/destinations"
	hotelsPage       = "/hotels"
	transportsPage   = "/transports"
)

func (h *Handler) Destinations(c *gin.Context) {
	destinations := []models.Destination{}
	next := int64(1)
	ok := h.load(c, "Error loading destinations: ", func(ctx context.Context, q *db.Conn) error {
		repo := repository.NewDestinationRepository(q)
		var err error
		if destinations, err = repo.List(ctx); err != nil {
			return err
		}
		next, err = repo.NextID(ctx)
		return err
	})
	if ok {
		h.view.Render(c, "destinations", gin.H{"destinations": destinations, "next_destination_id": next})
	}
}

func (h *Handler) ViewDestinations(c *gin.Context) {
	destinations := []models.Destination{}
	ok := h.load(c, "Error loading destinations: ", func(ctx context.Context, q *db.Conn) error {
		var err error
		destinations, err = repository.NewDestinationRepository(q).List(ctx)
		return err
	})
	if ok {
		h.view.Render(c, "destinations", gin.H{"destinations": destinations})
	}
}

func destinationFromForm(f *form) models.Destination {
	return models.Destination{
		ID:       f.positiveInt("destination_id", "Destination ID"),
		Name:     f.required("destination_name", "Destination Name"),
		Location: f.required("dlocation", "Location"),
	}
}

func (h *Handler) AddDestination(c *gin.Context) {
	f := newForm(c)
	d := destinationFromForm(f)
	if h.invalid(c, f, destinationsPage) {
		return
	}
	h.mutate(c, mutation{
		back:    destinationsPage,
		success: fmt.Sprintf("Destination %d added successfully!", d.ID),
		failure: "Database error: ",
		exec: func(ctx context.Context, tx *sql.Tx) (int64, error) {
			return 1, repository.NewDestinationRepository(tx).Create(ctx, &d)
		},
	})
}

func (h *Handler) UpdateDestination(c *gin.Context) {
	f := newForm(c)
	d := destinationFromForm(f)
	if h.invalid(c, f, destinationsPage) {
		return
	}
	h.mutate(c, mutation{
		back:     destinationsPage,
		success:  fmt.Sprintf("Destination %d updated successfully!", d.ID),
		notFound: fmt.Sprintf("Destination ID %d not found.", d.ID),
		failure:  "Database error: ",
		exec: func(ctx context.Context, tx *sql.Tx) (int64, error) {
			return repository.NewDestinationRepository(tx).Update(ctx, &d)
		},
	})
}

func (h *Handler) DeleteDestination(c *gin.Context) {
	f := newForm(c)
	id := f.positiveInt("destination_id", "Destination ID")
	if h.invalid(c, f, destinationsPage) {
		return
	}
	h.mutate(c, mutation{
		back:     destinationsPage,
		success:  fmt.Sprintf("Destination %d deleted successfully!", id),
		notFound: fmt.Sprintf("Destination ID %d not found.", id),
		failure:  "Cannot delete destination. Ensure no related records exist.\nError: ",
		exec: func(ctx context.Context, tx *sql.Tx) (int64, error) {
			return repository.NewDestinationRepository(tx).Delete(ctx, id)
		},
	})
}

func (h *Handler) Hotels(c *gin.Context) {
	hotels := []models.Hotel{}
	next := int64(1)
	ok := h.load(c, "Error loading hotels: ", func(ctx context.Context, q *db.Conn) error {
		repo := repository.NewHotelRepository(q)
		var err error
		if hotels, err = repo.List(ctx); err != nil {
			return err
		}
		next, err = repo.NextID(ctx)
		return err
	})
	if ok {
		h.view.Render(c, "hotels", gin.H{"hotels": hotels, "next_hotel_id": next})
	}
}

func (h *Handler) ViewHotels(c *gin.Context) {
	hotels := []models.Hotel{}
	ok := h.load(c, "Error loading hotels: ", func(ctx context.Context, q *db.Conn) error {
		var err error
		hotels, err = repository.NewHotelRepository(q).List(ctx)
		return err
	})
	if ok {
		h.view.Render(c, "hotels", gin.H{"hotels": hotels})
	}
}

func hotelFromForm(f *form) models.Hotel {
	return models.Hotel{
		ID:      f.positiveInt("hotel_id", "Hotel ID"),
		Name:    f.required("hotel_name", "Hotel Name"),
		Address: f.required("address", "Address"),
		Rating:  f.nonNegative("rating", "Rating"),
		Price:   f.nonNegative("hotel_price", "Hotel Price"),
	}
}

func (h *Handler) AddHotel(c *gin.Context) {
	f := newForm(c)
	ho := hotelFromForm(f)
	if h.invalid(c, f, hotelsPage) {
		return
	}
	h.mutate(c, mutation{
		back:    hotelsPage,
		success: fmt.Sprintf("Hotel %d added successfully!", ho.ID),
		failure: "Database error: ",
		exec: func(ctx context.Context, tx *sql.Tx) (int64, error) {
			return 1, repository.NewHotelRepository(tx).Create(ctx, &ho)
		},
	})
}

func (h *Handler) UpdateHotel(c *gin.Context) {
	f := newForm(c)
	ho := hotelFromForm(f)
	if h.invalid(c, f, hotelsPage) {
		return
	}
	h.mutate(c, mutation{
		back:     hotelsPage,
		success:  fmt.Sprintf("Hotel %d updated successfully!", ho.ID),
		notFound: fmt.Sprintf("Hotel ID %d not found.", ho.ID),
		failure:  "Database error: ",
		exec: func(ctx context.Context, tx *sql.Tx) (int64, error) {
			return repository.NewHotelRepository(tx).Update(ctx, &ho)
		},
	})
}

func (h *Handler) DeleteHotel(c *gin.Context) {
	f := newForm(c)
	id := f.positiveInt("hotel_id", "Hotel ID")
	if h.invalid(c, f, hotelsPage) {
		return
	}
	h.mutate(c, mutation{
		back:     hotelsPage,
		success:  fmt.Sprintf("Hotel %d deleted successfully!", id),
		notFound: fmt.Sprintf("Hotel ID %d not found.", id),
		failure:  "Cannot delete hotel. Ensure no related records exist.\nError: ",
		exec: func(ctx context.Context, tx *sql.Tx) (int64, error) {
			return repository.NewHotelRepository(tx).Delete(ctx, id)
		},
	})
}

func (h *Handler) Transports(c *gin.Context) {
	transports := []models.Transport{}
	next := int64(1)
	ok := h.load(c, "Error loading transports: ", func(ctx context.Context, q *db.Conn) error {
		repo := repository.NewTransportRepository(q)
		var err error
		if transports, err = repo.List(ctx); err != nil {
			return err
		}
		next, err = repo.NextID(ctx)
		return err
	})
	if ok {
		h.view.Render(c, "transports", gin.H{"transports": transports, "next_transport_id": next})
	}
}

func (h *Handler) ViewTransports(c *gin.Context) {
	transports := []models.Transport{}
	ok := h.load(c, "Error loading transports: ", func(ctx context.Context, q *db.Conn) error {
		var err error
		transports, err = repository.NewTransportRepository(q).List(ctx)
		return err
	})
	if ok {
		h.view.Render(c, "transports", gin.H{"transports": transports})
	}
}

func transportFromForm(f *form) models.Transport {
	return models.Transport{
		ID:              f.positiveInt("transport_id", "Transport ID"),
		Type:            f.required("transport_type", "Transport Type"),
		DepartLocation:  f.required("depart_location", "Departure Location"),
		ArrivalLocation: f.required("arrival_location", "Arrival Location"),
		DepartAt:        f.dateTime("depart_datetime", "Departure Date/Time"),
		ArriveAt:        f.dateTime("arrival_datetime", "Arrival Date/Time"),
		Price:           f.nonNegative("transport_price", "Transport Price"),
	}
}

func (h *Handler) AddTransport(c *gin.Context) {
	f := newForm(c)
	t := transportFromForm(f)
	if h.invalid(c, f, transportsPage) {
		return
	}
	h.mutate(c, mutation{
		back:    transportsPage,
		success: fmt.Sprintf("Transport %d added successfully!", t.ID),
		failure: "Database error: ",
		exec: func(ctx context.Context, tx *sql.Tx) (int64, error) {
			return 1, repository.NewTransportRepository(tx).Create(ctx, &t)
		},
	})
}

func (h *Handler) UpdateTransport(c *gin.Context) {
	f := newForm(c)
	t := transportFromForm(f)
	if h.invalid(c, f, transportsPage) {
		return
	}
	h.mutate(c, mutation{
		back:     transportsPage,
		success:  fmt.Sprintf("Transport %d updated successfully!", t.ID),
		notFound: fmt.Sprintf("Transport ID %d not found.", t.ID),
		failure:  "Database error: ",
		exec: func(ctx context.Context, tx *sql.Tx) (int64, error) {
			return repository.NewTransportRepository(tx).Update(ctx, &t)
		},
	})
}

func (h *Handler) DeleteTransport(c *gin.Context) {
	f := newForm(c)
	id := f.positiveInt("transport_id", "Transport ID")
	if h.invalid(c, f, transportsPage) {
		return
	}
	h.mutate(c, mutation{
		back:     transportsPage,
		success:  fmt.Sprintf("Transport %d deleted successfully!", id),
		notFound: fmt.Sprintf("Transport ID %d not found.", id),
		failure:  "Cannot delete transport. Ensure no related records exist.\nError: ",
		exec: func(ctx context.Context, tx *sql.Tx) (int64, error) {
			return repository.NewTransportRepository(tx).Delete(ctx, id)
		},
	})
}
