package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourismBooking/internal/testutil"
	"tourismBooking/models"
)

func TestPackageRepository_CRUD(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "packagerepo")
	repo := NewPackageRepository(d)
	ctx := context.Background()

	p := &models.TourPackage{ID: 3, Name: "Kerala Backwaters", Price: 15999.5, Duration: 5, Travelers: 2}
	require.NoError(t, repo.Create(ctx, p))
	next, err := repo.NextID(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, next)

	p.Price = 14999
	n, err := repo.Update(ctx, p)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.TourPackage{*p}, list)

	n, err = repo.Delete(ctx, 3)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestDestinationHotelTransportRepositories(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "travelrepo")
	ctx := context.Background()

	dests := NewDestinationRepository(d)
	require.NoError(t, dests.Create(ctx, &models.Destination{ID: 1, Name: "Munnar", Location: "Kerala"}))
	n, err := dests.Update(ctx, &models.Destination{ID: 1, Name: "Munnar Hills", Location: "Kerala"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	dl, err := dests.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Munnar Hills", dl[0].Name)

	hotels := NewHotelRepository(d)
	require.NoError(t, hotels.Create(ctx, &models.Hotel{ID: 1, Name: "Tea Valley", Address: "Main Rd", Rating: 4.5, Price: 3200}))
	hl, err := hotels.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4.5, hl[0].Rating)
	n, err = hotels.Delete(ctx, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	transports := NewTransportRepository(d)
	dep := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	arr := dep.Add(3 * time.Hour)
	tr := &models.Transport{ID: 7, Type: "Bus", DepartLocation: "Kochi", ArrivalLocation: "Munnar", DepartAt: dep, ArriveAt: arr, Price: 450}
	require.NoError(t, transports.Create(ctx, tr))
	next, err := transports.NextID(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 8, next)

	tr.Price = 500
	n, err = transports.Update(ctx, tr)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	tl, err := transports.List(ctx)
	require.NoError(t, err)
	require.Len(t, tl, 1)
	assert.True(t, dep.Equal(tl[0].DepartAt))
	assert.True(t, arr.Equal(tl[0].ArriveAt))
	assert.Equal(t, 500.0, tl[0].Price)
}
