package web

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"

	"tourismBooking/internal/catalog"
	"tourismBooking/internal/db"
	"tourismBooking/models"
	"tourismBooking/repository"
)

const packagesPage = "/packages"

// CatalogLoader returns a catalog.LoadFunc that reads packages over a fresh
// connection opened with p.
func CatalogLoader(opener Opener, p db.Params) catalog.LoadFunc {
	return func(ctx context.Context) ([]models.TourPackage, error) {
		conn, err := opener.Open(ctx, p)
		if err != nil {
			return nil, err
		}
		defer conn.Close()
		return repository.NewPackageRepository(conn).List(ctx)
	}
}

// refreshCatalog reloads the menu after a package write.
func (h *Handler) refreshCatalog(ctx context.Context) {
	if h.catalog == nil {
		return
	}
	if err := h.catalog.Refresh(ctx); err != nil {
		h.catalog.Invalidate()
		h.log.ErrorErr("package catalog refresh failed", err)
	}
}

func (h *Handler) Packages(c *gin.Context) {
	packages := []models.TourPackage{}
	next := int64(1)
	ok := h.load(c, "Error loading packages: ", func(ctx context.Context, q *db.Conn) error {
		repo := repository.NewPackageRepository(q)
		var err error
		if packages, err = repo.List(ctx); err != nil {
			return err
		}
		next, err = repo.NextID(ctx)
		return err
	})
	if ok {
		h.view.Render(c, "packages", gin.H{
			"package_list":    packages,
			"packages":        h.packageNames(c),
			"next_package_id": next,
		})
	}
}

func (h *Handler) ViewPackages(c *gin.Context) {
	packages := []models.TourPackage{}
	ok := h.load(c, "Error loading packages: ", func(ctx context.Context, q *db.Conn) error {
		var err error
		packages, err = repository.NewPackageRepository(q).List(ctx)
		return err
	})
	if ok {
		h.view.Render(c, "packages", gin.H{"package_list": packages})
	}
}

func packageFromForm(f *form) models.TourPackage {
	return models.TourPackage{
		ID:        f.positiveInt("package_id", "Package ID"),
		Name:      f.required("package_name", "Package Name"),
		Price:     f.nonNegative("price", "Price"),
		Duration:  f.positiveInt("duration", "Duration"),
		Travelers: f.positiveInt("travelers", "Number of Travelers"),
	}
}

func (h *Handler) AddPackage(c *gin.Context) {
	f := newForm(c)
	p := packageFromForm(f)
	if h.invalid(c, f, packagesPage) {
		return
	}
	h.mutate(c, mutation{
		back:    packagesPage,
		success: fmt.Sprintf("New Package '%s' (ID: %d) added successfully!", p.Name, p.ID),
		failure: "Database error:\n",
		exec: func(ctx context.Context, tx *sql.Tx) (int64, error) {
			return 1, repository.NewPackageRepository(tx).Create(ctx, &p)
		},
		after: h.refreshCatalog,
	})
}

func (h *Handler) UpdatePackage(c *gin.Context) {
	f := newForm(c)
	p := packageFromForm(f)
	if h.invalid(c, f, packagesPage) {
		return
	}
	h.mutate(c, mutation{
		back:     packagesPage,
		success:  fmt.Sprintf("Package %d updated successfully!", p.ID),
		notFound: fmt.Sprintf("Package ID %d not found.", p.ID),
		failure:  "Database error: ",
		exec: func(ctx context.Context, tx *sql.Tx) (int64, error) {
			return repository.NewPackageRepository(tx).Update(ctx, &p)
		},
		after: h.refreshCatalog,
	})
}

func (h *Handler) DeletePackage(c *gin.Context) {
	f := newForm(c)
	id := f.positiveInt("package_id", "Package ID")
	if h.invalid(c, f, packagesPage) {
		return
	}
	h.mutate(c, mutation{
		back:     packagesPage,
		success:  fmt.Sprintf("Package %d deleted successfully!", id),
		notFound: fmt.Sprintf("Package ID %d not found.", id),
		failure:  "Cannot delete package. Ensure no related bookings exist.\nError: ",
		exec: func(ctx context.Context, tx *sql.Tx) (int64, error) {
			return repository.NewPackageRepository(tx).Delete(ctx, id)
		},
		after: h.refreshCatalog,
	})
}
