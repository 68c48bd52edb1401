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

const customersPage = "/customers"

// Customers renders the customer list with dependents and the next free id.
func (h *Handler) Customers(c *gin.Context) {
	var (
		refs       = []models.CustomerRef{}
		customers  = []models.Customer{}
		dependents = []models.Dependent{}
		next       = int64(1)
	)
	ok := h.load(c, "Error loading customers: ", func(ctx context.Context, q *db.Conn) error {
		repo := repository.NewCustomerRepository(q)
		var err error
		if refs, err = repo.ListRefs(ctx); err != nil {
			return err
		}
		if customers, err = repo.List(ctx); err != nil {
			return err
		}
		if dependents, err = repository.NewDependentRepository(q).List(ctx); err != nil {
			return err
		}
		next, err = repo.NextID(ctx)
		return err
	})
	if !ok {
		return
	}
	h.view.Render(c, "customers", gin.H{
		"customer_list":    refs,
		"customers":        customers,
		"dependents":       dependents,
		"next_customer_id": next,
	})
}

func (h *Handler) ViewCustomers(c *gin.Context) {
	customers := []models.Customer{}
	ok := h.load(c, "Error loading customers: ", func(ctx context.Context, q *db.Conn) error {
		var err error
		customers, err = repository.NewCustomerRepository(q).List(ctx)
		return err
	})
	if ok {
		h.view.Render(c, "customers", gin.H{"customers": customers})
	}
}

func (h *Handler) ViewDependents(c *gin.Context) {
	dependents := []models.Dependent{}
	ok := h.load(c, "Error loading dependents: ", func(ctx context.Context, q *db.Conn) error {
		var err error
		dependents, err = repository.NewDependentRepository(q).List(ctx)
		return err
	})
	if ok {
		h.view.Render(c, "customers", gin.H{"dependents": dependents})
	}
}

func customerFromForm(f *form) models.Customer {
	return models.Customer{
		ID:      f.positiveInt("customer_id", "Customer ID"),
		Refers:  f.positiveInt("refers", "Refers"),
		Name:    f.text("name"),
		Email:   f.text("email"),
		State:   f.text("state"),
		City:    f.text("city"),
		Country: f.text("country"),
	}
}

func (h *Handler) AddCustomer(c *gin.Context) {
	f := newForm(c)
	cust := customerFromForm(f)
	if h.invalid(c, f, customersPage) {
		return
	}
	h.mutate(c, mutation{
		back:    customersPage,
		success: "Customer added successfully!",
		failure: "Database error: ",
		exec: func(ctx context.Context, tx *sql.Tx) (int64, error) {
			return 1, repository.NewCustomerRepository(tx).Create(ctx, &cust)
		},
	})
}

func (h *Handler) UpdateCustomer(c *gin.Context) {
	f := newForm(c)
	cust := customerFromForm(f)
	if h.invalid(c, f, customersPage) {
		return
	}
	h.mutate(c, mutation{
		back:     customersPage,
		success:  fmt.Sprintf("Customer %d updated successfully!", cust.ID),
		notFound: fmt.Sprintf("Customer ID %d not found.", cust.ID),
		failure:  "Database error: ",
		exec: func(ctx context.Context, tx *sql.Tx) (int64, error) {
			return repository.NewCustomerRepository(tx).Update(ctx, &cust)
		},
	})
}

func (h *Handler) DeleteCustomer(c *gin.Context) {
	f := newForm(c)
	id := f.positiveInt("customer_id", "Customer ID")
	if h.invalid(c, f, customersPage) {
		return
	}
	h.mutate(c, mutation{
		back:     customersPage,
		success:  fmt.Sprintf("Customer %d deleted successfully!", id),
		notFound: fmt.Sprintf("Customer ID %d not found.", id),
		failure:  "Cannot delete customer. Ensure no related bookings exist.\nError: ",
		exec: func(ctx context.Context, tx *sql.Tx) (int64, error) {
			return repository.NewCustomerRepository(tx).Delete(ctx, id)
		},
	})
}

func dependentFromForm(f *form) models.Dependent {
	return models.Dependent{
		Name:       f.required("dependent_name", "Dependent Name"),
		Age:        f.positiveInt("age", "Age"),
		Relation:   f.required("relation", "Relation"),
		CustomerID: f.positiveInt("customer_id", "Customer ID"),
	}
}

func (h *Handler) AddDependent(c *gin.Context) {
	f := newForm(c)
	dep := dependentFromForm(f)
	if h.invalid(c, f, customersPage) {
		return
	}
	h.mutate(c, mutation{
		back:    customersPage,
		success: fmt.Sprintf("Travel Dependent '%s' added successfully!", dep.Name),
		failure: "Database error (Check Customer ID):\n",
		exec: func(ctx context.Context, tx *sql.Tx) (int64, error) {
			_, err := repository.NewDependentRepository(tx).Create(ctx, &dep)
			return 1, err
		},
	})
}

func (h *Handler) UpdateDependent(c *gin.Context) {
	f := newForm(c)
	id := f.positiveInt("dependent_id", "Dependent ID")
	dep := dependentFromForm(f)
	dep.ID = id
	if h.invalid(c, f, customersPage) {
		return
	}
	h.mutate(c, mutation{
		back:     customersPage,
		success:  fmt.Sprintf("Travel Dependent %d updated successfully!", id),
		notFound: fmt.Sprintf("Dependent ID %d not found.", id),
		failure:  "Database error: ",
		exec: func(ctx context.Context, tx *sql.Tx) (int64, error) {
			return repository.NewDependentRepository(tx).Update(ctx, &dep)
		},
	})
}

func (h *Handler) DeleteDependent(c *gin.Context) {
	f := newForm(c)
	id := f.positiveInt("dependent_id", "Dependent ID")
	if h.invalid(c, f, customersPage) {
		return
	}
	h.mutate(c, mutation{
		back:     customersPage,
		success:  fmt.Sprintf("Travel Dependent %d deleted successfully!", id),
		notFound: fmt.Sprintf("Dependent ID %d not found.", id),
		failure:  "Cannot delete dependent.\nError: ",
		exec: func(ctx context.Context, tx *sql.Tx) (int64, error) {
			return repository.NewDependentRepository(tx).Delete(ctx, id)
		},
	})
}
