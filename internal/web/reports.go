package web

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"tourismBooking/internal/auth"
	"tourismBooking/internal/db"
	"tourismBooking/models"
	"tourismBooking/repository"
)

const (
	proceduresPage = "/procedures"
	queriesPage    = "/queries"
	topPackages    = 3
)

var amountPrinter = message.NewPrinter(language.English)

// formatTotalSpent renders a customer's lifetime spend with thousands
// separators.
func formatTotalSpent(total float64, ok bool) string {
	if !ok {
		return "Total Amount Spent: ₹0.00 (Customer not found or no payments)"
	}
	return "Total Amount Spent: ₹" + amountPrinter.Sprintf("%.2f", total)
}

// withConn runs fn on a role-scoped connection. When no connection could be
// opened the request is redirected to back.
func (h *Handler) withConn(c *gin.Context, back string, fn func(ctx context.Context, q *db.Conn)) {
	conn, answered := h.openForRole(c)
	if conn == nil {
		if !answered {
			h.redirect(c, back)
		}
		return
	}
	defer conn.Close()
	fn(c.Request.Context(), conn)
}

func (h *Handler) Procedures(c *gin.Context) {
	h.view.Render(c, "procedures", gin.H{})
}

// RunProcedure reports the total cost of one package.
func (h *Handler) RunProcedure(c *gin.Context) {
	f := newForm(c)
	id := f.positiveInt("package_id", "Package ID")
	if h.invalid(c, f, proceduresPage) {
		return
	}
	h.withConn(c, proceduresPage, func(ctx context.Context, q *db.Conn) {
		repo := repository.NewReportRepository(q, h.driver)
		exists, err := repo.PackageExists(ctx, id)
		if err == nil && !exists {
			h.flash(c, auth.FlashError, fmt.Sprintf("Package ID %d does not exist.", id))
			h.redirect(c, proceduresPage)
			return
		}
		var table *models.Table
		if err == nil {
			table, err = repo.PackageTotalCost(ctx, id)
		}
		if err != nil {
			h.log.ErrorErr("package cost procedure failed", err, "package_id", id)
			h.flash(c, auth.FlashError, fmt.Sprintf("Procedure Error: Failed to execute procedure: %v", err))
			h.redirect(c, proceduresPage)
			return
		}
		h.view.Render(c, "procedures", gin.H{"procedure_results": table, "package_id": id})
	})
}

// RunFunction reports how much a customer has paid in total.
func (h *Handler) RunFunction(c *gin.Context) {
	f := newForm(c)
	id := f.positiveInt("customer_id", "Customer ID")
	if h.invalid(c, f, proceduresPage) {
		return
	}
	h.withConn(c, proceduresPage, func(ctx context.Context, q *db.Conn) {
		total, ok, err := repository.NewReportRepository(q, h.driver).TotalAmountSpent(ctx, id)
		if err != nil {
			h.log.ErrorErr("total spent function failed", err, "customer_id", id)
			h.flash(c, auth.FlashError, fmt.Sprintf("Function Error: Failed to execute function: %v", err))
			h.redirect(c, proceduresPage)
			return
		}
		h.view.Render(c, "procedures", gin.H{"function_result": formatTotalSpent(total, ok)})
	})
}

func (h *Handler) Queries(c *gin.Context) {
	h.view.Render(c, "queries", gin.H{})
}

// runQuery renders one canned report under key, or flashes the failure
// labelled with the report's letter.
func (h *Handler) runQuery(c *gin.Context, letter, key string, fn func(ctx context.Context, r *repository.ReportRepository) (any, error)) {
	h.withConn(c, queriesPage, func(ctx context.Context, q *db.Conn) {
		rows, err := fn(ctx, repository.NewReportRepository(q, h.driver))
		if err != nil {
			h.log.ErrorErr("report query failed", err, "query", letter)
			h.flash(c, auth.FlashError, fmt.Sprintf("Query Error (%s): Failed to run query:\n%v", letter, err))
			h.redirect(c, queriesPage)
			return
		}
		h.view.Render(c, "queries", gin.H{key: rows})
	})
}

func (h *Handler) QueryA(c *gin.Context) {
	h.runQuery(c, "a", "query_a_results", func(ctx context.Context, r *repository.ReportRepository) (any, error) {
		return r.DependentCounts(ctx)
	})
}

func (h *Handler) QueryB(c *gin.Context) {
	h.runQuery(c, "b", "query_b_results", func(ctx context.Context, r *repository.ReportRepository) (any, error) {
		return r.TopPackages(ctx, topPackages)
	})
}

func (h *Handler) QueryC(c *gin.Context) {
	h.runQuery(c, "c", "query_c_results", func(ctx context.Context, r *repository.ReportRepository) (any, error) {
		return r.ConfirmedStays(ctx)
	})
}
