// Package api serves the engine over JSON HTTP. The caller's identity comes
// from the X-Weekwise-User header set by a fronting proxy.
package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lachiem1/weekwise/internal/engine"
)

const UserHeader = "X-Weekwise-User"

type ctxKey struct{}

// Handler holds the dependencies of every route.
type Handler struct {
	Engine *engine.Engine
	// Now is the clock used when a request carries no ?date=.
	Now func() time.Time
}

// NewRouter builds the route table.
func NewRouter(h *Handler) http.Handler {
	if h.Now == nil {
		h.Now = time.Now
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(requireUser)

		r.Get("/home", h.Home)
		r.Put("/settings/payday", h.SetPayday)

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", h.ListExpenses)
			r.Post("/", h.CreateExpense)
			r.Put("/{id}", h.UpdateExpense)
			r.Delete("/{id}", h.DeleteExpense)
		})
		r.Route("/incomes", func(r chi.Router) {
			r.Get("/", h.ListIncomes)
			r.Post("/", h.CreateIncome)
			r.Put("/{id}", h.UpdateIncome)
			r.Delete("/{id}", h.DeleteIncome)
		})
		r.Route("/bills", func(r chi.Router) {
			r.Get("/", h.ListBills)
			r.Post("/", h.CreateBill)
			r.Get("/status", h.BillStatuses)
			r.Put("/{id}", h.UpdateBill)
			r.Delete("/{id}", h.DeleteBill)
			r.Post("/{id}/mark-paid", h.MarkBillPaid)
		})
		r.Route("/savings", func(r chi.Router) {
			r.Get("/", h.ListSavings)
			r.Post("/", h.CreateSaving)
			r.Delete("/{id}", h.DeleteSaving)
		})
		r.Route("/cycle/new", func(r chi.Router) {
			r.Get("/", h.CycleDraft)
			r.Post("/leftover", h.LeftoverAction)
			r.Post("/delete-bills", h.DeleteBills)
			r.Post("/confirm", h.ConfirmCycle)
		})
		r.Get("/summaries", h.ListSummaries)
	})
	return r
}

func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := strings.TrimSpace(r.Header.Get(UserHeader))
		if user == "" {
			writeError(w, http.StatusUnauthorized, "missing "+UserHeader+" header")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, user)))
	})
}

func userFrom(r *http.Request) string {
	u, _ := r.Context().Value(ctxKey{}).(string)
	return u
}
