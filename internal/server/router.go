package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/vsitelecom/fieldops/internal/assistant"
	"github.com/vsitelecom/fieldops/internal/handlers"
	"github.com/vsitelecom/fieldops/internal/httpx"
	"github.com/vsitelecom/fieldops/internal/lookup"
	"github.com/vsitelecom/fieldops/internal/services"
	"github.com/vsitelecom/fieldops/internal/store"
	appsync "github.com/vsitelecom/fieldops/internal/sync"
)

// Deps carries everything the routes need. The router owns no state of
// its own.
type Deps struct {
	Coord  *appsync.Coordinator
	Store  *store.Store
	AI     *assistant.Client
	Lookup *lookup.Client
	Log    zerolog.Logger
}

// New constructs the root http.Handler with all routes and middlewares applied.
func New(d Deps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	sh := handlers.NewStatusHandler(d.Coord)
	mux.HandleFunc("/status", sh.Status)
	mux.Handle("/sync", post(sh.Sync))

	ch := handlers.NewClientHandler(d.Coord)
	mux.Handle("/clients", listSave(ch.List, ch.Save))
	mux.Handle("/clients/delete", post(ch.Delete))

	cat := handlers.NewCatalogHandler(d.Coord)
	mux.Handle("/products", listSave(cat.ListProducts, cat.SaveProduct))
	mux.Handle("/products/delete", post(cat.DeleteProduct))
	mux.Handle("/services", listSave(cat.ListServices, cat.SaveService))
	mux.Handle("/services/delete", post(cat.DeleteService))

	qh := handlers.NewQuoteHandler(d.Coord)
	mux.Handle("/quotes", listSave(qh.List, qh.Save))
	mux.Handle("/quotes/status", post(qh.Status))
	mux.Handle("/quotes/invoice", post(qh.Invoice))
	mux.Handle("/quotes/report", post(qh.Report))
	mux.Handle("/quotes/delete", post(qh.Delete))
	mux.HandleFunc("/quotes/pdf", qh.PDF)
	mux.HandleFunc("/quotes/report-pdf", qh.ReportPDF)

	ah := handlers.NewAppointmentHandler(d.Coord)
	mux.Handle("/appointments", listSave(ah.List, ah.Schedule))
	mux.Handle("/appointments/complete", post(ah.Complete))
	mux.Handle("/appointments/delete", post(ah.Delete))

	eh := handlers.NewExpenseHandler(d.Coord)
	mux.Handle("/expenses", listSave(eh.List, eh.Save))
	mux.Handle("/expenses/delete", post(eh.Delete))

	co := handlers.NewCompanyHandler(d.Coord)
	mux.Handle("/company", listSave(co.Get, co.Save))

	setup := handlers.NewSetupHandler(d.Store)
	mux.Handle("/setup", post(setup.Save))
	mux.Handle("/setup/provision", post(setup.Provision))

	ai := handlers.NewAssistantHandler(d.AI, d.Coord)
	mux.Handle("/assistant/ask", post(ai.Ask))
	mux.Handle("/assistant/distance", post(ai.Distance))
	mux.Handle("/assistant/notes", post(ai.Notes))

	lk := handlers.NewLookupHandler(d.Lookup)
	mux.HandleFunc("/lookup/cep", lk.CEP)
	mux.HandleFunc("/lookup/cnpj", lk.CNPJ)

	fin := handlers.NewFinanceHandler(d.Coord, services.NewFinanceService())
	mux.HandleFunc("/finance/summary", fin.Summary)

	return withRecover(withLogging(d.Log, mux))
}

// listSave routes GET to the list handler and POST to the save handler.
func listSave(list, save http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			list(w, r)
		case http.MethodPost:
			save(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
}

func post(h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		h(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func withLogging(log zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
