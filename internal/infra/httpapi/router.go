// Package httpapi is the thin HTTP presentation layer: request decoding,
// authenticated-user extraction and error mapping. All business rules live in
// internal/app.
package httpapi

import (
	"net/http"

	"medicine_reminder/internal/app"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// API bundles the services the handlers delegate to.
type API struct {
	Medicines *app.MedicineService
	Schedules *app.ScheduleService
	Intake    *app.IntakeService
	Adherence *app.AdherenceService
	Logger    *logrus.Logger
}

func NewRouter(api *API) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger(api.Logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "Medicine Reminder API running"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(authenticatedUser)

		r.Route("/medicines", func(r chi.Router) {
			r.Post("/", api.createMedicine)
			r.Get("/", api.listMedicines)
			r.Get("/{id}", api.getMedicine)
			r.Put("/{id}", api.updateMedicine)
			r.Delete("/{id}", api.deleteMedicine)
		})

		r.Route("/schedules", func(r chi.Router) {
			r.Post("/", api.createSchedule)
			r.Get("/", api.listSchedules)
			r.Put("/medicine/{medicineID}", api.replaceSchedule)
			r.Delete("/{id}", api.deleteSchedule)
		})

		r.Route("/intake", func(r chi.Router) {
			r.Post("/", api.markIntake)
			r.Get("/today", api.todayIntake)
			r.Get("/history", api.intakeHistory)
			r.Get("/monthly", api.monthlyReport)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/timeline", api.todayTimeline)
			r.Get("/next-dose", api.nextDose)
			r.Get("/adherence", api.weekdayAdherence)
		})
	})

	return r
}

func requestLogger(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"request_id": chimw.GetReqID(r.Context()),
			}).Debug("Request handled")
		})
	}
}
