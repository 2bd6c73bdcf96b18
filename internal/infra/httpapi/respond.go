package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"medicine_reminder/internal/app"
	idb "medicine_reminder/internal/infra/database"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// authenticatedUser extracts the opaque authenticated-user identifier the
// (external) auth layer forwards in X-User-ID. Authentication itself is out
// of scope here.
func authenticatedUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-User-ID")
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			writeError(w, http.StatusUnauthorized, "missing or invalid X-User-ID header")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, id)))
	})
}

func userID(r *http.Request) int64 {
	id, _ := r.Context().Value(userIDKey).(int64)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeServiceError maps the application error taxonomy onto status codes:
// validation 400, not-found 404, duplicate slot 409, everything else 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, idb.ErrDuplicateIntake):
		writeError(w, http.StatusConflict, "Already marked")
	case errors.Is(err, idb.ErrDuplicateSchedule):
		writeError(w, http.StatusConflict, "Medicine already has a schedule")
	case errors.Is(err, idb.ErrMedicineNotFound):
		writeError(w, http.StatusNotFound, "Medicine not found")
	case errors.Is(err, idb.ErrScheduleNotFound):
		writeError(w, http.StatusNotFound, "Schedule not found")
	case errors.Is(err, idb.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, app.ErrInvalidStatus),
		errors.Is(err, app.ErrBadTime),
		errors.Is(err, app.ErrEmptyTimes),
		errors.Is(err, app.ErrBadFrequency),
		errors.Is(err, app.ErrCustomNeedsDays),
		errors.Is(err, app.ErrBadWeekday),
		errors.Is(err, app.ErrMedicineNameRequired),
		errors.Is(err, app.ErrMedicineStartRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
