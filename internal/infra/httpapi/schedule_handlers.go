package httpapi

import (
	"encoding/json"
	"net/http"

	"medicine_reminder/internal/app"
)

type scheduleRequest struct {
	MedicineID int64    `json:"medicineId"`
	Times      []string `json:"times"`
	Frequency  string   `json:"frequency"`
	Days       []string `json:"days"`
}

type scheduleResponse struct {
	ID           int64    `json:"id"`
	MedicineID   int64    `json:"medicineId"`
	MedicineName string   `json:"medicineName,omitempty"`
	Dosage       string   `json:"dosage,omitempty"`
	Times        []string `json:"times"`
	Frequency    string   `json:"frequency"`
	Days         []string `json:"days,omitempty"`
}

func (a *API) createSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sc, err := a.Schedules.Create(r.Context(), userID(r), req.MedicineID, app.ScheduleInput{
		Times:     req.Times,
		Frequency: req.Frequency,
		Days:      req.Days,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, scheduleResponse{
		ID:         sc.ID,
		MedicineID: sc.MedicineID,
		Times:      sc.Times,
		Frequency:  string(sc.Frequency),
		Days:       sc.Days,
	})
}

// replaceSchedule is the upsert edit path: PUT /api/schedules/medicine/{medicineID}
// fully overwrites (or creates) the medicine's schedule.
func (a *API) replaceSchedule(w http.ResponseWriter, r *http.Request) {
	medicineID, err := pathID(r, "medicineID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid medicine id")
		return
	}
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sc, err := a.Schedules.Replace(r.Context(), userID(r), medicineID, app.ScheduleInput{
		Times:     req.Times,
		Frequency: req.Frequency,
		Days:      req.Days,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scheduleResponse{
		ID:         sc.ID,
		MedicineID: sc.MedicineID,
		Times:      sc.Times,
		Frequency:  string(sc.Frequency),
		Days:       sc.Days,
	})
}

func (a *API) listSchedules(w http.ResponseWriter, r *http.Request) {
	scheds, err := a.Schedules.List(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]scheduleResponse, 0, len(scheds))
	for _, rs := range scheds {
		out = append(out, scheduleResponse{
			ID:           rs.Schedule.ID,
			MedicineID:   rs.Schedule.MedicineID,
			MedicineName: rs.MedicineName,
			Dosage:       rs.Dosage,
			Times:        rs.Schedule.Times,
			Frequency:    string(rs.Schedule.Frequency),
			Days:         rs.Schedule.Days,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) deleteSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid schedule id")
		return
	}
	if err := a.Schedules.Delete(r.Context(), userID(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Schedule deleted"})
}
