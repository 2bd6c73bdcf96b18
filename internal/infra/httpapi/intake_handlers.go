package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"medicine_reminder/internal/domain/intake"
)

type markIntakeRequest struct {
	MedicineID int64  `json:"medicineId"`
	Date       string `json:"date"` // YYYY-MM-DD
	Time       string `json:"time"` // HH:MM
	Status     string `json:"status"`
}

type intakeLogResponse struct {
	ID         int64  `json:"id"`
	MedicineID int64  `json:"medicineId"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Status     string `json:"status"`
}

func toIntakeResponse(l *intake.Log) intakeLogResponse {
	return intakeLogResponse{
		ID:         l.ID,
		MedicineID: l.MedicineID,
		Date:       l.Date.Format("2006-01-02"),
		Time:       l.Time,
		Status:     string(l.Status),
	}
}

func (a *API) markIntake(w http.ResponseWriter, r *http.Request) {
	var req markIntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.MedicineID == 0 || req.Date == "" || req.Time == "" || req.Status == "" {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	l, err := a.Intake.Mark(r.Context(), userID(r), req.MedicineID, date, req.Time, intake.Status(req.Status))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toIntakeResponse(l))
}

func (a *API) todayIntake(w http.ResponseWriter, r *http.Request) {
	logs, err := a.Intake.Today(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toIntakeResponses(logs))
}

func (a *API) intakeHistory(w http.ResponseWriter, r *http.Request) {
	logs, err := a.Intake.History(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toIntakeResponses(logs))
}

func toIntakeResponses(logs []*intake.Log) []intakeLogResponse {
	out := make([]intakeLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, toIntakeResponse(l))
	}
	return out
}

type monthlyReportResponse struct {
	Month          int                     `json:"month"`
	Year           int                     `json:"year"`
	TotalMedicines int                     `json:"totalMedicines"`
	History        []medicineReportPayload `json:"history"`
}

type medicineReportPayload struct {
	MedicineID   int64               `json:"medicineId"`
	Name         string              `json:"name"`
	Dosage       string              `json:"dosage"`
	Instructions string              `json:"instructions,omitempty"`
	Times        []string            `json:"times"`
	Frequency    string              `json:"frequency,omitempty"`
	Days         []string            `json:"days,omitempty"`
	Logs         []intakeLogResponse `json:"logs"`
}

// monthlyReport serves GET /api/intake/monthly?month=3&year=2024; both params
// default to the current month in the reference zone when absent.
func (a *API) monthlyReport(w http.ResponseWriter, r *http.Request) {
	curMonth, curYear := a.Adherence.CurrentMonth()
	month := int(curMonth)
	year := curYear
	if v := r.URL.Query().Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			writeError(w, http.StatusBadRequest, "month must be 1..12")
			return
		}
		month = m
	}
	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = y
	}

	report, err := a.Adherence.Report(r.Context(), userID(r), time.Month(month), year)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := monthlyReportResponse{
		Month:          int(report.Month),
		Year:           report.Year,
		TotalMedicines: len(report.Medicines),
		History:        make([]medicineReportPayload, 0, len(report.Medicines)),
	}
	for _, mr := range report.Medicines {
		entry := medicineReportPayload{
			MedicineID:   mr.MedicineID,
			Name:         mr.Name,
			Dosage:       mr.Dosage,
			Instructions: mr.Instructions,
			Times:        mr.Times,
			Frequency:    string(mr.Frequency),
			Days:         mr.Days,
			Logs:         toIntakeResponses(mr.Logs),
		}
		if entry.Times == nil {
			entry.Times = []string{}
		}
		resp.History = append(resp.History, entry)
	}
	writeJSON(w, http.StatusOK, resp)
}
