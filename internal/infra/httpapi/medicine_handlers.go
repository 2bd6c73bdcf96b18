package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"medicine_reminder/internal/app"
	"medicine_reminder/internal/domain/medicine"

	"github.com/go-chi/chi/v5"
)

type medicineRequest struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	Dosage          string `json:"dosage"`
	QuantityPerDose int    `json:"quantityPerDose"`
	Instructions    string `json:"instructions"`
	StartDate       string `json:"startDate"` // YYYY-MM-DD
	EndDate         string `json:"endDate"`   // YYYY-MM-DD, optional
}

type medicineResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	Dosage          string `json:"dosage"`
	QuantityPerDose int    `json:"quantityPerDose"`
	Instructions    string `json:"instructions,omitempty"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate,omitempty"`
	IsActive        bool   `json:"isActive"`
}

func toMedicineResponse(m *medicine.Medicine) medicineResponse {
	resp := medicineResponse{
		ID:              m.ID,
		Name:            m.Name,
		Type:            string(m.Type),
		Dosage:          m.Dosage,
		QuantityPerDose: m.QuantityPerDose,
		Instructions:    m.Instructions.String,
		StartDate:       m.StartDate.Format("2006-01-02"),
		IsActive:        m.IsActive,
	}
	if m.EndDate.Valid {
		resp.EndDate = m.EndDate.Time.Format("2006-01-02")
	}
	return resp
}

func (req medicineRequest) toInput() (app.MedicineInput, error) {
	in := app.MedicineInput{
		Name:            req.Name,
		Type:            req.Type,
		Dosage:          req.Dosage,
		QuantityPerDose: req.QuantityPerDose,
		Instructions:    req.Instructions,
	}
	if req.StartDate != "" {
		d, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return in, err
		}
		in.StartDate = d
	}
	if req.EndDate != "" {
		d, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return in, err
		}
		in.EndDate = &d
	}
	return in, nil
}

func (a *API) createMedicine(w http.ResponseWriter, r *http.Request) {
	var req medicineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "dates must be YYYY-MM-DD")
		return
	}

	m, err := a.Medicines.Create(r.Context(), userID(r), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMedicineResponse(m))
}

func (a *API) listMedicines(w http.ResponseWriter, r *http.Request) {
	meds, err := a.Medicines.List(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]medicineResponse, 0, len(meds))
	for _, m := range meds {
		out = append(out, toMedicineResponse(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) getMedicine(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid medicine id")
		return
	}
	m, err := a.Medicines.Get(r.Context(), userID(r), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMedicineResponse(m))
}

func (a *API) updateMedicine(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid medicine id")
		return
	}
	var req medicineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "dates must be YYYY-MM-DD")
		return
	}

	m, err := a.Medicines.Update(r.Context(), userID(r), id, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMedicineResponse(m))
}

func (a *API) deleteMedicine(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid medicine id")
		return
	}
	if err := a.Medicines.Delete(r.Context(), userID(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Medicine and related schedules/logs deleted"})
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
