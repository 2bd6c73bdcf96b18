package httpapi

import (
	"net/http"

	"medicine_reminder/internal/app"
)

type timelineSlotPayload struct {
	Time         string `json:"time"`
	MedicineID   int64  `json:"medicineId"`
	MedicineName string `json:"medicineName"`
	Dosage       string `json:"dosage"`
	Status       string `json:"status"`
}

func toTimelinePayload(slots []app.TimelineSlot) []timelineSlotPayload {
	out := make([]timelineSlotPayload, 0, len(slots))
	for _, s := range slots {
		out = append(out, timelineSlotPayload{
			Time:         s.Time,
			MedicineID:   s.MedicineID,
			MedicineName: s.MedicineName,
			Dosage:       s.Dosage,
			Status:       string(s.Status),
		})
	}
	return out
}

func (a *API) todayTimeline(w http.ResponseWriter, r *http.Request) {
	slots, err := a.Adherence.TodayTimeline(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	skipped, err := a.Adherence.SkippedToday(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"timeline": toTimelinePayload(slots),
		"skipped":  toTimelinePayload(skipped),
	})
}

func (a *API) nextDose(w http.ResponseWriter, r *http.Request) {
	next, ok, err := a.Adherence.NextDose(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := map[string]any{"hasNext": ok}
	if ok {
		resp["time"] = next
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) weekdayAdherence(w http.ResponseWriter, r *http.Request) {
	counts, err := a.Adherence.WeekdayAdherence(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	type bucket struct {
		Day   string `json:"day"`
		Taken int    `json:"taken"`
	}
	out := make([]bucket, 0, len(counts))
	for _, c := range counts {
		out = append(out, bucket{Day: c.Day, Taken: c.Taken})
	}
	writeJSON(w, http.StatusOK, out)
}
