package habits

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"momentum-backend/internal/analytics"
	"momentum-backend/internal/auth"
	"momentum-backend/internal/dates"
)

type Habit struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Color          string   `json:"color"`
	CompletedDates []string `json:"completedDates"`
}

func GetHabitsHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		rows, err := dbx.Query(`
			SELECT id, name, color, completed_dates
			FROM habits
			WHERE user_id = $1
			ORDER BY id ASC
		`, uid)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}
		defer rows.Close()

		result := []Habit{}
		for rows.Next() {
			var h Habit
			if err := rows.Scan(&h.ID, &h.Name, &h.Color, pq.Array(&h.CompletedDates)); err != nil {
				http.Error(w, "scan error: "+err.Error(), 500)
				return
			}
			if h.CompletedDates == nil {
				h.CompletedDates = []string{}
			}
			result = append(result, h)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	}
}

func CreateHabitHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			Name  string `json:"name"`
			Color string `json:"color"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		name := strings.TrimSpace(body.Name)
		if name == "" {
			http.Error(w, ErrBlankName.Error(), http.StatusBadRequest)
			return
		}
		if body.Color == "" {
			body.Color = "emerald"
		}

		h := Habit{Name: name, Color: body.Color, CompletedDates: []string{}}
		err := dbx.QueryRow(`
			INSERT INTO habits (user_id, name, color)
			VALUES ($1, $2, $3)
			RETURNING id
		`, uid, name, body.Color).Scan(&h.ID)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(h)
	}
}

// ToggleHabitHandler flips one date's completion membership. An omitted date
// means today. Future dates are rejected with 422 before anything mutates.
func ToggleHabitHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		habitID, err := strconv.Atoi(r.PathValue("id"))
		if err != nil || habitID == 0 {
			http.Error(w, "invalid habit id", http.StatusBadRequest)
			return
		}

		var body struct {
			Date string `json:"date"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Date == "" {
			body.Date = dates.Today()
		}

		var h Habit
		err = dbx.QueryRow(`
			SELECT id, name, color, completed_dates
			FROM habits
			WHERE id=$1 AND user_id=$2
		`, habitID, uid).Scan(&h.ID, &h.Name, &h.Color, pq.Array(&h.CompletedDates))
		if err != nil {
			http.Error(w, "habit not found", http.StatusNotFound)
			return
		}

		next, err := ToggleDates(h.CompletedDates, body.Date, dates.Today())
		if err != nil {
			var fde FutureDateError
			if errors.As(err, &fde) {
				http.Error(w, fde.Error(), http.StatusUnprocessableEntity)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		_, err = dbx.Exec(`
			UPDATE habits SET completed_dates=$1
			WHERE id=$2 AND user_id=$3
		`, pq.Array(next), habitID, uid)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}
		h.CompletedDates = next

		{
			env := analytics.FromRequest(r)
			env.UserID = uid

			props := map[string]any{
				"habit_id":  habitID,
				"date":      body.Date,
				"completed": slices.Contains(next, body.Date),
			}
			_ = analytics.Log(r.Context(), dbx, env, "habit_toggled", props, analytics.SourceEventKeyFromRequest(r))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(h)
	}
}

func DeleteHabitHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		habitID, err := strconv.Atoi(r.PathValue("id"))
		if err != nil || habitID == 0 {
			http.Error(w, "invalid habit id", http.StatusBadRequest)
			return
		}

		res, err := dbx.Exec(`DELETE FROM habits WHERE id=$1 AND user_id=$2`, habitID, uid)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			http.Error(w, "habit not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"id": habitID})
	}
}
