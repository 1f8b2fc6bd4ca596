package focus

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"momentum-backend/internal/analytics"
	"momentum-backend/internal/auth"
	"momentum-backend/internal/dates"
)

// DayStat is one pre-aggregated row of GET /focus: all sessions of one
// calendar day rolled up.
type DayStat struct {
	Date         string `json:"date"`
	TotalMinutes int    `json:"totalMinutes"`
	Sessions     int    `json:"sessions"`
}

type Session struct {
	ID       int    `json:"id"`
	Duration int    `json:"duration"`
	Mode     string `json:"mode"`
	Date     string `json:"date"`
}

// LogSessionHandler records a completed timer session. Sessions are immutable
// once logged; there is no update or delete.
func LogSessionHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			Duration int    `json:"duration"`
			Mode     string `json:"mode"`
			Date     string `json:"date"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		if body.Duration <= 0 {
			http.Error(w, "duration must be positive", http.StatusBadRequest)
			return
		}
		if !dates.Valid(body.Date) {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}
		switch body.Mode {
		case "":
			body.Mode = "focus"
		case "focus", "break":
		default:
			http.Error(w, "invalid mode", http.StatusBadRequest)
			return
		}

		var s Session
		s.Duration = body.Duration
		s.Mode = body.Mode
		s.Date = body.Date
		err := dbx.QueryRow(`
			INSERT INTO focus_logs (user_id, duration, mode, date)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, uid, body.Duration, body.Mode, body.Date).Scan(&s.ID)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}

		{
			env := analytics.FromRequest(r)
			env.UserID = uid

			props := map[string]any{
				"session_id": s.ID,
				"duration":   s.Duration,
				"mode":       s.Mode,
				"date":       s.Date,
			}
			_ = analytics.Log(r.Context(), dbx, env, "focus_logged", props, analytics.SourceEventKeyFromRequest(r))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(s)
	}
}

// GetStatsHandler returns per-date aggregates, newest first.
func GetStatsHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		rows, err := dbx.Query(`
			SELECT date, SUM(duration), COUNT(*)
			FROM focus_logs
			WHERE user_id = $1 AND mode = 'focus'
			GROUP BY date
			ORDER BY date DESC
		`, uid)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}
		defer rows.Close()

		result := []DayStat{}
		for rows.Next() {
			var s DayStat
			if err := rows.Scan(&s.Date, &s.TotalMinutes, &s.Sessions); err != nil {
				http.Error(w, "scan error: "+err.Error(), 500)
				return
			}
			result = append(result, s)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	}
}

// -------------------------------
// SOUND LIBRARY
// -------------------------------

type Sound struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

func GetSoundsHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		rows, err := dbx.Query(`
			SELECT id, label, url, type
			FROM sounds
			WHERE user_id = $1
			ORDER BY created_at DESC
		`, uid)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}
		defer rows.Close()

		result := []Sound{}
		for rows.Next() {
			var s Sound
			if err := rows.Scan(&s.ID, &s.Label, &s.URL, &s.Type); err != nil {
				http.Error(w, "scan error: "+err.Error(), 500)
				return
			}
			result = append(result, s)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	}
}

func AddSoundHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			Label string `json:"label"`
			URL   string `json:"url"`
			Type  string `json:"type"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		if body.Label == "" || body.URL == "" {
			http.Error(w, "label and url required", http.StatusBadRequest)
			return
		}
		if body.Type == "" {
			body.Type = "youtube"
		}

		s := Sound{Label: body.Label, URL: body.URL, Type: body.Type}
		err := dbx.QueryRow(`
			INSERT INTO sounds (user_id, label, url, type)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, uid, body.Label, body.URL, body.Type).Scan(&s.ID)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(s)
	}
}

func DeleteSoundHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := strconv.Atoi(r.PathValue("id"))
		if err != nil || id == 0 {
			http.Error(w, "invalid sound id", http.StatusBadRequest)
			return
		}

		res, err := dbx.Exec(`DELETE FROM sounds WHERE id=$1 AND user_id=$2`, id, uid)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			http.Error(w, "sound not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"id": id})
	}
}
