package heatmap

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/lib/pq"

	"momentum-backend/internal/auth"
)

// Handler serves GET /heatmap?mode=... : the owner's records aggregated and
// laid out as 12 months of cells. Rows that fail to scan are skipped, the
// grid still renders.
func Handler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		mode, err := ParseViewMode(r.URL.Query().Get("mode"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		today := time.Now()
		recs := loadRecords(dbx, uid, mode, WindowStart(today))
		summary := Aggregate(recs, mode)
		months := BuildGrid(summary.CountsByDate, mode, today)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"mode":   mode.String(),
			"total":  summary.Total,
			"label":  summary.Label,
			"months": months,
		})
	}
}

// loadRecords pulls only what the mode needs, limited to the grid's
// 12-month window so stale history never skews the totals.
func loadRecords(dbx *sql.DB, uid int, mode ViewMode, since string) Records {
	var recs Records

	needTasks := mode == Overview || mode == Tasks
	needJournals := mode == Overview || mode == Journal
	needFocus := mode == Overview || mode == Focus
	_, habitOnly := mode.HabitID()
	needHabits := mode == Overview || habitOnly

	if needTasks {
		rows, err := dbx.Query(`
			SELECT COALESCE(date,''), completed
			FROM tasks
			WHERE user_id=$1 AND date >= $2
		`, uid, since)
		if err != nil {
			log.Printf("[WARN] heatmap tasks query failed: %v", err)
		} else {
			defer rows.Close()
			for rows.Next() {
				var t TaskRecord
				if err := rows.Scan(&t.Date, &t.Completed); err != nil {
					continue
				}
				recs.Tasks = append(recs.Tasks, t)
			}
		}
	}

	if needJournals {
		rows, err := dbx.Query(`
			SELECT date FROM journals WHERE user_id=$1 AND date >= $2
		`, uid, since)
		if err != nil {
			log.Printf("[WARN] heatmap journals query failed: %v", err)
		} else {
			defer rows.Close()
			for rows.Next() {
				var j JournalRecord
				if err := rows.Scan(&j.Date); err != nil {
					continue
				}
				recs.Journals = append(recs.Journals, j)
			}
		}
	}

	if needFocus {
		rows, err := dbx.Query(`
			SELECT date, SUM(duration)
			FROM focus_logs
			WHERE user_id=$1 AND mode='focus' AND date >= $2
			GROUP BY date
		`, uid, since)
		if err != nil {
			log.Printf("[WARN] heatmap focus query failed: %v", err)
		} else {
			defer rows.Close()
			for rows.Next() {
				var f FocusDay
				if err := rows.Scan(&f.Date, &f.TotalMinutes); err != nil {
					continue
				}
				recs.Focus = append(recs.Focus, f)
			}
		}
	}

	if needHabits {
		rows, err := dbx.Query(`
			SELECT id, completed_dates FROM habits WHERE user_id=$1
		`, uid)
		if err != nil {
			log.Printf("[WARN] heatmap habits query failed: %v", err)
		} else {
			defer rows.Close()
			for rows.Next() {
				var h HabitRecord
				if err := rows.Scan(&h.ID, pq.Array(&h.CompletedDates)); err != nil {
					continue
				}
				// completed_dates is an array column, so the window cut
				// happens here rather than in SQL
				kept := h.CompletedDates[:0]
				for _, d := range h.CompletedDates {
					if d >= since {
						kept = append(kept, d)
					}
				}
				h.CompletedDates = kept
				recs.Habits = append(recs.Habits, h)
			}
		}
	}

	return recs
}
