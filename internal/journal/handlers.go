package journal

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"momentum-backend/internal/analytics"
	"momentum-backend/internal/auth"
	"momentum-backend/internal/dates"
)

func GetJournalsHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		rows, err := dbx.Query(`
			SELECT id, date, type, title, content, created_at, updated_at
			FROM journals
			WHERE user_id = $1
			ORDER BY date DESC, created_at DESC
		`, uid)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}
		defer rows.Close()

		result := []Entry{}
		for rows.Next() {
			var e Entry
			if err := rows.Scan(&e.ID, &e.Date, &e.Type, &e.Title, &e.Content, &e.CreatedAt, &e.UpdatedAt); err != nil {
				http.Error(w, "scan error: "+err.Error(), 500)
				return
			}
			result = append(result, e)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	}
}

// CreateJournalHandler writes one entry. At most one "daily" entry exists per
// date per user: a second daily save for the same date updates the stored row
// instead of failing or duplicating.
func CreateJournalHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			Date    string `json:"date"`
			Type    string `json:"type"`
			Title   string `json:"title"`
			Content string `json:"content"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		if strings.TrimSpace(body.Content) == "" {
			http.Error(w, "content is required", http.StatusBadRequest)
			return
		}
		if !dates.Valid(body.Date) {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}
		if body.Type == "" {
			body.Type = "daily"
		}
		if body.Title == "" {
			body.Title = "Untitled Entry"
		}

		var id int
		var err error
		if body.Type == "daily" {
			err = dbx.QueryRow(`
				INSERT INTO journals (user_id, date, type, title, content)
				VALUES ($1, $2, 'daily', $3, $4)
				ON CONFLICT (user_id, date) WHERE type = 'daily'
				DO UPDATE SET title = EXCLUDED.title, content = EXCLUDED.content, updated_at = now()
				RETURNING id
			`, uid, body.Date, body.Title, body.Content).Scan(&id)
		} else {
			err = dbx.QueryRow(`
				INSERT INTO journals (user_id, date, type, title, content)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id
			`, uid, body.Date, body.Type, body.Title, body.Content).Scan(&id)
		}
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}

		full, err := fetchEntry(dbx, uid, id)
		if err != nil {
			http.Error(w, "fetch error: "+err.Error(), 500)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(full)
	}
}

func UpdateJournalHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := strconv.Atoi(r.PathValue("id"))
		if err != nil || id == 0 {
			http.Error(w, "invalid entry id", http.StatusBadRequest)
			return
		}

		prev, err := fetchEntry(dbx, uid, id)
		if err != nil {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}

		var body struct {
			Date    *string `json:"date"`
			Type    *string `json:"type"`
			Title   *string `json:"title"`
			Content *string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		next := prev
		if body.Date != nil {
			if !dates.Valid(*body.Date) {
				http.Error(w, "invalid date", http.StatusBadRequest)
				return
			}
			next.Date = *body.Date
		}
		if body.Type != nil && *body.Type != "" {
			next.Type = *body.Type
		}
		if body.Title != nil && *body.Title != "" {
			next.Title = *body.Title
		}
		if body.Content != nil {
			if strings.TrimSpace(*body.Content) == "" {
				http.Error(w, "content is required", http.StatusBadRequest)
				return
			}
			next.Content = *body.Content
		}

		res, err := dbx.Exec(`
			UPDATE journals
			SET date=$1, type=$2, title=$3, content=$4, updated_at=now()
			WHERE id=$5 AND user_id=$6
		`, next.Date, next.Type, next.Title, next.Content, id, uid)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}

		full, err := fetchEntry(dbx, uid, id)
		if err != nil {
			http.Error(w, "fetch error: "+err.Error(), 500)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(full)
	}
}

func DeleteJournalHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := strconv.Atoi(r.PathValue("id"))
		if err != nil || id == 0 {
			http.Error(w, "invalid entry id", http.StatusBadRequest)
			return
		}

		res, err := dbx.Exec(`DELETE FROM journals WHERE id=$1 AND user_id=$2`, id, uid)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"id": id})
	}
}

// ImportEntry is one row of a bulk import payload.
type ImportEntry struct {
	Date    string `json:"date"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Usable reports whether an imported row carries enough to store.
// Unusable rows are skipped, never abort the batch.
func (e ImportEntry) Usable() bool {
	return strings.TrimSpace(e.Content) != "" && dates.Valid(e.Date)
}

// ImportJournalsHandler inserts as many rows as possible and reports how many
// made it. Entries import as type "daily" and upsert on their date.
func ImportJournalsHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var entries []ImportEntry
		if err := json.NewDecoder(r.Body).Decode(&entries); err != nil || len(entries) == 0 {
			http.Error(w, "no entries provided", http.StatusBadRequest)
			return
		}

		batchID := uuid.NewString()
		imported := 0
		for _, e := range entries {
			if !e.Usable() {
				continue
			}
			title := e.Title
			if title == "" {
				title = "Untitled Entry"
			}
			_, err := dbx.Exec(`
				INSERT INTO journals (user_id, date, type, title, content)
				VALUES ($1, $2, 'daily', $3, $4)
				ON CONFLICT (user_id, date) WHERE type = 'daily'
				DO UPDATE SET title = EXCLUDED.title, content = EXCLUDED.content, updated_at = now()
			`, uid, e.Date, title, e.Content)
			if err != nil {
				log.Printf("[WARN] journal import row failed batch=%s date=%s: %v", batchID, e.Date, err)
				continue
			}
			imported++
		}

		{
			env := analytics.FromRequest(r)
			env.UserID = uid

			props := map[string]any{
				"batch_id": batchID,
				"received": len(entries),
				"imported": imported,
			}
			_ = analytics.Log(r.Context(), dbx, env, "journal_imported", props, analytics.SourceEventKeyFromRequest(r))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"imported": imported,
			"message":  "Successfully imported " + strconv.Itoa(imported) + " entries",
		})
	}
}

func fetchEntry(dbx *sql.DB, uid, id int) (Entry, error) {
	var e Entry
	err := dbx.QueryRow(`
		SELECT id, date, type, title, content, created_at, updated_at
		FROM journals
		WHERE user_id=$1 AND id=$2
	`, uid, id).Scan(&e.ID, &e.Date, &e.Type, &e.Title, &e.Content, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}
