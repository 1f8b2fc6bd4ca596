package tasks

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"momentum-backend/internal/analytics"
	"momentum-backend/internal/auth"
	"momentum-backend/internal/dates"
)

const taskColumns = `
	id, text, completed,
	COALESCE(date,''), COALESCE(time,''),
	category, custom_list,
	COALESCE(difficulty,''), COALESCE(link,''),
	created_at
`

func scanTask(row interface{ Scan(...any) error }) (Task, error) {
	var (
		t          Task
		customList sql.NullString
	)
	err := row.Scan(
		&t.ID, &t.Text, &t.Completed,
		&t.Date, &t.Time,
		&t.Category, &customList,
		&t.Difficulty, &t.Link,
		&t.CreatedAt,
	)
	if customList.Valid {
		t.CustomList = &customList.String
	}
	return t, err
}

func fetchTask(dbx *sql.DB, uid, taskID int) (Task, error) {
	row := dbx.QueryRow(`
		SELECT `+taskColumns+`
		FROM tasks
		WHERE user_id=$1 AND id=$2
	`, uid, taskID)
	return scanTask(row)
}

// -------------------------------
// HANDLERS
// -------------------------------

func GetTasksHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		rows, err := dbx.Query(`
			SELECT `+taskColumns+`
			FROM tasks
			WHERE user_id = $1
			ORDER BY date ASC, time ASC, id ASC
		`, uid)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}
		defer rows.Close()

		result := []Task{}
		for rows.Next() {
			t, err := scanTask(rows)
			if err != nil {
				http.Error(w, "scan error: "+err.Error(), 500)
				return
			}
			result = append(result, t)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	}
}

func CreateTaskHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			Text       string  `json:"text"`
			Date       string  `json:"date"`
			Time       string  `json:"time"`
			Category   string  `json:"category"`
			CustomList *string `json:"customList"`
			Difficulty string  `json:"difficulty"`
			Link       string  `json:"link"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		text := strings.TrimSpace(body.Text)
		if text == "" {
			http.Error(w, "text is required", http.StatusBadRequest)
			return
		}
		if body.Date != "" && !dates.Valid(body.Date) {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}
		if body.Time != "" && !dates.ValidClock(body.Time) {
			http.Error(w, "invalid time", http.StatusBadRequest)
			return
		}
		if body.Category == "" {
			body.Category = "work"
		}
		if !ValidCategory(body.Category) {
			http.Error(w, "invalid category", http.StatusBadRequest)
			return
		}

		var taskID int
		err := dbx.QueryRow(`
			INSERT INTO tasks (user_id, text, date, time, category, custom_list, difficulty, link)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`, uid, text, body.Date, body.Time, body.Category, body.CustomList, body.Difficulty, body.Link).Scan(&taskID)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}

		// analytics: task_created
		{
			env := analytics.FromRequest(r)
			env.UserID = uid

			props := map[string]any{
				"task_id":         taskID,
				"text_len":        len(text),
				"has_date":        body.Date != "",
				"has_time":        body.Time != "",
				"category":        body.Category,
				"has_custom_list": body.CustomList != nil,
			}
			_ = analytics.Log(r.Context(), dbx, env, "task_created", props, analytics.SourceEventKeyFromRequest(r))
		}

		full, err := fetchTask(dbx, uid, taskID)
		if err != nil {
			http.Error(w, "fetch error: "+err.Error(), 500)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(full)
	}
}

func UpdateTaskHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		taskID, err := strconv.Atoi(r.PathValue("id"))
		if err != nil || taskID == 0 {
			http.Error(w, "invalid task id", http.StatusBadRequest)
			return
		}

		prev, err := fetchTask(dbx, uid, taskID)
		if err != nil {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}

		var body struct {
			Text       *string `json:"text"`
			Completed  *bool   `json:"completed"`
			Date       *string `json:"date"`
			Time       *string `json:"time"`
			Category   *string `json:"category"`
			CustomList *string `json:"customList"`
			Difficulty *string `json:"difficulty"`
			Link       *string `json:"link"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		next := prev
		if body.Text != nil {
			t := strings.TrimSpace(*body.Text)
			if t == "" {
				http.Error(w, "text is required", http.StatusBadRequest)
				return
			}
			next.Text = t
		}
		if body.Completed != nil {
			next.Completed = *body.Completed
		}
		if body.Date != nil {
			if *body.Date != "" && !dates.Valid(*body.Date) {
				http.Error(w, "invalid date", http.StatusBadRequest)
				return
			}
			next.Date = *body.Date
		}
		if body.Time != nil {
			if *body.Time != "" && !dates.ValidClock(*body.Time) {
				http.Error(w, "invalid time", http.StatusBadRequest)
				return
			}
			next.Time = *body.Time
		}
		if body.Category != nil {
			if !ValidCategory(*body.Category) {
				http.Error(w, "invalid category", http.StatusBadRequest)
				return
			}
			next.Category = *body.Category
		}
		if body.CustomList != nil {
			next.CustomList = body.CustomList
		}
		if body.Difficulty != nil {
			next.Difficulty = *body.Difficulty
		}
		if body.Link != nil {
			next.Link = *body.Link
		}

		res, err := dbx.Exec(`
			UPDATE tasks
			SET text=$1, completed=$2, date=$3, time=$4, category=$5,
			    custom_list=$6, difficulty=$7, link=$8
			WHERE id=$9 AND user_id=$10
		`, next.Text, next.Completed, next.Date, next.Time, next.Category,
			next.CustomList, next.Difficulty, next.Link, taskID, uid)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}

		// analytics: task_completed / task_uncompleted
		if prev.Completed != next.Completed {
			env := analytics.FromRequest(r)
			env.UserID = uid

			name := "task_completed"
			if !next.Completed {
				name = "task_uncompleted"
			}
			props := map[string]any{
				"task_id":  taskID,
				"category": next.Category,
				"date":     next.Date,
			}
			_ = analytics.Log(r.Context(), dbx, env, name, props, analytics.SourceEventKeyFromRequest(r))
		}

		full, err := fetchTask(dbx, uid, taskID)
		if err != nil {
			http.Error(w, "fetch error: "+err.Error(), 500)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(full)
	}
}

func DeleteTaskHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		taskID, err := strconv.Atoi(r.PathValue("id"))
		if err != nil || taskID == 0 {
			http.Error(w, "invalid task id", http.StatusBadRequest)
			return
		}

		res, err := dbx.Exec(`DELETE FROM tasks WHERE id=$1 AND user_id=$2`, taskID, uid)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"id": taskID})
	}
}

// DeleteCustomListHandler clears a custom list tag from every task carrying it.
// The tasks themselves survive.
func DeleteCustomListHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		listName := r.PathValue("listName")
		if strings.TrimSpace(listName) == "" {
			http.Error(w, "list name required", http.StatusBadRequest)
			return
		}

		_, err := dbx.Exec(`
			UPDATE tasks SET custom_list = NULL
			WHERE user_id=$1 AND custom_list=$2
		`, uid, listName)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "list " + listName + " removed"})
	}
}

// CopyTaskToTodayHandler duplicates a task onto today's date. The copy is a
// real row; the response carries the stored id.
func CopyTaskToTodayHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		taskID, err := strconv.Atoi(r.PathValue("id"))
		if err != nil || taskID == 0 {
			http.Error(w, "invalid task id", http.StatusBadRequest)
			return
		}

		src, err := fetchTask(dbx, uid, taskID)
		if err != nil {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}

		var newID int
		err = dbx.QueryRow(`
			INSERT INTO tasks (user_id, text, date, time, category, custom_list, difficulty, link)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`, uid, src.Text, dates.Today(), src.Time, src.Category, src.CustomList, src.Difficulty, src.Link).Scan(&newID)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}

		full, err := fetchTask(dbx, uid, newID)
		if err != nil {
			http.Error(w, "fetch error: "+err.Error(), 500)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(full)
	}
}
