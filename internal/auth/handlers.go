package auth

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

func RegisterHandler(dbx *sql.DB, secret []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		username := strings.TrimSpace(body.Username)
		if len(username) < 3 {
			http.Error(w, "username must be at least 3 characters", http.StatusBadRequest)
			return
		}
		if len(body.Password) < 8 {
			http.Error(w, "password must be 8 or more characters", http.StatusBadRequest)
			return
		}

		var exists int
		_ = dbx.QueryRow(`SELECT COUNT(*) FROM users WHERE username=$1`, username).Scan(&exists)
		if exists > 0 {
			http.Error(w, "username already exists", http.StatusBadRequest)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "hash error", http.StatusInternalServerError)
			return
		}

		var id int
		err = dbx.QueryRow(`
			INSERT INTO users (username, password)
			VALUES ($1, $2)
			RETURNING id
		`, username, string(hash)).Scan(&id)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		token, _ := GenerateToken(secret, id)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user_id":  id,
			"username": username,
			"token":    token,
		})
	}
}

func LoginHandler(dbx *sql.DB, secret []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		var (
			id   int
			hash string
		)
		err := dbx.QueryRow(`
			SELECT id, password FROM users WHERE username=$1
		`, strings.TrimSpace(body.Username)).Scan(&id, &hash)
		if err != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(body.Password)) != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		token, _ := GenerateToken(secret, id)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user_id":  id,
			"username": body.Username,
			"token":    token,
		})
	}
}

func MeHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var (
			username, fullName, bio, avatar string
			skills                          []string
		)
		err := dbx.QueryRow(`
			SELECT username, full_name, bio, avatar, skills
			FROM users WHERE id=$1
		`, uid).Scan(&username, &fullName, &bio, &avatar, pq.Array(&skills))
		if err != nil {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user_id":   uid,
			"username":  username,
			"full_name": fullName,
			"bio":       bio,
			"avatar":    avatar,
			"skills":    skills,
		})
	}
}

// UpdateProfileHandler accepts only the allow-listed profile fields.
// Skills may arrive as an array or a comma string.
func UpdateProfileHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			FullName *string         `json:"full_name"`
			Bio      *string         `json:"bio"`
			Avatar   *string         `json:"avatar"`
			Skills   json.RawMessage `json:"skills"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		set := func(col string, val any) {
			_, _ = dbx.Exec(`UPDATE users SET `+col+`=$1 WHERE id=$2`, val, uid)
		}
		if body.FullName != nil {
			set("full_name", strings.TrimSpace(*body.FullName))
		}
		if body.Bio != nil {
			set("bio", strings.TrimSpace(*body.Bio))
		}
		if body.Avatar != nil {
			set("avatar", strings.TrimSpace(*body.Avatar))
		}
		if len(body.Skills) > 0 {
			if skills, ok := parseSkills(body.Skills); ok {
				set("skills", pq.Array(skills))
			}
		}

		MeHandler(dbx)(w, r)
	}
}

func parseSkills(raw json.RawMessage) ([]string, bool) {
	var arr []string
	if err := json.Unmarshal(raw, &arr); err == nil {
		out := arr[:0]
		for _, s := range arr {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, true
	}

	return nil, false
}
