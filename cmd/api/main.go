package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"golang.org/x/net/netutil"

	"momentum-backend/internal/analytics"
	"momentum-backend/internal/auth"
	"momentum-backend/internal/config"
	"momentum-backend/internal/db"
	"momentum-backend/internal/focus"
	"momentum-backend/internal/habits"
	"momentum-backend/internal/heatmap"
	"momentum-backend/internal/journal"
	"momentum-backend/internal/tasks"
)

func main() {
	cfg := config.Load()

	database, err := db.Connect(cfg.ConnString())
	if err != nil {
		log.Fatal("failed to connect DB: ", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		log.Fatal("failed to migrate DB: ", err)
	}

	log.Println("connected to PostgreSQL")

	authMW := auth.New(cfg.JWTSecret)

	mux := http.NewServeMux()

	// Health endpoint
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// ----- AUTH -----
	mux.HandleFunc("POST /auth/register", auth.RegisterHandler(database, cfg.JWTSecret))
	mux.HandleFunc("POST /auth/login", auth.LoginHandler(database, cfg.JWTSecret))
	mux.HandleFunc("GET /auth/me", authMW.Wrap(auth.MeHandler(database)))
	mux.HandleFunc("PUT /auth/profile", authMW.Wrap(auth.UpdateProfileHandler(database)))
	mux.HandleFunc("POST /auth/logout", authMW.Wrap(auth.LogoutHandler()))
	mux.HandleFunc("DELETE /auth/account", authMW.Wrap(auth.DeleteAccountHandler(database)))

	// ----- TASKS -----
	mux.HandleFunc("GET /tasks", authMW.Wrap(tasks.GetTasksHandler(database)))
	mux.HandleFunc("POST /tasks", authMW.Wrap(tasks.CreateTaskHandler(database)))
	mux.HandleFunc("PUT /tasks/{id}", authMW.Wrap(tasks.UpdateTaskHandler(database)))
	mux.HandleFunc("DELETE /tasks/{id}", authMW.Wrap(tasks.DeleteTaskHandler(database)))
	mux.HandleFunc("POST /tasks/{id}/copy", authMW.Wrap(tasks.CopyTaskToTodayHandler(database)))
	mux.HandleFunc("DELETE /tasks/list/{listName}", authMW.Wrap(tasks.DeleteCustomListHandler(database)))

	// ----- JOURNALS -----
	mux.HandleFunc("GET /journals", authMW.Wrap(journal.GetJournalsHandler(database)))
	mux.HandleFunc("POST /journals", authMW.Wrap(journal.CreateJournalHandler(database)))
	mux.HandleFunc("POST /journals/bulk", authMW.Wrap(journal.ImportJournalsHandler(database)))
	mux.HandleFunc("PUT /journals/{id}", authMW.Wrap(journal.UpdateJournalHandler(database)))
	mux.HandleFunc("DELETE /journals/{id}", authMW.Wrap(journal.DeleteJournalHandler(database)))

	// ----- FOCUS -----
	mux.HandleFunc("GET /focus", authMW.Wrap(focus.GetStatsHandler(database)))
	mux.HandleFunc("POST /focus", authMW.Wrap(focus.LogSessionHandler(database)))
	mux.HandleFunc("GET /focus/sounds", authMW.Wrap(focus.GetSoundsHandler(database)))
	mux.HandleFunc("POST /focus/sounds", authMW.Wrap(focus.AddSoundHandler(database)))
	mux.HandleFunc("DELETE /focus/sounds/{id}", authMW.Wrap(focus.DeleteSoundHandler(database)))

	// ----- HABITS -----
	mux.HandleFunc("GET /habits", authMW.Wrap(habits.GetHabitsHandler(database)))
	mux.HandleFunc("POST /habits", authMW.Wrap(habits.CreateHabitHandler(database)))
	mux.HandleFunc("PUT /habits/{id}/toggle", authMW.Wrap(habits.ToggleHabitHandler(database)))
	mux.HandleFunc("DELETE /habits/{id}", authMW.Wrap(habits.DeleteHabitHandler(database)))

	// ----- HEATMAP -----
	mux.HandleFunc("GET /heatmap", authMW.Wrap(heatmap.Handler(database)))

	// ----- ANALYTICS -----
	mux.HandleFunc("POST /analytics/app-opened", authMW.Wrap(analytics.AppOpenedHandler(database)))
	mux.HandleFunc("POST /analytics/heatmap-viewed", authMW.Wrap(analytics.HeatmapViewedHandler(database)))

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Idempotency-Key", "X-Platform", "X-App-Version", "X-Session-Id"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: c.Handler(mux),
	}

	ln, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		log.Fatal("listen failed: ", err)
	}
	ln = netutil.LimitListener(ln, cfg.MaxConns)

	go func() {
		log.Println("API server is running on", cfg.HTTPAddr)
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] shutdown: %v", err)
	}
}
