package main

import (
	"log"
	"net/http"
	"os"

	"mentorlink-backend/config"
	"mentorlink-backend/controllers/authentication"
	"mentorlink-backend/controllers/connections"
	"mentorlink-backend/controllers/health"
	"mentorlink-backend/controllers/httpCors"
	"mentorlink-backend/controllers/mentors"
	"mentorlink-backend/controllers/notifications"
	sessionscontroller "mentorlink-backend/controllers/sessions"
	"mentorlink-backend/models/connect"
	"mentorlink-backend/models/notify"
	"mentorlink-backend/models/sessions"
	"mentorlink-backend/models/users"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := config.InitDB(); err != nil {
		log.Fatalf("Database initialization error: %v", err)
	}

	err := config.DB.AutoMigrate(
		&users.User{},
		&users.Skill{},
		&connect.Connection{},
		&sessions.Session{},
		&notify.Notification{},
	)
	if err != nil {
		log.Fatalf("Database migration error: %v", err)
	}

	sqlDB, err := config.DB.DB()
	if err != nil {
		log.Fatalf("Database handle error: %v", err)
	}
	if err = sqlDB.Ping(); err != nil {
		log.Fatalf("Database connection error: %v", err)
	}
	log.Println("Database connection established")

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		health.HandleHealth(w, r, config.DB)
	})

	http.HandleFunc("/register", authentication.Register)
	http.HandleFunc("/login", authentication.Login)
	http.HandleFunc("/logout", authentication.Logout)
	http.HandleFunc("/profile", authentication.GetProfile)
	http.HandleFunc("/profile/update", authentication.UpdateProfile)

	http.HandleFunc("/login/google", authentication.HandleGoogleLogin)
	http.HandleFunc("/callback/google", authentication.HandleGoogleCallback)

	http.HandleFunc("/mentors", func(w http.ResponseWriter, r *http.Request) {
		mentors.ListMentors(w, r, config.DB)
	})
	http.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		mentors.GetUser(w, r, config.DB)
	})

	http.HandleFunc("/connections", func(w http.ResponseWriter, r *http.Request) {
		connections.HandleConnections(w, r, config.DB)
	})
	http.HandleFunc("/connections/respond", func(w http.ResponseWriter, r *http.Request) {
		connections.HandleRespond(w, r, config.DB)
	})

	http.HandleFunc("/sessions", func(w http.ResponseWriter, r *http.Request) {
		sessionscontroller.HandleSessions(w, r, config.DB)
	})
	http.HandleFunc("/sessions/", func(w http.ResponseWriter, r *http.Request) {
		sessionscontroller.HandleCancel(w, r, config.DB)
	})

	http.HandleFunc("/notifications", func(w http.ResponseWriter, r *http.Request) {
		notifications.HandleNotifications(w, r, config.DB)
	})

	handler := httpCors.CorsSettings().Handler(http.DefaultServeMux)

	log.Printf("Server listening on port %s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server startup error: %v", err)
	}
}
