package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/shiftwise/timeclock-go/internal/config"
	appHTTP "github.com/shiftwise/timeclock-go/internal/handler/http"
	"github.com/shiftwise/timeclock-go/internal/pkg/database"
	"github.com/shiftwise/timeclock-go/internal/pkg/email"
	"github.com/shiftwise/timeclock-go/internal/pkg/jwt"
	"github.com/shiftwise/timeclock-go/internal/repository/postgresql"
	activityService "github.com/shiftwise/timeclock-go/internal/service/activity"
	punchService "github.com/shiftwise/timeclock-go/internal/service/punch"
	statsService "github.com/shiftwise/timeclock-go/internal/service/stats"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn, cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	punchRepo := postgresql.NewPunchRepository(db)
	jobRepo := postgresql.NewJobRepository(db)
	activityRepo := postgresql.NewActivityRepository(db)

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	recorder := activityService.NewRecorder(activityRepo)
	loc := cfg.Location()

	punches := punchService.NewPunchService(punchRepo, jobRepo, recorder, emailService, cfg.Attendance, loc, postgresql.NewTxRunner(db))
	statistics := statsService.NewStatsService(punchRepo, jobRepo, cfg.Attendance, loc)

	punchHandler := appHTTP.NewPunchHandler(punches)
	statsHandler := appHTTP.NewStatsHandler(statistics)

	router := appHTTP.NewRouter(jwtService, punchHandler, statsHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
