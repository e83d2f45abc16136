package main

import (
	"fmt"
	"net/http"

	"github.com/qubix-crm/crm-backend-go/internal/config"
	appHTTP "github.com/qubix-crm/crm-backend-go/internal/handler/http"
	"github.com/qubix-crm/crm-backend-go/internal/pkg/database"
	"github.com/qubix-crm/crm-backend-go/internal/pkg/jwt"
	"github.com/qubix-crm/crm-backend-go/internal/pkg/sse"
	"github.com/qubix-crm/crm-backend-go/internal/repository/postgresql"
	attendanceService "github.com/qubix-crm/crm-backend-go/internal/service/attendance"
	leaveService "github.com/qubix-crm/crm-backend-go/internal/service/leave"
	notificationService "github.com/qubix-crm/crm-backend-go/internal/service/notification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveQuotaRepo := postgresql.NewLeaveQuotaRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.SecretKey)
	hub := sse.NewHub()

	notificationSvc := notificationService.NewNotificationService(notificationRepo, hub)
	quotaSvc := leaveService.NewQuotaService(leaveQuotaRepo, nil)
	requestSvc := leaveService.NewRequestService(db, leaveRequestRepo, quotaSvc, employeeRepo, notificationSvc)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, leaveRequestRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(requestSvc, quotaSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc, jwtService)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		attendanceHandler,
		leaveHandler,
		notificationHandler,
	)

	addr := ":" + cfg.App.Port
	fmt.Printf("Server running at http://localhost%s\n", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
