package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"

	"loomdesk/api"
	"loomdesk/config"
	"loomdesk/handlers"
	"loomdesk/services/calendar"
	"loomdesk/services/orders"
	"loomdesk/services/tasks"
	"loomdesk/utils"
)

func main() {
	storageDir := os.Getenv("LOOMDESK_DATA_DIR")
	if storageDir == "" {
		storageDir = "./data"
	}

	configManager, err := config.NewManager(storageDir)
	if err != nil {
		log.Fatalf("[main] settings manager: %v", err)
	}
	settings, err := configManager.Load()
	if err != nil {
		log.Fatalf("[main] load settings: %v", err)
	}

	if settings.LogFile != "" {
		log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   settings.LogFile,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
		}))
	}

	var orderSource calendar.OrderSource
	var taskSource calendar.TaskSource
	if settings.OrdersBaseURL == "" || settings.TasksBaseURL == "" {
		log.Println("[main] no provider URLs configured, serving demo data")
		orderSource = orders.NewDemo(time.Now())
		taskSource = tasks.NewDemo(time.Now())
	} else {
		orderSource = orders.NewClient(settings.OrdersBaseURL)
		taskSource = tasks.NewClient(settings.TasksBaseURL)
	}

	firstWeekday := time.Sunday
	if settings.WeekStartsMonday {
		firstWeekday = time.Monday
	}

	calendarService := calendar.New(orderSource, taskSource, firstWeekday)
	calendarService.StartBackgroundRefresh(time.Duration(settings.RefreshMinutes) * time.Minute)
	defer calendarService.Stop()

	router := utils.NewRouter()

	calendarHandler := handlers.NewCalendarHandler(calendarService)
	// Manual refresh hits both upstream providers; cap it at 5/min per station.
	calendarHandler.Limiter = api.NewIPRateLimiter(rate.Every(12*time.Second), 5)
	calendarHandler.Register(router)

	router.HandleFunc("/api/version", handlers.NewVersionHandler().GetVersion).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", settings.Port)
	server := &http.Server{Addr: addr, Handler: router}

	go func() {
		log.Printf("[main] listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Println("[main] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[main] shutdown: %v", err)
	}
}
