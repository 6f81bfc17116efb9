package main

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/config"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/database"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/http/handlers"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/http/middleware"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/models"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/service"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/store"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/suggest"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/ws"
)

func main() {
	_ = godotenv.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	if cfg.DBDSN == "" || cfg.JWTSecret == "" {
		logrus.Fatal("DB_DSN and JWT_SECRET must be set")
	}

	db, err := database.ConnectMySQL(cfg.DBDSN)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect db")
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.TaskComment{},
		&models.Notification{},
		&models.CalendarEvent{},
		&models.ChatRoom{},
		&models.ChatMessage{},
	); err != nil {
		logrus.WithError(err).Fatal("failed to migrate")
	}

	users := &store.Users{DB: db}
	projects := &store.Projects{DB: db}
	tasks := &store.Tasks{DB: db}
	events := &store.Events{DB: db}
	notifications := &store.Notifications{DB: db}
	messages := &store.Messages{DB: db}

	tokenTTL := time.Duration(cfg.TokenTTLDays) * 24 * time.Hour
	userSvc := service.NewUserService(users, cfg.JWTSecret, tokenTTL, cfg.AdminSecretKey)
	projectSvc := service.NewProjectService(projects)
	taskSvc := service.NewTaskService(tasks, projects)
	eventSvc := service.NewEventService(events)
	notificationSvc := service.NewNotificationService(notifications)
	messageSvc := service.NewMessageService(messages, projects)

	hub := ws.NewHub()

	r := gin.Default()

	authH := &handlers.AuthHandler{Users: userSvc}
	r.POST("/api/v1/auth/register", authH.Register)
	r.POST("/api/v1/auth/login", authH.Login)

	wsH := &handlers.WSHandler{
		Hub:                  hub,
		JWTSecret:            cfg.JWTSecret,
		WSInsecureSkipVerify: cfg.WSInsecureSkipVerify,
	}
	r.GET("/ws", wsH.Handle)

	authed := r.Group("/api/v1")
	authed.Use(middleware.Auth(cfg.JWTSecret, users))

	authed.GET("/auth/me", authH.Me)
	authed.PUT("/auth/profile", authH.UpdateProfile)
	authed.GET("/auth/all-users", authH.ListUsers)

	projectH := &handlers.ProjectHandler{Projects: projectSvc}
	authed.GET("/projects", projectH.List)
	authed.POST("/projects", projectH.Create)
	authed.GET("/projects/my-projects", projectH.ListMine)
	authed.GET("/projects/:id", projectH.Get)
	authed.PATCH("/projects/:id", projectH.Update)
	authed.DELETE("/projects/:id", projectH.Delete)
	authed.PATCH("/projects/:id/progress", projectH.UpdateProgress)

	taskH := &handlers.TaskHandler{Tasks: taskSvc}
	authed.GET("/tasks", taskH.List)
	authed.POST("/tasks", taskH.Create)
	authed.GET("/tasks/:id", taskH.Get)
	authed.PATCH("/tasks/:id", taskH.Update)
	authed.DELETE("/tasks/:id", taskH.Delete)
	authed.POST("/tasks/:id/comments", taskH.AddComment)

	eventH := &handlers.EventHandler{Events: eventSvc}
	authed.GET("/events", eventH.List)
	authed.POST("/events", eventH.Create)
	authed.PUT("/events/:id", eventH.Update)
	authed.DELETE("/events/:id", eventH.Delete)

	notificationH := &handlers.NotificationHandler{Notifications: notificationSvc}
	authed.GET("/notifications", notificationH.List)
	authed.POST("/notifications", notificationH.Create)
	authed.GET("/notifications/unread-count", notificationH.UnreadCount)
	authed.PATCH("/notifications/read-all", notificationH.MarkAllRead)
	authed.PATCH("/notifications/:id/read", notificationH.MarkRead)

	messageH := &handlers.MessageHandler{Messages: messageSvc}
	authed.POST("/messages", messageH.Save)
	authed.GET("/messages/team/:projectId", messageH.TeamRoom)
	authed.GET("/messages/:room", messageH.ListByRoom)

	suggestH := &handlers.SuggestHandler{Extractor: suggest.NewClient(cfg.SuggestAPIURL, cfg.SuggestAPIKey)}
	authed.POST("/suggestions", suggestH.Suggest)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logrus.WithField("addr", addr).Info("listening")
	logrus.Fatal(r.Run(addr))
}
