package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Abhishekdhal/kiit-quest-backend/config"
	"github.com/Abhishekdhal/kiit-quest-backend/controllers"
	"github.com/Abhishekdhal/kiit-quest-backend/middleware"
	"github.com/Abhishekdhal/kiit-quest-backend/utils"
)

func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET not set in env")
	}

	client, db, err := config.ConnectDB(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}
	log.Println("Connected to MongoDB:", cfg.MongoDB)

	if err := config.EnsureIndexes(db); err != nil {
		log.Fatalf("Index creation failed: %v", err)
	}

	users := db.Collection("users")
	jwtSecret := []byte(cfg.JWTSecret)

	mailer := utils.NewSMTPMailer(cfg.SMTP)
	authCtl := controllers.NewAuthController(
		users,
		mailer,
		jwtSecret,
		time.Duration(cfg.JWTExpDays)*24*time.Hour,
		time.Duration(cfg.OTPTTLMin)*time.Minute,
		cfg.OTPDailyCap,
	)
	userCtl := controllers.NewUserController(users)
	pyqCtl := controllers.NewPYQController(db.Collection("pyqs"))
	materialCtl := controllers.NewStudyMaterialController(db.Collection("studymaterials"))
	postCtl := controllers.NewPostController(db.Collection("posts"))
	pdfCtl := controllers.NewPDFController(cfg.DriveBaseURL)

	protect := middleware.Auth(jwtSecret)
	adminGate := middleware.NewAdminGate(users)

	router := gin.Default()

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "KIIT Quest API is running"})
	})

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authCtl.Register)
			auth.POST("/login", authCtl.Login)
			auth.POST("/forgot-password", authCtl.ForgotPassword)
			auth.POST("/reset-password", authCtl.ResetPassword)
		}

		user := api.Group("/user", protect)
		{
			user.GET("/profile", userCtl.GetProfile)
			user.PUT("/profile", userCtl.UpdateProfile)
			user.DELETE("/profile", userCtl.DeleteProfile)
		}

		pyq := api.Group("/pyq", protect)
		{
			pyq.GET("/subjects", pyqCtl.GetSubjects)
			pyq.GET("/years", pyqCtl.GetYears)
			pyq.GET("/file-url", pyqCtl.GetFileURL)
		}

		material := api.Group("/study-material", protect)
		{
			material.GET("/subjects", materialCtl.GetSubjects)
			material.GET("/files", materialCtl.GetFilesBySubject)
		}

		posts := api.Group("/posts", protect)
		{
			posts.GET("/all", postCtl.GetAllPosts)
			posts.PUT("/:id/like", postCtl.ToggleLike)
			posts.POST("/create", adminGate.RequireAdmin, postCtl.CreatePost)
		}

		api.GET("/pdf", protect, pdfCtl.Proxy)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server started on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Println("Server forced to shutdown:", err)
	}

	if err := client.Disconnect(ctx); err != nil {
		log.Println("Error disconnecting MongoDB:", err)
	}

	log.Println("Server exited")
}
