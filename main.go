package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/siddiq140/Project-Manager/handlers"
	"github.com/siddiq140/Project-Manager/logging"
	"github.com/siddiq140/Project-Manager/middleware"
	"github.com/siddiq140/Project-Manager/repositories"
	"github.com/siddiq140/Project-Manager/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logging.InitLogger()

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal("Database connection failed:", err)
	}
	defer client.Disconnect(context.TODO())

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("MongoDB connection error:", err)
	}
	fmt.Println("Connected to MongoDB!")

	db := client.Database("pro_manage")
	projectRepo := repositories.NewProjectRepository(db.Collection("projects"))
	userRepo := repositories.NewUserRepository(db.Collection("users"))

	if err := projectRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal(err)
	}
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal(err)
	}

	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo, userRepo)
	analyticsService := services.NewAnalyticsService(projectRepo)

	userHandler := handlers.NewUserHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService, analyticsService)

	r := mux.NewRouter()

	r.HandleFunc("/api/auth/signup", userHandler.Signup).Methods("POST")
	r.HandleFunc("/api/auth/login", userHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/user-email", userHandler.GetAllUserEmails).Methods("GET")
	r.Handle("/api/auth/get-user", middleware.JWTAuthMiddleware(http.HandlerFunc(userHandler.GetUser))).Methods("GET")
	r.Handle("/api/auth/update-user", middleware.JWTAuthMiddleware(http.HandlerFunc(userHandler.UpdateUser))).Methods("PUT")

	r.Handle("/api/project/get-projects/{filter}", middleware.JWTAuthMiddleware(http.HandlerFunc(projectHandler.FilterProjects))).Methods("GET")
	r.Handle("/api/project/project-count", middleware.JWTAuthMiddleware(http.HandlerFunc(projectHandler.GetProjectCounts))).Methods("GET")
	r.Handle("/api/project/create-project", middleware.JWTAuthMiddleware(http.HandlerFunc(projectHandler.CreateProject))).Methods("POST")
	r.HandleFunc("/api/project/project/{id}", projectHandler.GetProject).Methods("GET")
	r.HandleFunc("/api/project/done-checklist", projectHandler.MarkChecklistItem).Methods("PUT")
	r.HandleFunc("/api/project/project-status/{projectId}", projectHandler.UpdateProjectStatus).Methods("PUT")
	r.HandleFunc("/api/project/edit/{projectId}", projectHandler.EditProject).Methods("PUT")
	r.HandleFunc("/api/project/delete/{projectId}", projectHandler.DeleteProject).Methods("DELETE")

	corsRouter := enableCORS(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      corsRouter,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	fmt.Println("Server running on port " + port)
	log.Fatal(srv.ListenAndServe())
}

// enableCORS allows the frontend to talk to the API from another origin.
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
