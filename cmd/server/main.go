package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/quizcraft/backend/internal/api"
	"github.com/quizcraft/backend/internal/config"
	"github.com/quizcraft/backend/internal/generate"
	"github.com/quizcraft/backend/internal/models"
	"github.com/quizcraft/backend/internal/pipeline"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	p := pipeline.New(pipeline.Capabilities{
		NewGenerator: func(units []models.ContentUnit) generate.Generator {
			return generate.ForBackend(cfg.GeneratorBackend, units)
		},
	})
	handler := api.NewHandler(p, cfg.QuizConfig())

	// Setup router
	r := mux.NewRouter()
	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/quizzes", handler.CreateQuiz).Methods("POST")
	v1.HandleFunc("/studysheets", handler.CreateStudySheet).Methods("POST")

	r.HandleFunc("/health", handler.Health).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	log.Printf("Server starting on port %s (generator backend: %s)", cfg.Port, cfg.GeneratorBackend)
	if err := http.ListenAndServe(":"+cfg.Port, c.Handler(r)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
