package main

import (
	"flag"
	"log"

	"unifest/internal/validation"
)

func main() {
	var baseURL, email, password string
	flag.StringVar(&baseURL, "url", "http://localhost:8080", "Base URL for API validation")
	flag.StringVar(&email, "email", "organizer1@unifest.dev", "Basic auth email")
	flag.StringVar(&password, "password", "password123", "Basic auth password")
	flag.Parse()

	log.Printf("Starting API validation against: %s", baseURL)

	validator := validation.NewAPIValidator(baseURL, email, password)
	if err := validator.ValidateAll(); err != nil {
		log.Fatalf("Validation failed: %v", err)
	}

	log.Println("Validation passed")
}
