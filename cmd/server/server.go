package main

import (
	"log"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/kokukuma/nzcp-verifier/internal/server"
)

func main() {
	srv := server.NewServer()

	r := mux.NewRouter()
	r.Use(handlers.CORS(
		handlers.AllowedMethods([]string{"POST", "GET", "DELETE"}),
		handlers.AllowedHeaders([]string{"content-type"}),
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowCredentials(),
	))

	r.HandleFunc("/verify", srv.VerifyPass).Methods("POST", "OPTIONS")

	serverAddress := ":8080"
	log.Println("starting nzcp verifier at", serverAddress)
	log.Fatal(http.ListenAndServe(serverAddress, r))
}
