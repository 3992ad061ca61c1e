package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"

	"github.com/anjalik06/bookshare-backend/configs"
	"github.com/anjalik06/bookshare-backend/internal/daemon"
	"github.com/anjalik06/bookshare-backend/internal/db"
	"github.com/anjalik06/bookshare-backend/internal/handlers"
	"github.com/anjalik06/bookshare-backend/internal/lending"
	"github.com/anjalik06/bookshare-backend/internal/middleware"
	"github.com/anjalik06/bookshare-backend/internal/store"
	"github.com/anjalik06/bookshare-backend/internal/utils"
)

func main() {
	cfg := configs.LoadConfig()

	client, err := db.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Mongo connection failed: %v", err)
	}
	defer client.Disconnect(context.Background())

	utils.InitJwtSecret(cfg.JWTSecret)

	database := client.Database(cfg.DBName)

	bookStore := store.NewMongoBookStore(database.Collection("books"))
	userStore := store.NewMongoUserStore(database.Collection("users"))
	awardStore := store.NewMongoAwardStore(database.Collection("pending_awards"))

	ledger := lending.NewLedger(userStore, awardStore)
	service := lending.NewService(bookStore, ledger)

	auditLogger := utils.Logger{Collection: database.Collection("audit_logs")}

	r := mux.NewRouter()
	r.Use(middleware.JSONMiddleware)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "OK")
	})

	bookHandler := handlers.NewBookHandler(service, auditLogger)
	lendingHandler := handlers.NewLendingHandler(service, auditLogger)

	api := r.PathPrefix("/").Subrouter()
	api.Use(middleware.JWTAuthMiddleware)

	api.HandleFunc("/books", bookHandler.UploadBook).Methods("POST")
	api.HandleFunc("/books", bookHandler.GetBooks).Methods("GET")
	api.HandleFunc("/books/available", bookHandler.GetAvailableBooks).Methods("GET")
	api.HandleFunc("/books/owner/{userId}", bookHandler.GetBooksByOwner).Methods("GET")
	api.HandleFunc("/books/{id}", bookHandler.GetBook).Methods("GET")
	api.HandleFunc("/books/{id}", bookHandler.DeleteBook).Methods("DELETE")

	api.HandleFunc("/books/{id}/request", lendingHandler.RequestBook).Methods("POST")
	api.HandleFunc("/books/{bookId}/requests/{requesterId}/approve", lendingHandler.ApproveRequest).Methods("POST")
	api.HandleFunc("/books/{bookId}/requests/{requesterId}/reject", lendingHandler.RejectRequest).Methods("POST")
	api.HandleFunc("/books/{id}/return", lendingHandler.ReturnBook).Methods("POST")

	api.HandleFunc("/requests/owner/{userId}", lendingHandler.GetRequestsForOwner).Methods("GET")
	api.HandleFunc("/loans/out/{userId}", lendingHandler.GetOnLoan).Methods("GET")
	api.HandleFunc("/loans/borrowed/{userId}", lendingHandler.GetBorrowed).Methods("GET")

	reconcilerCtx, stopReconciler := context.WithCancel(context.Background())
	defer stopReconciler()

	reconciler := &daemon.AwardReconciler{Awards: awardStore, Users: userStore}
	reconciler.Start(reconcilerCtx)

	var server = http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Println("Server starting on port", cfg.Port)
		log.Fatal(server.ListenAndServe())
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	log.Println("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}
	log.Println("Server shut down.")
}
