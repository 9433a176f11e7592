package main

import (
	batch "MixLab/internal/batch"
	export "MixLab/internal/export"
	exposure "MixLab/internal/exposure"
	importer "MixLab/internal/importer"
	mixdesign "MixLab/internal/mixdesign"
	ratelimit "MixLab/internal/ratelimit"
	recommend "MixLab/internal/recommend"
	run "MixLab/internal/run"
	"context"
	"fmt"
	"sync"
	"time"

	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, store run.Store) {
	limiter := ratelimit.NewIPRateLimiter(5, 10)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	mixH := &mixdesign.Handler{}
	batchH := &batch.Handler{}
	recommendH := &recommend.Handler{}
	exposureH := &exposure.Handler{}
	runH := &run.Handler{Store: store}
	exportH := &export.Handler{Store: store}
	importH := &importer.Handler{Store: store}

	api.HandleFunc("/exposure/classes", exposureH.List).Methods("GET")
	api.HandleFunc("/mix/calc", mixH.Calc).Methods("POST")
	api.HandleFunc("/mix/batch", batchH.Calc).Methods("POST")
	api.HandleFunc("/mix/recommend", recommendH.ByExposure).Methods("POST")

	api.HandleFunc("/runs", runH.Create).Methods("POST")
	api.HandleFunc("/runs", runH.List).Methods("GET")
	api.HandleFunc("/runs/import", importH.Runs).Methods("POST")
	api.HandleFunc("/runs/export/csv", exportH.CSV).Methods("GET")
	api.HandleFunc("/runs/export/xlsx", exportH.XLSX).Methods("GET")
	api.HandleFunc("/runs/{id:[0-9]+}/report", exportH.PDF).Methods("GET")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment as-is")
	}

	var store run.Store
	if os.Getenv("DATABASE_URL") != "" {
		db := run.InitDB()
		defer db.Close()
		pg := run.NewPostgresStore(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatalf("Schema error: %v", err)
		}
		store = pg
		log.Println("Run log backend: postgres")
	} else {
		store = run.NewMemoryStore()
		log.Println("Run log backend: memory")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	mux := mux.NewRouter()
	HandleList(mux, store)
	handler := CORS(mux)

	server := &http.Server{
		Addr:    ":" + port,
		Handler: handler,
	}

	certFile := os.Getenv("TLS_CERT")
	keyFile := os.Getenv("TLS_KEY")

	log.Println("Starting server on :" + port)
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if certFile != "" && keyFile != "" {
			err = server.ListenAndServeTLS(certFile, keyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Shutdown signal received!")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Shutdown error: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
