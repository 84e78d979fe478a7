package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/castlebridge/expensetrackr/backend/internal/ai"
	"github.com/castlebridge/expensetrackr/backend/internal/auth"
	"github.com/castlebridge/expensetrackr/backend/internal/httpapi"
	"github.com/castlebridge/expensetrackr/backend/internal/service"
	"github.com/castlebridge/expensetrackr/backend/internal/store"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8180"
	}

	ctx := context.Background()

	backend := os.Getenv("STORE_BACKEND")
	if backend == "" {
		if os.Getenv("ENV") == "local" {
			backend = "memory"
		} else {
			backend = "firestore"
		}
	}
	skipAuth := os.Getenv("SKIP_AUTH") == "true"

	var storeImpl store.Store
	switch backend {
	case "memory":
		log.Println("Using in-memory store for local development")
		storeImpl = store.NewMemoryStore()
	case "sqlite":
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "expensetrackr.db"
		}
		sqliteStore, err := store.NewSQLiteStore(path)
		if err != nil {
			log.Fatalf("Failed to open SQLite store: %v", err)
		}
		defer sqliteStore.Close()
		log.Printf("Using SQLite store at %s", path)
		storeImpl = sqliteStore
	case "firestore":
		projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
		if projectID == "" {
			log.Fatal("GOOGLE_CLOUD_PROJECT is required for the firestore backend")
		}
		firestoreClient, err := firestore.NewClient(ctx, projectID)
		if err != nil {
			log.Fatalf("Failed to create Firestore client: %v", err)
		}
		defer firestoreClient.Close()
		storeImpl = store.NewFirestoreStore(firestoreClient)
	default:
		log.Fatalf("Unknown STORE_BACKEND %q (want memory, sqlite or firestore)", backend)
	}

	// With the memory backend or SKIP_AUTH, requests get a mock identity so
	// the dev experience needs no Firebase project.
	var firebaseAuth *auth.FirebaseAuth
	if backend != "memory" && !skipAuth {
		var err error
		firebaseAuth, err = auth.NewFirebaseAuth(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase Auth: %v", err)
		}
	} else {
		log.Println("Using mock authentication (no Firebase verification)")
	}

	gemini := ai.NewGeminiClient(os.Getenv("GEMINI_API_KEY"))
	if os.Getenv("GEMINI_API_KEY") == "" {
		log.Println("GEMINI_API_KEY not set; insight requests will serve fallback content")
	}

	resolver := service.NewIdentityResolver(storeImpl)
	handler := &httpapi.Handler{
		Expenses: service.NewExpenseService(storeImpl, resolver),
		Insights: service.NewInsightService(storeImpl, resolver, gemini),
	}

	if os.Getenv("ENV") != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(auth.DebugMiddleware(skipAuth))
	if firebaseAuth != nil {
		r.Use(auth.Middleware(firebaseAuth))
	} else {
		r.Use(auth.LocalDevMiddleware())
	}

	handler.Register(r.Group("/api"))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"https://expensetrackr.app",
			"https://www.expensetrackr.app",
			"https://*.vercel.app", // preview deployments
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"User-Agent",
			"X-Debug-Impersonate-User",
		},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: h2c.NewHandler(c.Handler(r), &http2.Server{}),
	}

	log.Printf("Starting server on port %s (store=%s)", port, backend)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
