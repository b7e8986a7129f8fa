// Package main implements a mock Retro Hunter backend for local development.
// It simulates the agent endpoints (eBay search, photo identification,
// pricing lookups) plus the auth and collection APIs, including the legacy
// /collection route name, without requiring the real services.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

type listing struct {
	Title string   `json:"title"`
	Price float64  `json:"price"`
	Link  string   `json:"link"`
	Image string   `json:"image,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

// state holds the mutable mock data behind the collection endpoints.
type state struct {
	mu      sync.Mutex
	nextID  int
	items   []map[string]any
	folders []map[string]any
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	legacy := flag.Bool("legacy-routes", false, "serve /collection instead of /gameincollections")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	st := &state{nextID: 1}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ebay-search", searchHandler(logger))
	mux.HandleFunc("POST /ask-agent-image-with-ebay", scanHandler(logger))
	mux.HandleFunc("GET /price-charting/{id}", pricingHandler(logger))
	mux.HandleFunc("POST /auth/login", loginHandler(logger))
	mux.HandleFunc("POST /auth/register", loginHandler(logger))
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /auth/verify", verifyHandler(logger))

	itemRoute := "/gameincollections"
	if *legacy {
		itemRoute = "/collection"
	}
	registerCollection(mux, logger, st, itemRoute)
	registerFolders(mux, logger, st)

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock backend", "addr", addr, "item_route", itemRoute)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func cannedListings(game string) []listing {
	return []listing{
		{Title: game + " (PS2, tested)", Price: 24.99, Link: "https://ebay.example/itm/1", Tags: []string{"sold"}},
		{Title: game + " complete in box", Price: 41.50, Link: "https://ebay.example/itm/2", Tags: []string{"sold", "cib"}},
		{Title: game + " disc only", Price: 12.00, Link: "https://ebay.example/itm/3"},
	}
}

func searchHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game := r.URL.Query().Get("game_name")
		if game == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "game_name is required"})
			return
		}
		logger.Info("mock search", "game", game, "platform", r.URL.Query().Get("platform"))
		writeJSON(w, http.StatusOK, map[string]any{"resultados": cannedListings(game)})
	}
}

func scanHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "expected multipart form"})
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file field is required"})
			return
		}
		file.Close()

		// Filenames containing "blurry" exercise the unidentified path.
		if strings.Contains(strings.ToLower(header.Filename), "blurry") {
			writeJSON(w, http.StatusOK, map[string]string{
				"raw": "I can see a game case but cannot read the title.",
			})
			return
		}

		logger.Info("mock scan", "file", header.Filename)
		writeJSON(w, http.StatusOK, map[string]any{
			"titulo":       "Shadow of the Colossus",
			"plataforma":   "PlayStation 2",
			"ebay_results": cannedListings("Shadow of the Colossus"),
		})
	}
}

func pricingHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		logger.Info("mock pricing lookup", "id", id)
		writeJSON(w, http.StatusOK, map[string]any{
			"prices": map[string]float64{
				"loose":    19.99,
				"cib":      42.50,
				"new":      120.00,
				"box_only": 8.25,
			},
		})
	}
}

func loginHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		//nolint:errcheck,gosec // mock server accepts any body
		json.NewDecoder(r.Body).Decode(&creds)
		logger.Info("mock login", "email", creds["email"])
		writeJSON(w, http.StatusOK, map[string]any{
			"token": "mock-token-" + strconv.FormatInt(int64(os.Getpid()), 16),
			"user":  map[string]string{"id": "mock-user", "name": "Mock User", "email": creds["email"]},
		})
	}
}

func verifyHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing token"})
			return
		}
		logger.Debug("mock verify")
		writeJSON(w, http.StatusOK, map[string]string{
			"id": "mock-user", "name": "Mock User", "email": "mock@example.com",
		})
	}
}

func registerCollection(mux *http.ServeMux, logger *slog.Logger, st *state, route string) {
	mux.HandleFunc("GET "+route+"/user/{userID}", func(w http.ResponseWriter, r *http.Request) {
		st.mu.Lock()
		defer st.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"collections": st.items})
	})

	mux.HandleFunc("POST "+route, func(w http.ResponseWriter, r *http.Request) {
		var item map[string]any
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
			return
		}
		st.mu.Lock()
		item["id"] = "item-" + strconv.Itoa(st.nextID)
		st.nextID++
		st.items = append(st.items, item)
		st.mu.Unlock()

		logger.Info("mock item created", "id", item["id"])
		writeJSON(w, http.StatusCreated, item)
	})

	mux.HandleFunc("PUT "+route+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		var item map[string]any
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
			return
		}
		id := r.PathValue("id")
		st.mu.Lock()
		defer st.mu.Unlock()
		for i := range st.items {
			if st.items[i]["id"] == id {
				item["id"] = id
				st.items[i] = item
				writeJSON(w, http.StatusOK, item)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
	})

	mux.HandleFunc("DELETE "+route+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		st.mu.Lock()
		defer st.mu.Unlock()
		for i := range st.items {
			if st.items[i]["id"] == id {
				st.items = append(st.items[:i], st.items[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
	})
}

func registerFolders(mux *http.ServeMux, logger *slog.Logger, st *state) {
	mux.HandleFunc("GET /folders/user/{userID}", func(w http.ResponseWriter, r *http.Request) {
		st.mu.Lock()
		defer st.mu.Unlock()
		writeJSON(w, http.StatusOK, st.folders)
	})

	mux.HandleFunc("POST /folders", func(w http.ResponseWriter, r *http.Request) {
		var folder map[string]any
		if err := json.NewDecoder(r.Body).Decode(&folder); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
			return
		}
		st.mu.Lock()
		folder["id"] = "folder-" + strconv.Itoa(st.nextID)
		st.nextID++
		st.folders = append(st.folders, folder)
		st.mu.Unlock()

		logger.Info("mock folder created", "id", folder["id"])
		writeJSON(w, http.StatusCreated, folder)
	})

	mux.HandleFunc("PUT /folders/{id}", func(w http.ResponseWriter, r *http.Request) {
		var folder map[string]any
		if err := json.NewDecoder(r.Body).Decode(&folder); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
			return
		}
		id := r.PathValue("id")
		st.mu.Lock()
		defer st.mu.Unlock()
		for i := range st.folders {
			if st.folders[i]["id"] == id {
				folder["id"] = id
				st.folders[i] = folder
				writeJSON(w, http.StatusOK, folder)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "folder not found"})
	})

	mux.HandleFunc("DELETE /folders/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		st.mu.Lock()
		defer st.mu.Unlock()
		for i := range st.folders {
			if st.folders[i]["id"] == id {
				st.folders = append(st.folders[:i], st.folders[i+1:]...)
				// Items keep existing; only the folder reference is cleared.
				for j := range st.items {
					if st.items[j]["folderId"] == id {
						delete(st.items[j], "folderId")
					}
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "folder not found"})
	})
}
