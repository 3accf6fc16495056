//nolint:errcheck,forbidigo,gosec // test utility allows simpler error handling and direct output
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const statusesPath = "/api/user_api/homework_statuses/"

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	token := flag.String("token", "", "Expected OAuth token (any token is accepted when empty)")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: testserver [options] <homework-statuses.json>")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	path := args[0]
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Fatalf("Homework statuses file does not exist: %s", path)
	}

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("Test server listening on %s", addr)
	log.Printf("Homework statuses: %s -> http://localhost%s%s", path, addr, statusesPath)
	log.Println("\nThe file is read on each request, so you can edit it while the server is running.")
	log.Println("Put an HTTP status code into <file>.status to simulate API failures.")

	if err := http.ListenAndServe(addr, newRouter(path, *token)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func newRouter(path, token string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get(statusesPath, func(w http.ResponseWriter, r *http.Request) {
		if token != "" && r.Header.Get("Authorization") != "OAuth "+token {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"code":"not_authenticated","message":"Учетные данные не были предоставлены.","source":"__response__"}`))
			log.Printf("Rejected request with invalid Authorization header")
			return
		}
		if r.URL.Query().Get("from_date") == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"code":"UnknownError","error":{"error":"Wrong from_date format"},"source":"__response__"}`))
			log.Printf("Rejected request without from_date")
			return
		}
		serveJSONFile(w, path, statusCode(path+".status"))
	})

	return r
}

// statusCode reads an override status code from path; 200 if it is absent or invalid.
func statusCode(path string) int {
	content, err := os.ReadFile(path)
	if err != nil {
		return http.StatusOK
	}

	var code int
	if _, err = fmt.Sscanf(string(content), "%d", &code); err != nil || http.StatusText(code) == "" {
		log.Printf("Ignoring invalid status code in %s", path)
		return http.StatusOK
	}
	return code
}

func serveJSONFile(w http.ResponseWriter, path string, code int) {
	content, err := os.ReadFile(path)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to read file: %v", err), http.StatusInternalServerError)
		log.Printf("Error reading %s: %v", path, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(content)
	log.Printf("Served %s (%d bytes, status %d)", path, len(content), code)
}
