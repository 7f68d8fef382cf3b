package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"doaharian/internal/crash"
	"doaharian/internal/util/logx"
)

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestID, recoverer)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods("GET")
	r.HandleFunc("/", s.handleList).Methods("GET")
	r.HandleFunc("/refresh", s.handleRefresh).Methods("POST")
	r.HandleFunc("/prayer/{id}", s.handleDetail).Methods("GET")
	r.HandleFunc("/prayer/{id}/favorite", s.handleFavorite).Methods("POST")
	r.HandleFunc("/prayer/{id}/reward", s.handleReward).Methods("POST")
	return r
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)
		start := time.Now()
		next.ServeHTTP(w, r)
		logx.Infof("http: %s %s %s (%s)", id, r.Method, r.URL.Path, time.Since(start).Round(time.Microsecond))
	})
}

func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				crash.Report("http "+r.URL.Path, v)
				writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		logx.Warnf("http: encode response: %v", err)
	}
}
