// Package mockserver is a local stand-in for the Graph API events endpoint.
package mockserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/Tap30/conversions-go/adapters"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Received is one accepted request as seen by the server.
type Received struct {
	PixelID       string
	APIVersion    string
	TestEventCode string
	Events        []adapters.ServerEvent
}

// Stats summarizes what the server has accepted so far.
type Stats struct {
	Requests       int            `json:"requests"`
	Rejected       int            `json:"rejected"`
	EventsReceived int            `json:"events_received"`
	ByEventName    map[string]int `json:"by_event_name"`
	TestEvents     int            `json:"test_events"`
}

type Server struct {
	accessToken string
	log         logrus.FieldLogger

	mu       sync.Mutex
	received []Received
	rejected int
}

// New creates a server. An empty accessToken accepts any caller.
func New(accessToken string, log logrus.FieldLogger) *Server {
	return &Server{accessToken: accessToken, log: log}
}

// Router returns the HTTP handler serving the events endpoint.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	r.Post("/{version}/{pixelID}/events", s.handleEvents)
	r.Get("/stats", s.handleStats)

	return r
}

// Received returns a copy of every accepted request in arrival order.
func (s *Server) Received() []Received {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Received(nil), s.received...)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	pixelID := chi.URLParam(r, "pixelID")
	version := chi.URLParam(r, "version")
	traceID := uuid.NewString()
	log := s.log.WithFields(logrus.Fields{"pixel_id": pixelID, "fbtrace_id": traceID})

	if !s.authorized(r) {
		s.reject(w, log, http.StatusUnauthorized, "OAuthException", 190, "Invalid OAuth access token.", traceID)
		return
	}

	var body adapters.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.reject(w, log, http.StatusBadRequest, "OAuthException", 100, "Invalid JSON body.", traceID)
		return
	}
	if len(body.Data) == 0 {
		s.reject(w, log, http.StatusBadRequest, "OAuthException", 100, "The parameter data is required", traceID)
		return
	}
	for _, event := range body.Data {
		if event.EventName == "" || event.EventTime == 0 || event.ActionSource == "" {
			s.reject(w, log, http.StatusBadRequest, "OAuthException", 100, "Invalid parameter: event_name, event_time and action_source are required", traceID)
			return
		}
	}

	s.mu.Lock()
	s.received = append(s.received, Received{
		PixelID:       pixelID,
		APIVersion:    version,
		TestEventCode: body.TestEventCode,
		Events:        body.Data,
	})
	s.mu.Unlock()

	prettyJSON, _ := json.MarshalIndent(body, "", "  ")
	log.WithFields(logrus.Fields{
		"events":          len(body.Data),
		"test_event_code": body.TestEventCode,
	}).Infof("Received events:\n%s", prettyJSON)

	writeJSON(w, http.StatusOK, adapters.EventResponse{
		EventsReceived: len(body.Data),
		Messages:       []string{},
		FBTraceID:      traceID,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	stats := Stats{
		Requests:    len(s.received) + s.rejected,
		Rejected:    s.rejected,
		ByEventName: map[string]int{},
	}
	for _, req := range s.received {
		stats.EventsReceived += len(req.Events)
		if req.TestEventCode != "" {
			stats.TestEvents += len(req.Events)
		}
		for _, event := range req.Events {
			stats.ByEventName[event.EventName]++
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) authorized(r *http.Request) bool {
	if s.accessToken == "" {
		return true
	}
	token := r.URL.Query().Get("access_token")
	if token == "" {
		token = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	}
	return token == s.accessToken
}

func (s *Server) reject(w http.ResponseWriter, log logrus.FieldLogger, status int, errType string, code int, message, traceID string) {
	s.mu.Lock()
	s.rejected++
	s.mu.Unlock()

	log.WithField("status", status).Warn(message)

	var graphErr adapters.GraphError
	graphErr.Error.Message = message
	graphErr.Error.Type = errType
	graphErr.Error.Code = code
	graphErr.Error.FBTraceID = traceID
	writeJSON(w, status, graphErr)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
