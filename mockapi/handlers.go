/*
handlers.go - HTTP handler implementations

Request bodies are decoded into local request types carrying validate
tags; responses reuse the engine's entity types directly. Error bodies
are always {"message": "..."} so the client's error decoding has one
shape to deal with.
*/
package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/warp/reservation-engine/engine"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type bookingRequest struct {
	ResourceID  string    `json:"resource_id" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	Attendees   []string  `json:"attendees"`
	Description string    `json:"description"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

type availabilityRequest struct {
	ResourceID string    `json:"resource_id" validate:"required"`
	StartTime  time.Time `json:"start_time" validate:"required"`
	EndTime    time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
}

type resourceTypeRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

// =============================================================================
// AUTH
// =============================================================================

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decode(w, r, &req) {
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == req.Username {
			// Mock service: any password is accepted for a known user.
			token := IssueToken(u, s.now().Add(s.tokenTTL))
			respondJSON(w, http.StatusOK, engine.LoginResult{Token: token, User: u})
			return
		}
	}
	respondError(w, http.StatusUnauthorized, "invalid credentials")
}

func (s *Server) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	claims := requestClaims(r)

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == claims.Subject {
			token := IssueToken(u, s.now().Add(s.tokenTTL))
			respondJSON(w, http.StatusOK, map[string]string{"token": token})
			return
		}
	}
	respondError(w, http.StatusUnauthorized, "unknown token subject")
}

// =============================================================================
// RESOURCES
// =============================================================================

func (s *Server) handleListResources(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := engine.FilterCriteria{
		Type:     q.Get("type"),
		Location: q.Get("location"),
		Query:    q.Get("query"),
	}
	if raw := q.Get("features"); raw != "" {
		for _, f := range strings.Split(raw, ",") {
			criteria.Features = append(criteria.Features, engine.FeatureID(f))
		}
	}
	if raw := q.Get("capacity"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			criteria.MinCapacity = n
		}
	}
	status := q.Get("status")
	if status == "" {
		status = "active"
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []engine.Resource{}
	for _, res := range engine.ApplyFilters(s.resources, criteria) {
		if res.Status == status {
			out = append(out, res)
		}
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetResource(w http.ResponseWriter, r *http.Request) {
	id := engine.ResourceID(chi.URLParam(r, "id"))

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, res := range s.resources {
		if res.ID == id {
			respondJSON(w, http.StatusOK, res)
			return
		}
	}
	respondError(w, http.StatusNotFound, fmt.Sprintf("resource %q not found", id))
}

func (s *Server) handleListFeatures(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	respondJSON(w, http.StatusOK, s.features)
}

// =============================================================================
// BOOKINGS
// =============================================================================

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID := q.Get("user_id")
	resourceID := q.Get("resource_id")
	status := q.Get("status")
	startDate, _ := time.Parse(time.RFC3339, q.Get("start_date"))
	endDate, _ := time.Parse(time.RFC3339, q.Get("end_date"))

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []engine.Booking{}
	for _, b := range s.bookings {
		if resourceID != "" && string(b.ResourceID) != resourceID {
			continue
		}
		if userID != "" && string(b.UserID) != userID && !hasAttendee(b, userID) {
			continue
		}
		if status != "" && string(b.Status) != status {
			continue
		}
		if !startDate.IsZero() && b.EndTime.Before(startDate) {
			continue
		}
		if !endDate.IsZero() && b.StartTime.After(endDate) {
			continue
		}
		out = append(out, b)
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	id := engine.BookingID(chi.URLParam(r, "id"))

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookings {
		if b.ID == id {
			respondJSON(w, http.StatusOK, b)
			return
		}
	}
	respondError(w, http.StatusNotFound, fmt.Sprintf("booking %q not found", id))
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if !s.decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	resource, ok := s.findResourceLocked(engine.ResourceID(req.ResourceID))
	if !ok {
		respondError(w, http.StatusNotFound, fmt.Sprintf("resource %q not found", req.ResourceID))
		return
	}
	if resource.Status != "active" {
		respondError(w, http.StatusBadRequest,
			fmt.Sprintf("resource %q is not available (status: %s)", resource.ID, resource.Status))
		return
	}

	verdict := s.availabilityLocked(resource, req.StartTime, req.EndTime)
	if !verdict.Available {
		respondError(w, http.StatusConflict, verdict.Reason)
		return
	}

	attendees := make([]engine.UserID, len(req.Attendees))
	for i, a := range req.Attendees {
		attendees[i] = engine.UserID(a)
	}
	booking := engine.Booking{
		ID:          engine.BookingID("booking-" + uuid.NewString()[:8]),
		ResourceID:  resource.ID,
		UserID:      engine.UserID(requestClaims(r).Subject),
		Title:       req.Title,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      engine.BookingPending,
		Attendees:   attendees,
		CreatedAt:   s.now(),
		Description: req.Description,
	}
	s.bookings = append(s.bookings, booking)
	respondJSON(w, http.StatusCreated, booking)
}

func (s *Server) handleUpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id := engine.BookingID(chi.URLParam(r, "id"))
	var req statusRequest
	if !s.decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			s.bookings[i].Status = engine.BookingStatus(req.Status)
			respondJSON(w, http.StatusOK, s.bookings[i])
			return
		}
	}
	respondError(w, http.StatusNotFound, fmt.Sprintf("booking %q not found", id))
}

// =============================================================================
// AVAILABILITY
// =============================================================================

func (s *Server) handleCheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if !s.decode(w, r, &req) {
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	resource, ok := s.findResourceLocked(engine.ResourceID(req.ResourceID))
	if !ok {
		respondError(w, http.StatusNotFound, fmt.Sprintf("resource %q not found", req.ResourceID))
		return
	}
	respondJSON(w, http.StatusOK, s.availabilityLocked(resource, req.StartTime, req.EndTime))
}

// availabilityLocked computes the free/busy verdict for a resource over
// [start, end). Cancelled bookings never conflict.
func (s *Server) availabilityLocked(resource engine.Resource, start, end time.Time) engine.AvailabilityResult {
	if resource.Status != "active" {
		return engine.AvailabilityResult{
			Available: false,
			Reason:    fmt.Sprintf("resource is under %s", resource.Status),
		}
	}

	for i := range s.bookings {
		b := s.bookings[i]
		if b.ResourceID != resource.ID || b.Status == engine.BookingCancelled {
			continue
		}
		if b.StartTime.Before(end) && start.Before(b.EndTime) {
			conflict := b
			return engine.AvailabilityResult{
				Available:          false,
				Reason:             fmt.Sprintf("conflicts with existing booking: %s", b.Title),
				ConflictingBooking: &conflict,
			}
		}
	}
	return engine.AvailabilityResult{Available: true}
}

// =============================================================================
// RESOURCE TYPES
// =============================================================================

func (s *Server) handleListResourceTypes(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	respondJSON(w, http.StatusOK, s.types)
}

func (s *Server) handleGetResourceType(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "resource type id must be an integer")
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.types {
		if t.ID == id {
			respondJSON(w, http.StatusOK, t)
			return
		}
	}
	respondError(w, http.StatusNotFound, fmt.Sprintf("resource type %d not found", id))
}

func (s *Server) handleCreateResourceType(w http.ResponseWriter, r *http.Request) {
	var req resourceTypeRequest
	if !s.decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t := engine.ResourceType{
		ID:          s.nextTypeID,
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
	}
	s.nextTypeID++
	s.types = append(s.types, t)
	respondJSON(w, http.StatusCreated, t)
}

func (s *Server) handleUpdateResourceType(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "resource type id must be an integer")
		return
	}
	var req resourceTypeRequest
	if !s.decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.types {
		if s.types[i].ID == id {
			s.types[i].Name = req.Name
			s.types[i].Description = req.Description
			s.types[i].Icon = req.Icon
			s.types[i].Color = req.Color
			respondJSON(w, http.StatusOK, s.types[i])
			return
		}
	}
	respondError(w, http.StatusNotFound, fmt.Sprintf("resource type %d not found", id))
}

func (s *Server) handleDeleteResourceType(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "resource type id must be an integer")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.types {
		if s.types[i].ID == id {
			s.types = append(s.types[:i], s.types[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	respondError(w, http.StatusNotFound, fmt.Sprintf("resource type %d not found", id))
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *Server) findResourceLocked(id engine.ResourceID) (engine.Resource, bool) {
	for _, res := range s.resources {
		if res.ID == id {
			return res, true
		}
	}
	return engine.Resource{}, false
}

func hasAttendee(b engine.Booking, userID string) bool {
	for _, a := range b.Attendees {
		if string(a) == userID {
			return true
		}
	}
	return false
}

// decode unmarshals and validates a request body, writing a 400 and
// returning false on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}
