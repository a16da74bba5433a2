// Package api exposes HTTP handlers for the exercise tracker.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"example.com/tracker/internal/domain"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/users", h.users)
	mux.HandleFunc("/api/users/", h.userResource)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) users(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createUser(w, r)
	case http.MethodGet:
		h.listUsers(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// userResource dispatches /api/users/:_id/exercises and /api/users/:_id/logs.
func (h *Handler) userResource(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/users/"), "/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	userID := parts[0]
	switch parts[1] {
	case "exercises":
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.createExercise(w, r, userID)
	case "logs":
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.getLog(w, r, userID)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var username string
	if isForm(r) {
		username = r.PostFormValue("username")
	} else {
		var req createUserRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Unable to parse body")
			return
		}
		username = req.Username
	}

	user, err := h.service.CreateUser(r.Context(), username)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserView(*user))
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	views := make([]UserView, 0, len(users))
	for _, user := range users {
		views = append(views, toUserView(user))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) createExercise(w http.ResponseWriter, r *http.Request, userID string) {
	input := domain.AddExerciseInput{UserID: userID}
	if isForm(r) {
		input.Description = r.PostFormValue("description")
		input.Duration = r.PostFormValue("duration")
		input.Date = r.PostFormValue("date")
	} else {
		var req createExerciseRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Unable to parse body")
			return
		}
		input.Description = req.Description
		input.Duration = string(req.Duration)
		input.Date = req.Date
	}

	user, exercise, err := h.service.AddExercise(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExerciseCreatedView(*user, *exercise))
}

func (h *Handler) getLog(w http.ResponseWriter, r *http.Request, userID string) {
	params := r.URL.Query()
	query := domain.ParseLogQuery(params.Get("from"), params.Get("to"), params.Get("limit"))

	user, exercises, err := h.service.GetUserLog(r.Context(), userID, query)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserLogView(*user, exercises))
}

// createUserRequest is the payload for POST /api/users.
type createUserRequest struct {
	Username string `json:"username"`
}

// createExerciseRequest is the payload for POST /api/users/:_id/exercises.
// Duration is accepted as a JSON number or a numeric string because the
// original HTML form posts strings.
type createExerciseRequest struct {
	Description string     `json:"description"`
	Duration    fieldValue `json:"duration"`
	Date        string     `json:"date"`
}

// fieldValue decodes a JSON string or number into its raw text, so form
// strings and JSON numbers validate through the same strict path.
type fieldValue string

func (v *fieldValue) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*v = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = fieldValue(s)
		return nil
	}
	*v = fieldValue(raw)
	return nil
}

// UserView exposes a user's identifier and display name.
type UserView struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

// ExerciseCreatedView is the response for exercise creation. The _id is the
// owning user's identifier, matching the documented contract.
type ExerciseCreatedView struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogEntryView is one record in a user's exercise log.
type LogEntryView struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// UserLogView packages a user's exercise log. Count reflects the records
// actually returned, after any cap.
type UserLogView struct {
	ID       string         `json:"_id"`
	Username string         `json:"username"`
	Count    int            `json:"count"`
	Log      []LogEntryView `json:"log"`
}

func toUserView(user domain.User) UserView {
	return UserView{Username: user.Username, ID: user.ID}
}

func toExerciseCreatedView(user domain.User, exercise domain.Exercise) ExerciseCreatedView {
	return ExerciseCreatedView{
		ID:          user.ID,
		Username:    user.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        domain.FormatDate(exercise.Date),
	}
}

func toUserLogView(user domain.User, exercises []domain.Exercise) UserLogView {
	entries := make([]LogEntryView, 0, len(exercises))
	for _, exercise := range exercises {
		entries = append(entries, LogEntryView{
			Description: exercise.Description,
			Duration:    exercise.Duration,
			Date:        domain.FormatDate(exercise.Date),
		})
	}
	return UserLogView{
		ID:       user.ID,
		Username: user.Username,
		Count:    len(entries),
		Log:      entries,
	}
}

func isForm(r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")
	return strings.HasPrefix(contentType, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(contentType, "multipart/form-data")
}

// decodeJSON tolerates an empty body; absent fields surface as validation
// errors with stable messages rather than decode failures.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// writeServiceError maps domain errors onto the HTTP contract. Unexpected
// failures are logged and reported as an opaque server error.
func writeServiceError(w http.ResponseWriter, err error) {
	var invalid *domain.ValidationError
	switch {
	case errors.As(err, &invalid):
		writeError(w, http.StatusBadRequest, invalid.Reason)
	case errors.Is(err, domain.ErrUsernameTaken):
		writeError(w, http.StatusBadRequest, "Username already taken")
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	default:
		log.Printf("request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Server error")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
