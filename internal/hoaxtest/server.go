// Package hoaxtest provides an in-process fake of the Hoaxify REST API
// for gateway and service tests. It mimics the real backend's paths,
// paging shape, and validation-error payloads; it is not a production
// server.
package hoaxtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hoaxify/hoaxify-cli/internal/client/models"
)

const (
	msgDisplayNameSize = "It must have minimum 4 and maximum 255 characters"
	msgContentSize     = "It must have minimum 10 and maximum 5000 characters"
	msgCannotBeNull    = "It cannot be null"
	msgNameInUse       = "This name is in use"
	msgBadCredentials  = "Incorrect user credentials"
	msgUserNotFound    = "User not found"
)

// Server is the fake backend. All state is in memory and guarded by mu.
type Server struct {
	mu        sync.Mutex
	users     []models.User
	passwords map[string]string
	hoaxes    []models.Hoax
	nextUser  int64
	nextHoax  int64
}

func New() *Server {
	return &Server{passwords: map[string]string{}, nextUser: 1, nextHoax: 1}
}

// Handler returns the fake API routes mounted under /api/1.0.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Route("/api/1.0", func(r chi.Router) {
		r.Post("/users", s.signup)
		r.Post("/login", s.login)
		r.Get("/users", s.listUsers)
		r.Get("/users/{username}", s.getUser)
		r.Put("/users/{id}", s.updateUser)
		r.Post("/hoaxes", s.postHoax)
		r.Get("/hoaxes", s.listHoaxes)
		r.Get("/users/{username}/hoaxes", s.listUserHoaxes)
	})
	return r
}

// Seed registers a user without going through signup validation.
func (s *Server) Seed(user models.User, password string) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = s.nextUser
	s.nextUser++
	s.users = append(s.users, user)
	s.passwords[user.Username] = password
	return user
}

// SeedHoax stores a hoax authored by the given user.
func (s *Server) SeedHoax(author models.User, content string) models.Hoax {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addHoaxLocked(author, content)
}

func (s *Server) addHoaxLocked(author models.User, content string) models.Hoax {
	hoax := models.Hoax{
		ID:      s.nextHoax,
		Content: content,
		Date:    time.Now().UnixMilli(),
		User:    author,
	}
	s.nextHoax++
	s.hoaxes = append(s.hoaxes, hoax)
	return hoax
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username    string `json:"username"`
		DisplayName string `json:"displayName"`
		Password    string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "malformed request body", nil)
		return
	}

	fieldErrors := map[string]string{}
	if body.Username == "" {
		fieldErrors["username"] = msgCannotBeNull
	}
	if body.DisplayName == "" {
		fieldErrors["displayName"] = msgCannotBeNull
	} else if len(body.DisplayName) < 4 || len(body.DisplayName) > 255 {
		fieldErrors["displayName"] = msgDisplayNameSize
	}
	if body.Password == "" {
		fieldErrors["password"] = msgCannotBeNull
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.passwords[body.Username]; taken && body.Username != "" {
		fieldErrors["username"] = msgNameInUse
	}
	if len(fieldErrors) > 0 {
		badRequest(w, "validation error", fieldErrors)
		return
	}

	user := models.User{ID: s.nextUser, Username: body.Username, DisplayName: body.DisplayName}
	s.nextUser++
	s.users = append(s.users, user)
	s.passwords[user.Username] = body.Password

	respondJSON(w, http.StatusOK, user)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.authenticateLocked(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorBody{Message: msgBadCredentials})
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (s *Server) authenticateLocked(r *http.Request) (models.User, bool) {
	username, password, ok := r.BasicAuth()
	if !ok {
		return models.User{}, false
	}
	stored, known := s.passwords[username]
	if !known || stored != password {
		return models.User{}, false
	}
	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	page := intParam(r, "page", 0)
	size := intParam(r, "size", 3)

	s.mu.Lock()
	users := make([]models.User, len(s.users))
	copy(users, s.users)
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, pageOf(users, page, size))
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			respondJSON(w, http.StatusOK, u)
			return
		}
	}
	respondJSON(w, http.StatusNotFound, errorBody{Message: msgUserNotFound})
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		badRequest(w, "invalid user id", nil)
		return
	}

	var body struct {
		DisplayName string `json:"displayName"`
		Image       string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "malformed request body", nil)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	caller, ok := s.authenticateLocked(r)
	if !ok || caller.ID != id {
		respondJSON(w, http.StatusForbidden, errorBody{Message: "You are not allowed to update user"})
		return
	}

	if len(body.DisplayName) < 4 || len(body.DisplayName) > 255 {
		badRequest(w, "validation error", map[string]string{"displayName": msgDisplayNameSize})
		return
	}

	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		s.users[i].DisplayName = body.DisplayName
		if body.Image != "" {
			// the real backend stores the decoded bytes and returns
			// the generated filename
			s.users[i].Image = fmt.Sprintf("profile-%d.png", id)
		}
		respondJSON(w, http.StatusOK, s.users[i])
		return
	}
	respondJSON(w, http.StatusNotFound, errorBody{Message: msgUserNotFound})
}

func (s *Server) postHoax(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "malformed request body", nil)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	author, ok := s.authenticateLocked(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorBody{Message: msgBadCredentials})
		return
	}

	if len(body.Content) < 10 || len(body.Content) > 5000 {
		badRequest(w, "validation error", map[string]string{"content": msgContentSize})
		return
	}

	respondJSON(w, http.StatusOK, s.addHoaxLocked(author, body.Content))
}

func (s *Server) listHoaxes(w http.ResponseWriter, r *http.Request) {
	s.serveHoaxes(w, r, "")
}

func (s *Server) listUserHoaxes(w http.ResponseWriter, r *http.Request) {
	s.serveHoaxes(w, r, chi.URLParam(r, "username"))
}

func (s *Server) serveHoaxes(w http.ResponseWriter, r *http.Request, username string) {
	page := intParam(r, "page", 0)
	size := intParam(r, "size", 5)

	s.mu.Lock()
	hoaxes := make([]models.Hoax, 0, len(s.hoaxes))
	for _, h := range s.hoaxes {
		if username == "" || h.User.Username == username {
			hoaxes = append(hoaxes, h)
		}
	}
	s.mu.Unlock()

	// sort=id,desc: newest first
	sort.Slice(hoaxes, func(i, j int) bool { return hoaxes[i].ID > hoaxes[j].ID })

	respondJSON(w, http.StatusOK, pageOf(hoaxes, page, size))
}

type errorBody struct {
	Message          string            `json:"message"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

func badRequest(w http.ResponseWriter, message string, fieldErrors map[string]string) {
	respondJSON(w, http.StatusBadRequest, errorBody{Message: message, ValidationErrors: fieldErrors})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func intParam(r *http.Request, key string, defaultValue int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return defaultValue
	}
	return v
}

func pageOf[T any](items []T, page, size int) models.Page[T] {
	if size <= 0 {
		size = 1
	}
	totalPages := (len(items) + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}

	start := page * size
	end := start + size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return models.Page[T]{
		Content:    append([]T{}, items[start:end]...),
		Number:     page,
		Size:       size,
		First:      page == 0,
		Last:       page >= totalPages-1,
		TotalPages: totalPages,
	}
}
