package chi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"

	"github.com/kailas-cloud/postdex/internal/domain"
	dompost "github.com/kailas-cloud/postdex/internal/domain/post"
	"github.com/kailas-cloud/postdex/internal/logger"
	healthuc "github.com/kailas-cloud/postdex/internal/usecase/health"
	postuc "github.com/kailas-cloud/postdex/internal/usecase/post"
	searchuc "github.com/kailas-cloud/postdex/internal/usecase/search"
)

// Client-facing messages. Failures never expose the underlying cause.
const (
	msgListFailed   = "Failed To Fetch All Post, Try again later"
	msgGetFailed    = "Failed To Fetch Post, Try again later"
	msgDeleted      = "Post Deleted Succesfully!"
	msgDeleteFailed = "Failed To Delete Post, Try again later"
	msgUpdated      = "Post Updated Succesfully!"
	msgUpdateFailed = "Failed To Update Post, Try again later"
	msgCreateFailed = "Failed To Add Post, Try again later"
	msgSearchFailed = "Failed To Search Posts, Try again later"
)

// Server implements API on top of the post and search services.
type Server struct {
	posts  *postuc.Service
	search *searchuc.Service
	health *healthuc.Service
}

var _ API = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(posts *postuc.Service, search *searchuc.Service, health *healthuc.Service) *Server {
	return &Server{posts: posts, search: search, health: health}
}

// envelope is the response shape of every API route: data on success reads,
// message on writes and failures.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type postRequest struct {
	Title textField `json:"title"`
	Body  textField `json:"body"`
}

// textField accepts any JSON value. Strings are kept as sent, other values
// keep their JSON text and null is absent.
type textField struct {
	v *string
}

func (f *textField) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		f.v = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		f.v = &s
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return err
	}
	s = buf.String()
	f.v = &s
	return nil
}

type postResponse struct {
	ID        string    `json:"_id"`
	Title     *string   `json:"title,omitempty"`
	Body      *string   `json:"body,omitempty"`
	Embedding []float64 `json:"plot_embedding,omitempty"`
}

type searchHitResponse struct {
	postResponse
	Score float64 `json:"score"`
}

// ListPosts handles GET /posts.
func (s *Server) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.posts.List(r.Context())
	if err != nil {
		fail(w, r, "list posts", msgListFailed, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: postsToResponse(posts)})
}

// GetPost handles GET /post/{id}. A missing post yields an empty list, not a 404.
func (s *Server) GetPost(w http.ResponseWriter, r *http.Request, id string) {
	r = withPostID(r, id)
	posts, err := s.posts.Get(r.Context(), id)
	if err != nil {
		fail(w, r, "get post", msgGetFailed, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: postsToResponse(posts)})
}

// CreatePost handles POST /post.
func (s *Server) CreatePost(w http.ResponseWriter, r *http.Request) {
	req, err := decodePostRequest(r)
	if err != nil {
		fail(w, r, "create post", msgCreateFailed, err)
		return
	}

	created, err := s.posts.Create(r.Context(), req.Title.v, req.Body.v)
	if err != nil {
		fail(w, r, "create post", msgCreateFailed, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: postToResponse(&created)})
}

// UpdatePost handles PUT /post/{id}.
func (s *Server) UpdatePost(w http.ResponseWriter, r *http.Request, id string) {
	r = withPostID(r, id)
	req, err := decodePostRequest(r)
	if err != nil {
		fail(w, r, "update post", msgUpdateFailed, err)
		return
	}

	if err := s.posts.Update(r.Context(), id, req.Title.v, req.Body.v); err != nil {
		fail(w, r, "update post", msgUpdateFailed, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: msgUpdated})
}

// DeletePost handles DELETE /post/{id}. Deleting a missing post succeeds.
func (s *Server) DeletePost(w http.ResponseWriter, r *http.Request, id string) {
	r = withPostID(r, id)
	if err := s.posts.Delete(r.Context(), id); err != nil {
		fail(w, r, "delete post", msgDeleteFailed, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: msgDeleted})
}

// SearchPosts handles GET /search?q=. Token usage is reported in X-Embedding-Tokens.
func (s *Server) SearchPosts(w http.ResponseWriter, r *http.Request) {
	var q string
	if err := runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &q); err != nil {
		fail(w, r, "search posts", msgSearchFailed, err)
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	hits, err := s.search.Search(ctx, q)
	if usage.Used {
		w.Header().Set("X-Embedding-Tokens", strconv.Itoa(usage.TotalTokens))
	}
	if err != nil {
		fail(w, r, "search posts", msgSearchFailed, err)
		return
	}

	data := make([]searchHitResponse, len(hits))
	for i := range hits {
		p := hits[i].Post()
		data[i] = searchHitResponse{postResponse: postToResponse(&p), Score: hits[i].Score()}
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthResponse{Status: string(report.Status), Checks: checks})
}

func withPostID(r *http.Request, id string) *http.Request {
	return r.WithContext(logger.WithFields(r.Context(), zap.String("post_id", id)))
}

// decodePostRequest reads an optional JSON body. An empty body is an empty request.
func decodePostRequest(r *http.Request) (postRequest, error) {
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return postRequest{}, err
	}
	return req, nil
}

func postToResponse(p *dompost.Post) postResponse {
	return postResponse{
		ID:        p.ID(),
		Title:     p.Title(),
		Body:      p.Body(),
		Embedding: p.Embedding(),
	}
}

func postsToResponse(posts []dompost.Post) []postResponse {
	out := make([]postResponse, len(posts))
	for i := range posts {
		out[i] = postToResponse(&posts[i])
	}
	return out
}

// fail logs the classified cause and writes the operation's static failure message.
func fail(w http.ResponseWriter, r *http.Request, op, message string, err error) {
	logger.FromContext(r.Context()).Warn("request failed",
		zap.String("op", op),
		zap.String("cause", domain.Cause(err)),
		zap.Error(err),
	)
	writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

