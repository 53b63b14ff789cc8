package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// API lists the post API operations.
type API interface {
	ListPosts(w http.ResponseWriter, r *http.Request)
	CreatePost(w http.ResponseWriter, r *http.Request)
	GetPost(w http.ResponseWriter, r *http.Request, id string)
	UpdatePost(w http.ResponseWriter, r *http.Request, id string)
	DeletePost(w http.ResponseWriter, r *http.Request, id string)
	SearchPosts(w http.ResponseWriter, r *http.Request)
}

// Mount registers the post API routes on r under baseURL.
func Mount(r chi.Router, baseURL string, api API) {
	r.Get(baseURL+"/posts", api.ListPosts)
	r.Post(baseURL+"/post", api.CreatePost)
	r.Get(baseURL+"/post/{id}", withID(api.GetPost))
	r.Put(baseURL+"/post/{id}", withID(api.UpdatePost))
	r.Delete(baseURL+"/post/{id}", withID(api.DeletePost))
	r.Get(baseURL+"/search", api.SearchPosts)
}

// withID passes the {id} segment through as chi matched it. It is never
// rejected here: a malformed id fails in the store like any other error.
func withID(h func(w http.ResponseWriter, r *http.Request, id string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h(w, r, chi.URLParam(r, "id"))
	}
}
