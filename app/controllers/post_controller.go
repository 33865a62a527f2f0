package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"inkwell/app/auth"
	"inkwell/app/middleware"
	"inkwell/app/models"
	"inkwell/app/services"
	"inkwell/app/storage"
)

const maxUploadBytes = 10 << 20

// PostController handles HTTP requests for blog posts and their
// moderation.
type PostController struct {
	service    *services.PostService
	images     *storage.ImageStore
	production bool
}

// NewPostController creates a new PostController
func NewPostController(service *services.PostService, images *storage.ImageStore, production bool) *PostController {
	return &PostController{service: service, images: images, production: production}
}

// Create handles submitting a new post into the moderation queue.
// The body is a multipart form with a required image file.
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return
	}

	draft := models.PostDraft{
		Title:    r.FormValue("title"),
		Content:  r.FormValue("content"),
		Category: models.Category(r.FormValue("category")),
		Tags:     formTags(r),
	}

	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		ref, err := pc.images.Save(header.Filename, file)
		if err != nil {
			writeError(w, err, pc.production)
			return
		}
		draft.Image = ref
	}

	post, err := pc.service.Submit(r.Context(), middleware.IdentityFrom(r.Context()), draft)
	if err != nil {
		writeError(w, err, pc.production)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "your post was created and is awaiting admin approval",
		"blog":    post,
	})
}

// Index handles the public listing: approved posts only, paginated,
// optionally filtered by category.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", services.DefaultPageSize)

	var category *models.Category
	if c := strings.TrimSpace(r.URL.Query().Get("category")); c != "" {
		cat := models.Category(c)
		category = &cat
	}

	listing, err := pc.service.ListPublic(r.Context(), page, limit, category)
	if err != nil {
		writeError(w, err, pc.production)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

// Show handles displaying a single post. No status filter applies: a
// direct link to a pending or rejected post resolves.
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	post, err := pc.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err, pc.production)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Update handles a partial edit by the owner or an admin. Only fields
// present in the form are applied; a new image file replaces the old
// reference.
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return
	}

	var patch models.PostPatch
	if v, present := formField(r, "title"); present {
		patch.Title = &v
	}
	if v, present := formField(r, "content"); present {
		patch.Content = &v
	}
	if v, present := formField(r, "category"); present {
		cat := models.Category(v)
		patch.Category = &cat
	}
	if _, present := r.MultipartForm.Value["tags"]; present {
		tags := formTags(r)
		patch.Tags = &tags
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		ref, err := pc.images.Save(header.Filename, file)
		if err != nil {
			writeError(w, err, pc.production)
			return
		}
		patch.Image = &ref
	}

	post, err := pc.service.Edit(r.Context(), middleware.IdentityFrom(r.Context()), id, patch)
	if err != nil {
		writeError(w, err, pc.production)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Delete handles permanent removal of a post. Admin only.
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := pc.service.Delete(r.Context(), middleware.IdentityFrom(r.Context()), id); err != nil {
		writeError(w, err, pc.production)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
}

// AdminIndex handles the moderation listing: every post regardless of
// status, newest first, annotated with owner details.
func (pc *PostController) AdminIndex(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.service.ListAdmin(r.Context(), middleware.IdentityFrom(r.Context()))
	if err != nil {
		writeError(w, err, pc.production)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"blogs": posts})
}

// Approve handles marking a post publicly visible.
func (pc *PostController) Approve(w http.ResponseWriter, r *http.Request) {
	pc.moderate(w, r, pc.service.Approve, "post approved")
}

// Reject handles marking a post rejected.
func (pc *PostController) Reject(w http.ResponseWriter, r *http.Request) {
	pc.moderate(w, r, pc.service.Reject, "post rejected")
}

func (pc *PostController) moderate(w http.ResponseWriter, r *http.Request, op func(context.Context, *auth.Identity, int) (*models.Post, error), message string) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	post, err := op(r.Context(), middleware.IdentityFrom(r.Context()), id)
	if err != nil {
		writeError(w, err, pc.production)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": message,
		"blog":    post,
	})
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid post ID"})
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, name string, fallback int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// formField reports both the value and whether the field was present,
// so partial updates can distinguish "empty" from "absent".
func formField(r *http.Request, name string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}
	values, present := r.MultipartForm.Value[name]
	if !present || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// formTags collects repeated tags fields, splitting comma-joined
// values the way browser form submissions send them.
func formTags(r *http.Request) []string {
	var tags []string
	if r.MultipartForm == nil {
		return tags
	}
	for _, raw := range r.MultipartForm.Value["tags"] {
		for _, tag := range strings.Split(raw, ",") {
			if t := strings.TrimSpace(tag); t != "" {
				tags = append(tags, t)
			}
		}
	}
	return tags
}
