package http

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/MKhiriev/go-vidshare/internal/service"
	"github.com/MKhiriev/go-vidshare/internal/utils"
	"github.com/MKhiriev/go-vidshare/models"
)

const (
	msgPostCreated = "Video uploaded successfully"
	msgPostDeleted = "Video deleted successfully"

	// multipartMemory is the part of an upload form kept in memory; the
	// rest spills to temporary files.
	multipartMemory = 32 << 20
)

func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	posts, err := h.services.PostService.ListPosts(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writePosts(w, posts)
}

func (h *Handler) listMyPosts(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	posts, err := h.services.PostService.ListUserPosts(r.Context(), currentUserID(r), page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writePosts(w, posts)
}

func (h *Handler) getPost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.services.PostService.GetPost(r.Context(), postID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.PostResponse{Post: post}, http.StatusOK)
}

// createPost reads a multipart form with title, description, a video file
// and an optional thumbnail. The whole request is capped at MaxUploadSize.
func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.Storage.Files.MaxUploadSize)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, service.ErrMediaTooLarge)
			return
		}
		writeError(w, r, errors.Join(ErrInvalidMultipart, err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	request := models.CreatePostRequest{
		UserID:      currentUserID(r),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}

	video, closeVideo, err := formUpload(r, "video", models.MediaVideo)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer closeVideo()
	request.Video = video

	thumbnail, closeThumbnail, err := formUpload(r, "thumbnail", models.MediaThumbnail)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer closeThumbnail()
	request.Thumbnail = thumbnail

	post, err := h.services.PostService.CreatePost(r.Context(), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.PostResponse{Message: msgPostCreated, Post: post}, http.StatusCreated)
}

func (h *Handler) updatePost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var request models.UpdatePostRequest
	if err = decodeJSON(w, r, &request); err != nil {
		writeError(w, r, err)
		return
	}
	request.PostID = postID
	request.UserID = currentUserID(r)

	post, err := h.services.PostService.UpdatePost(r.Context(), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.PostResponse{Post: post}, http.StatusOK)
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.PostService.DeletePost(r.Context(), postID, currentUserID(r)); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, msgPostDeleted, http.StatusOK)
}

func (h *Handler) listComments(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	comments, err := h.services.PostService.ListComments(r.Context(), postID, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	utils.WriteJSON(w, models.CommentsResponse{Comments: comments, Count: len(comments)}, http.StatusOK)
}

func (h *Handler) addComment(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var request models.CreateCommentRequest
	if err = decodeJSON(w, r, &request); err != nil {
		writeError(w, r, err)
		return
	}
	request.PostID = postID
	request.UserID = currentUserID(r)

	comment, err := h.services.PostService.AddComment(r.Context(), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.CommentResponse{Comment: comment}, http.StatusCreated)
}

func (h *Handler) toggleLike(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	state, err := h.services.PostService.ToggleLike(r.Context(), postID, currentUserID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, state, http.StatusOK)
}

func writePosts(w http.ResponseWriter, posts []models.Post) {
	if posts == nil {
		posts = []models.Post{}
	}
	utils.WriteJSON(w, models.PostsResponse{Posts: posts, Count: len(posts)}, http.StatusOK)
}

// formUpload opens an uploaded file. A missing field yields a nil upload
// and a no-op close.
func formUpload(r *http.Request, field string, kind models.MediaKind) (*models.MediaUpload, func(), error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, errors.Join(ErrInvalidMultipart, err)
	}

	return newMediaUpload(file, header, kind), func() { _ = file.Close() }, nil
}

func newMediaUpload(file multipart.File, header *multipart.FileHeader, kind models.MediaKind) *models.MediaUpload {
	return &models.MediaUpload{
		Kind:        kind,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}
}
