package tui

import "github.com/MKhiriev/go-vidshare/models"

type feedLoadedMsg struct {
	posts  []models.Post
	offset uint64
	err    error
}

type postLoadedMsg struct {
	post     models.Post
	comments []models.Comment
	err      error
}

type likeDoneMsg struct {
	state models.LikeState
	err   error
}

type commentDoneMsg struct {
	comment models.Comment
	err     error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
