package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-vidshare/internal/adapter"
	"github.com/MKhiriev/go-vidshare/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenFeed screen = iota
	screenPost
	screenComment
)

const commentsPerPost = 50

type browserModel struct {
	ctx      context.Context
	api      adapter.ServerAdapter
	baseURL  string
	pageSize uint64
	clip     func(string) error

	screen  screen
	posts   []models.Post
	idx     int
	more    bool
	loading bool
	spinner spinner.Model

	post     models.Post
	comments []models.Comment
	input    textinput.Model

	status string
	err    error
}

func newBrowserModel(ctx context.Context, api adapter.ServerAdapter, baseURL string, pageSize uint64) browserModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	in := textinput.New()
	in.Placeholder = "say something nice"
	in.CharLimit = 1000
	in.Width = 60

	return browserModel{
		ctx:      ctx,
		api:      api,
		baseURL:  strings.TrimRight(baseURL, "/"),
		pageSize: pageSize,
		clip:     func(string) error { return errors.New("clipboard is not available") },
		loading:  true,
		spinner:  s,
		input:    in,
	}
}

func (m browserModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdLoadFeed(0))
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case feedLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		if msg.offset == 0 {
			m.posts = msg.posts
			m.idx = 0
		} else {
			m.posts = append(m.posts, msg.posts...)
		}
		m.more = uint64(len(msg.posts)) == m.pageSize
		return m, nil
	case postLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.post = msg.post
		m.comments = msg.comments
		m.screen = screenPost
		m.syncFeedItem()
		return m, nil
	case likeDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.post.LikesCount = msg.state.Likes
		m.syncFeedItem()
		m.status = "Like removed"
		if msg.state.Liked {
			m.status = "Liked"
		}
		return m, cmdClearStatus()
	case commentDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.comments = append(m.comments, msg.comment)
		m.post.CommentsCount++
		m.syncFeedItem()
		m.screen = screenPost
		m.status = "Comment posted"
		return m, cmdClearStatus()
	case copiedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("copy link: %w", msg.err)
			return m, nil
		}
		m.status = "Video link copied"
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	if m.screen == screenComment {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m browserModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.screen {
	case screenComment:
		return m.updateComment(msg)
	case screenPost:
		return m.updatePost(msg)
	default:
		return m.updateFeed(msg)
	}
}

func (m browserModel) updateFeed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.posts)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.refresh):
		m.loading = true
		return m, m.cmdLoadFeed(0)
	case key.Matches(msg, keys.more):
		if !m.more || m.loading {
			return m, nil
		}
		m.loading = true
		return m, m.cmdLoadFeed(uint64(len(m.posts)))
	case key.Matches(msg, keys.enter):
		post, ok := m.current()
		if !ok || m.loading {
			return m, nil
		}
		m.loading = true
		return m, m.cmdLoadPost(post.ID)
	}
	return m, nil
}

func (m browserModel) updatePost(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.esc):
		m.screen = screenFeed
		m.err = nil
	case key.Matches(msg, keys.like):
		return m, m.cmdToggleLike(m.post.ID)
	case key.Matches(msg, keys.comment):
		m.screen = screenComment
		m.input.Reset()
		return m, m.input.Focus()
	case key.Matches(msg, keys.copy):
		return m, m.cmdCopy(m.mediaURL(m.post.VideoURL))
	}
	return m, nil
}

func (m browserModel) updateComment(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.input.Blur()
		m.screen = screenPost
		return m, nil
	case key.Matches(msg, keys.enter):
		content := strings.TrimSpace(m.input.Value())
		if content == "" {
			return m, nil
		}
		m.input.Blur()
		return m, m.cmdAddComment(m.post.ID, content)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m browserModel) current() (models.Post, bool) {
	if len(m.posts) == 0 || m.idx < 0 || m.idx >= len(m.posts) {
		return models.Post{}, false
	}
	return m.posts[m.idx], true
}

// syncFeedItem copies the counters of the open post back into the feed.
func (m *browserModel) syncFeedItem() {
	for i := range m.posts {
		if m.posts[i].ID == m.post.ID {
			m.posts[i] = m.post
			return
		}
	}
}

func (m browserModel) mediaURL(path string) string {
	if path == "" || !strings.HasPrefix(path, "/") {
		return path
	}
	return m.baseURL + path
}

func (m browserModel) cmdLoadFeed(offset uint64) tea.Cmd {
	return func() tea.Msg {
		posts, err := m.api.ListPosts(m.ctx, models.Page{Limit: m.pageSize, Offset: offset})
		return feedLoadedMsg{posts: posts, offset: offset, err: err}
	}
}

func (m browserModel) cmdLoadPost(id int64) tea.Cmd {
	return func() tea.Msg {
		post, err := m.api.GetPost(m.ctx, id)
		if err != nil {
			return postLoadedMsg{err: err}
		}
		comments, err := m.api.ListComments(m.ctx, id, models.Page{Limit: commentsPerPost})
		return postLoadedMsg{post: post, comments: comments, err: err}
	}
}

func (m browserModel) cmdToggleLike(id int64) tea.Cmd {
	return func() tea.Msg {
		state, err := m.api.ToggleLike(m.ctx, id)
		return likeDoneMsg{state: state, err: err}
	}
}

func (m browserModel) cmdAddComment(id int64, content string) tea.Cmd {
	return func() tea.Msg {
		comment, err := m.api.AddComment(m.ctx, id, content)
		return commentDoneMsg{comment: comment, err: err}
	}
}

func (m browserModel) cmdCopy(text string) tea.Cmd {
	clip := m.clip
	return func() tea.Msg {
		return copiedMsg{err: clip(text)}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func errorText(err error) string {
	switch {
	case errors.Is(err, adapter.ErrNotAuthenticated), errors.Is(err, adapter.ErrUnauthorized):
		return "Log in first: client login, then export VIDSHARE_TOKEN"
	case errors.Is(err, adapter.ErrNotFound):
		return "The video was removed"
	default:
		return err.Error()
	}
}

func (m browserModel) View() string {
	var (
		title, body, help string
	)

	switch m.screen {
	case screenPost:
		title, body, help = m.post.Title, m.postView(), "l like  c comment  y copy link  esc back"
	case screenComment:
		title = "Comment on " + fitText(m.post.Title, 40)
		body = m.input.View()
		help = "enter post  esc cancel"
	default:
		title, body, help = "VidShare", m.feedView(), "enter open  r refresh  m more"
	}

	if m.loading {
		title += "  " + m.spinner.View()
	}
	if m.status != "" {
		body += "\n" + m.status + "\n"
	}
	if m.err != nil {
		body += "\n" + errorStyle.Render("Error: "+errorText(m.err)) + "\n"
	}

	return renderPage(title, body, help)
}

func (m browserModel) feedView() string {
	if len(m.posts) == 0 {
		if m.loading {
			return "Loading...\n"
		}
		return "No videos yet\n"
	}

	var b strings.Builder
	for i, p := range m.posts {
		line := fmt.Sprintf("%-42s %-16s %4d likes %4d comments",
			fitText(p.Title, 42), fitText(valueOrDash(p.AuthorName), 16), p.LikesCount, p.CommentsCount)
		if i == m.idx {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	if m.more {
		b.WriteString(helpStyle.Render("  more with m") + "\n")
	}
	return b.String()
}

func (m browserModel) postView() string {
	var b strings.Builder
	fmt.Fprintf(&b, "By:       %s\n", valueOrDash(m.post.AuthorName))
	fmt.Fprintf(&b, "Uploaded: %s\n", m.post.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Views:    %d   Likes: %d   Comments: %d\n", m.post.Views, m.post.LikesCount, m.post.CommentsCount)
	fmt.Fprintf(&b, "Video:    %s\n\n", m.mediaURL(m.post.VideoURL))
	b.WriteString(valueOrDash(m.post.Description))
	b.WriteString("\n\n")

	if len(m.comments) == 0 {
		b.WriteString("No comments\n")
		return b.String()
	}
	for _, c := range m.comments {
		fmt.Fprintf(&b, "%s: %s\n", valueOrDash(c.AuthorName), c.Content)
	}
	return b.String()
}
