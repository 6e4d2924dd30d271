package live

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/pod-search/internal/ui"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// event is one browser event forwarded by the page script.
type event struct {
	Type     string      `json:"type"`
	Series   string      `json:"series,omitempty"`
	Episode  string      `json:"episode,omitempty"`
	Time     string      `json:"time,omitempty"`
	Index    int         `json:"index,omitempty"`
	Tab      string      `json:"tab,omitempty"`
	Query    string      `json:"query,omitempty"`
	Text     string      `json:"text,omitempty"`
	X        float64     `json:"x,omitempty"`
	Rect     ui.Rect     `json:"rect"`
	Popup    ui.Size     `json:"popup"`
	Viewport ui.Viewport `json:"viewport"`
	Inside   bool        `json:"inside,omitempty"`
	OK       bool        `json:"ok,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// message is sent to the browser.
type message struct {
	Type      string     `json:"type"` // "session", "patch" or "error"
	SessionID string     `json:"session_id"`
	Patches   []ui.Patch `json:"patches,omitempty"`
	Content   string     `json:"content,omitempty"`
}

// session binds one websocket to one page.
type session struct {
	id     string
	conn   *websocket.Conn
	page   *ui.Page
	logger *slog.Logger

	writeMu sync.Mutex
	closed  bool
	wg      sync.WaitGroup
}

var errSessionClosed = errors.New("session closed")

// send writes msg unless the session has ended. Timers started by the page
// (highlight and copy feedback) may still fire after that.
func (s *session) send(msg message) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.closed {
		return errSessionClosed
	}
	msg.SessionID = s.id
	if err := s.conn.WriteJSON(msg); err != nil {
		s.logger.Debug("websocket write", "err", err)
		return err
	}
	return nil
}

// close stops all further writes.
func (s *session) close() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.closed = true
}

// Emit implements ui.Emitter.
func (s *session) Emit(patches ...ui.Patch) {
	if len(patches) == 0 {
		return
	}
	s.send(message{Type: "patch", Patches: patches})
}

func (s *session) sendError(content string) {
	s.send(message{Type: "error", Content: content})
}

// async runs fn off the read loop so a slow fetch does not block input.
func (s *session) async(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn()
	}()
}

func (l *Live) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.logger.Warn("websocket upgrade", "err", err)
		return
	}
	defer conn.Close()

	s := &session{id: uuid.NewString(), conn: conn}
	s.logger = l.logger.With("session", s.id)
	page, err := l.newPage(s, s.logger)
	if err != nil {
		s.logger.Error("creating page", "err", err)
		s.sendError("could not create page")
		return
	}
	s.page = page

	l.mu.Lock()
	l.sessions[s.id] = s
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		delete(l.sessions, s.id)
		l.mu.Unlock()
	}()

	// Pending loads and searches stop when the page goes away.
	ctx, cancel := context.WithCancel(r.Context())
	defer func() {
		cancel()
		s.wg.Wait()
		s.close()
	}()

	s.send(message{Type: "session"})
	page.Setup()
	s.logger.Debug("page connected")

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read", "err", err)
			}
			return
		}

		var ev event
		if err := json.Unmarshal(raw, &ev); err != nil {
			s.sendError("invalid message format")
			continue
		}
		l.dispatch(ctx, s, ev)
	}
}

func (l *Live) dispatch(ctx context.Context, s *session, ev event) {
	page := s.page
	switch ev.Type {
	case "ready":
		page.Setup()
	case "episode":
		if ev.Series == "" || ev.Episode == "" {
			s.sendError("series and episode are required")
			return
		}
		s.async(func() { page.LoadEpisode(ctx, ev.Series, ev.Episode, ev.Time) })
	case "scroll":
		page.ScrollTo(ev.Time)
	case "toggle_series":
		if err := page.ToggleSeries(ev.Index); err != nil {
			s.sendError(err.Error())
		}
	case "tab":
		page.ActivateTab(ev.Tab)
	case "search":
		s.async(func() { page.Search(ctx, ev.Query) })
	case "mouseup":
		page.MouseUp(ev.Text, ev.X, ev.Rect, ev.Popup, ev.Viewport)
	case "mousedown":
		page.MouseDown(ev.Inside)
	case "popup_search":
		s.async(func() { page.SearchSelection(ctx) })
	case "popup_copy":
		page.CopySelection()
	case "copy_result":
		page.CopyResult(ev.OK, ev.Error)
	case "resize_start":
		page.ResizeStart(int(ev.X))
	case "resize_move":
		page.ResizeMove(int(ev.X))
	case "resize_stop":
		page.ResizeStop()
	case "reset_header":
		page.ResetHeader()
	default:
		s.sendError("unknown event type: " + ev.Type)
	}
}
