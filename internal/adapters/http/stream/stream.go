// Package stream serves live playback sessions over websockets. Each
// connection owns one animation controller; every controller entry point
// runs on the session's work loop, which is the single logical thread the
// controller requires.
package stream

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/michael-fp/fp-chopped/internal/anim"
	"github.com/michael-fp/fp-chopped/internal/domain/view"
	"github.com/michael-fp/fp-chopped/internal/render"
	"github.com/michael-fp/fp-chopped/pkg/logger"
	"github.com/michael-fp/fp-chopped/pkg/metrics"
)

const (
	defaultFrameInterval = 33 * time.Millisecond
	defaultWriteTimeout  = 5 * time.Second
	workQueueSize        = 16
)

// ControllerFactory builds a playback controller over a league's current
// timelines. The app service satisfies this.
type ControllerFactory interface {
	NewController(ctx context.Context, leagueID string, sink anim.Sink, sched anim.Scheduler, opts ...anim.Option) (*anim.Controller, *render.Composer, error)
}

// Handler upgrades HTTP requests into playback sessions.
type Handler struct {
	factory      ControllerFactory
	upgrader     websocket.Upgrader
	interval     time.Duration
	writeTimeout time.Duration
	log          logger.Logger
}

// NewHandler creates a stream handler with configuration options.
func NewHandler(factory ControllerFactory, opts ...Option) *Handler {
	h := &Handler{
		factory:      factory,
		interval:     defaultFrameInterval,
		writeTimeout: defaultWriteTimeout,
		log:          logger.Named("stream"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleStream handles GET /stream?league={id} requests.
func (h *Handler) HandleStream(w http.ResponseWriter, r *http.Request) {
	leagueID := r.URL.Query().Get("league")
	if leagueID == "" {
		http.Error(w, "missing league parameter", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn(r.Context(), "websocket upgrade failed", logger.Error(err))
		return
	}

	s := &session{
		conn:         conn,
		leagueID:     leagueID,
		interval:     h.interval,
		writeTimeout: h.writeTimeout,
		work:         make(chan func(), workQueueSize),
		done:         make(chan struct{}),
		log:          h.log,
	}

	ctrl, composer, err := h.factory.NewController(r.Context(), leagueID, s, s)
	if err != nil {
		h.log.Warn(r.Context(), "session setup failed",
			logger.String("league", leagueID), logger.Error(err))
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "unknown league"),
			time.Now().Add(h.writeTimeout))
		_ = conn.Close()
		return
	}
	s.ctrl = ctrl
	s.composer = composer

	metrics.IncStreamSessions()
	defer metrics.DecStreamSessions()

	s.run(r.Context())
}

// command is the client-to-server control message.
type command struct {
	Cmd      string  `json:"cmd"`
	Progress float64 `json:"progress"`
	Scope    string  `json:"scope"`
	Status   string  `json:"status"`
	Team     string  `json:"team"`
}

// session binds one websocket connection to one controller. It implements
// both anim.Sink and anim.Scheduler; frame callbacks and client commands
// are funneled through the work channel so the controller only ever runs
// on the loop goroutine.
type session struct {
	conn     *websocket.Conn
	leagueID string

	ctrl     *anim.Controller
	composer *render.Composer

	interval     time.Duration
	writeTimeout time.Duration

	work chan func()
	done chan struct{}
	once sync.Once

	playing bool

	log logger.Logger
}

// RequestFrame implements anim.Scheduler: the next tick fires after one
// frame interval, on the session loop.
func (s *session) RequestFrame(fn func()) (cancel func()) {
	t := time.AfterFunc(s.interval, func() { s.post(fn) })
	return func() { t.Stop() }
}

// RenderFrame implements anim.Sink. It is only invoked from the session
// loop, so connection writes never race.
func (s *session) RenderFrame(f anim.Frame) {
	start := time.Now()
	out := s.composer.Compose(f)
	metrics.RecordFrameComposed(float64(time.Since(start).Microseconds()) / 1000.0)

	_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	if err := s.conn.WriteJSON(out); err != nil {
		s.close()
		return
	}

	if f.State == anim.Idle && f.Progress >= 1 && s.playing {
		s.playing = false
		metrics.RecordPlaybackCompleted()
	}
}

func (s *session) run(ctx context.Context) {
	defer func() {
		s.ctrl.Dispose()
		_ = s.conn.Close()
	}()

	go s.readLoop()

	// Push the current (idle) frame so a fresh viewer sees the chart
	// before pressing play.
	s.ctrl.RenderCurrent()

	for {
		select {
		case fn := <-s.work:
			fn()
		case <-s.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *session) readLoop() {
	for {
		var cmd command
		if err := s.conn.ReadJSON(&cmd); err != nil {
			s.close()
			return
		}
		c := cmd
		s.post(func() { s.apply(c) })
	}
}

func (s *session) apply(cmd command) {
	switch cmd.Cmd {
	case "start":
		if s.ctrl.Start() {
			s.playing = true
			metrics.RecordPlaybackStarted()
		}
	case "pause":
		s.ctrl.Pause()
	case "resume":
		if s.ctrl.Resume(cmd.Progress) {
			s.playing = true
		}
	case "scrub":
		if s.ctrl.State() == anim.Playing {
			s.ctrl.Pause()
			s.ctrl.Resume(cmd.Progress)
		} else {
			// Reposition without leaving the paused state.
			s.ctrl.Resume(cmd.Progress)
			s.ctrl.Pause()
			s.ctrl.RenderCurrent()
		}
	case "filters":
		s.ctrl.SetFilters(parseScope(cmd.Scope), s.leagueID, parseStatus(cmd.Status))
	case "focus":
		s.ctrl.SetFocus(cmd.Team)
	default:
		s.log.Warn(context.Background(), "unknown stream command",
			logger.String("cmd", cmd.Cmd))
	}
}

func (s *session) post(fn func()) {
	select {
	case s.work <- fn:
	case <-s.done:
	}
}

func (s *session) close() {
	s.once.Do(func() { close(s.done) })
}

func parseScope(raw string) view.Scope {
	if raw == string(view.ScopeAll) {
		return view.ScopeAll
	}
	return view.ScopeLeague
}

func parseStatus(raw string) view.StatusFilter {
	switch raw {
	case string(view.StatusRemaining):
		return view.StatusRemaining
	case string(view.StatusChopped):
		return view.StatusChopped
	default:
		return view.StatusAll
	}
}
