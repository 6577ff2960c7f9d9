package socket

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/events"
	"github.com/DedS3t/monopoly-engine/platform/session"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// EventName is the socket event an engine event is broadcast as.
func EventName(t events.Type) string {
	switch t {
	case events.TurnStarted:
		return "change-turn"
	case events.GameStarted:
		return "game-start"
	case events.GameEnded:
		return "game-over"
	}
	return strings.ReplaceAll(strings.ToLower(t.String()), "_", "-")
}

type joinMessage struct {
	GameID string `json:"game_id"`
	UserID string `json:"user_id"`
}

type stepMessage struct {
	GameID string `json:"game_id"`
	models.StepDto
}

// Server relays sessions over socket.io. Each joined session gets one bus
// subscription that broadcasts to the room named by the session id.
type Server struct {
	io       *socketio.Server
	sessions *session.Manager
	log      logrus.FieldLogger

	mu       sync.Mutex
	forwards map[string]int
}

func New(sessions *session.Manager, log logrus.FieldLogger) (*Server, error) {
	server, err := socketio.NewServer(nil)
	if err != nil {
		return nil, err
	}
	s := &Server{io: server, sessions: sessions, log: log, forwards: make(map[string]int)}

	server.OnConnect("/", func(c socketio.Conn) error {
		c.SetContext("")
		return nil
	})
	server.OnEvent("/", "join-game", s.join)
	server.OnEvent("/", "step", s.step)
	server.OnEvent("/", "leave-game", func(c socketio.Conn, msg string) {
		var m joinMessage
		if err := json.Unmarshal([]byte(msg), &m); err != nil || m.GameID == "" {
			c.Emit("error-message", "game_id is required")
			return
		}
		c.Leave(m.GameID)
		server.BroadcastToRoom("/", m.GameID, "player-left", m.UserID)
	})
	server.OnError("/", func(c socketio.Conn, e error) {
		log.WithError(e).Warn("socket error")
	})
	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		for _, room := range c.Rooms() {
			server.BroadcastToRoom("/", room, "player-left")
		}
		c.LeaveAll()
	})
	return s, nil
}

func (s *Server) join(c socketio.Conn, msg string) {
	var m joinMessage
	if err := json.Unmarshal([]byte(msg), &m); err != nil {
		c.Emit("error-message", "Invalid message")
		return
	}
	sess, err := s.sessions.Get(m.GameID)
	if err != nil {
		c.Emit("error-message", "Invalid game")
		c.Emit("failed")
		return
	}
	s.forward(sess)

	s.io.BroadcastToRoom("/", sess.ID, "player-join", m.UserID)
	c.Join(sess.ID)
	c.Emit("joined-game", s.io.RoomLen("/", sess.ID))
	s.emitJSON(c, "game-state", sess.Snapshot())
	s.log.WithFields(logrus.Fields{"game": sess.ID, "conn": c.ID()}).Debug("joined room")
}

func (s *Server) step(c socketio.Conn, msg string) {
	var m stepMessage
	if err := json.Unmarshal([]byte(msg), &m); err != nil {
		c.Emit("error-message", "Invalid message")
		return
	}
	sess, err := s.sessions.Get(m.GameID)
	if err != nil {
		c.Emit("error-message", "Invalid game")
		return
	}
	in, err := session.InputFrom(m.StepDto)
	if err != nil {
		c.Emit("error-message", err.Error())
		return
	}
	res, err := sess.Step(m.PlayerId, in)
	if err != nil {
		c.Emit("error-message", err.Error())
		return
	}
	s.emitJSON(c, "step-result", res)
}

// forward subscribes once per session.
func (s *Server) forward(sess *session.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.forwards[sess.ID]; ok {
		return
	}
	room := sess.ID
	s.forwards[room] = sess.Bus().SubscribeAll(func(e events.Event) {
		data, err := json.Marshal(e.Payload)
		if err != nil {
			s.log.WithError(err).WithField("event", e.Type.String()).Warn("event not encoded")
			return
		}
		s.io.BroadcastToRoom("/", room, EventName(e.Type), string(data))
	})
}

// Forget drops the forwarding of a finished or removed session.
func (s *Server) Forget(sess *session.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.forwards[sess.ID]; ok {
		sess.Bus().Unsubscribe(h)
		delete(s.forwards, sess.ID)
	}
}

func (s *Server) emitJSON(c socketio.Conn, event string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		c.Emit("error-message", "encoding failed")
		return
	}
	c.Emit(event, string(data))
}

// Handler serves socket.io under /socket.io/ with CORS for origins.
func (s *Server) Handler(origins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
	})
	mux := http.NewServeMux()
	mux.Handle("/socket.io/", s.io)
	return c.Handler(mux)
}

func (s *Server) Serve() error { return s.io.Serve() }

func (s *Server) Close() error { return s.io.Close() }
