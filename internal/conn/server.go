// Package conn is the application layer over the relational engine: a
// websocket endpoint accepting JSON-framed actions (schema creation,
// inserts and the algebra operators) from authenticated clients. The
// engine stays wire-free; everything protocol-shaped lives here.
package conn

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/linrel/linrel/internal/auth"
	"github.com/linrel/linrel/internal/relation"
	"github.com/linrel/linrel/internal/schema"
	"github.com/linrel/linrel/pkg"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 10,
	WriteBufferSize: 1024 * 10,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Server struct {
	reg   *relation.Registry
	users []*auth.User
}

func NewServer(reg *relation.Registry, users []*auth.User) *Server {
	return &Server{reg: reg, users: users}
}

// Listen serves the websocket endpoint on the given port, blocking
// until the server fails.
func (s *Server) Listen(port int) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/", s.HandleConnection)

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	pkg.InfoLog("listening on port", port)
	return errors.Wrap(srv.ListenAndServe(), "serve")
}

type WsRequest struct {
	Action Action `json:"action"`
	ReqId  int    `json:"__linrel_client_req_id__"` // used by clients to pair responses
}

type ConnRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`

	// Decl optionally carries a multi-table declaration applied on
	// connect (see schema.ParseDecl).
	Decl string `json:"decl"`
}

func (s *Server) validate(r ConnRequest) *auth.User {
	if r.Username == "" {
		return nil
	}
	for _, u := range s.users {
		if u.Name == r.Username && u.ValidatePassword(r.Password) {
			return u
		}
	}
	return nil
}

// connection deadline until the client authenticates
const authDeadline = 30 * time.Second

const maxConnAttempts = 3

func (s *Server) HandleConnection(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		pkg.ErrorLog("websocket upgrade", err)
		return
	}
	defer ws.Close()
	defer pkg.InfoLog("connection closed from", ws.RemoteAddr())

	user := s.awaitAuth(ws)
	if user == nil {
		return
	}

	for {
		_, buf, err := ws.ReadMessage()
		if err != nil {
			pkg.ErrorLog("conn read error", err)
			return
		}

		var req WsRequest
		if err := json.Unmarshal(buf, &req); err != nil {
			pkg.ErrorLog("parsing request", err)
			continue
		}

		res := ActionHandler(s.reg, req.Action, user, buf)
		res.ReqId = req.ReqId

		if err := ws.WriteMessage(websocket.TextMessage, res.Marshal()); err != nil {
			pkg.ErrorLog("writing response", err)
			return
		}
	}
}

// awaitAuth reads connect attempts until one authenticates, the
// attempt budget runs out, or the deadline passes.
func (s *Server) awaitAuth(ws *websocket.Conn) *auth.User {
	ws.SetReadDeadline(time.Now().Add(authDeadline))
	defer ws.SetReadDeadline(time.Time{})

	for attempts := 0; attempts < maxConnAttempts; attempts++ {
		_, buf, err := ws.ReadMessage()
		if err != nil {
			pkg.ErrorLog("conn read error", err)
			return nil
		}

		var r ConnRequest
		if err := json.Unmarshal(buf, &r); err != nil {
			s.writeAuthResponse(ws, NewErrorResponse(http.StatusBadRequest, err.Error()))
			continue
		}

		user := s.validate(r)
		if user == nil {
			s.writeAuthResponse(ws, NewErrorResponse(http.StatusUnauthorized, "Invalid auth"))
			continue
		}

		if r.Decl != "" {
			var declErr error
			pkg.LockWrap(s.reg, func() {
				_, declErr = schema.ParseDecl(s.reg, r.Decl)
			})
			if declErr != nil {
				s.writeAuthResponse(ws, NewErrorResponse(http.StatusBadRequest, declErr.Error()))
				return nil
			}
		}

		s.writeAuthResponse(ws, NewResponse(http.StatusOK, "connected", nil))
		return user
	}

	pkg.ErrorLog("max connection attempts reached")
	return nil
}

func (s *Server) writeAuthResponse(ws *websocket.Conn, res Response) {
	if err := ws.WriteMessage(websocket.TextMessage, res.Marshal()); err != nil {
		pkg.ErrorLog("writing response", err)
	}
}
