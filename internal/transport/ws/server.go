// Package ws serves environments over websockets: one connection drives
// one private environment instance through HELLO / RESET / STEP.
package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"gridverse.ai/internal/env"
	"gridverse.ai/internal/protocol"
	"gridverse.ai/internal/registry"
	"gridverse.ai/internal/repr"
)

const (
	writeTimeout = 5 * time.Second
	readTimeout  = 60 * time.Second
)

type Server struct {
	reg *registry.Registry
	log *log.Logger

	upgrader websocket.Upgrader
}

func NewServer(reg *registry.Registry, logger *log.Logger) *Server {
	return &Server{
		reg: reg,
		log: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		sess := s.handshake(conn)
		if sess == nil {
			return
		}
		s.serve(conn, sess)
	}
}

type session struct {
	env  *env.OuterEnv
	name string
}

func (s *Server) handshake(conn *websocket.Conn) *session {
	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return nil
	}
	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil || hello.Type != protocol.TypeHello {
		s.sendErr(conn, protocol.ErrProtoBadRequest, "expected HELLO")
		return nil
	}
	if hello.Env == "" {
		s.sendErr(conn, protocol.ErrProtoBadRequest, "HELLO without env name")
		return nil
	}

	inner, err := s.reg.Build(hello.Env)
	if err != nil {
		s.sendErr(conn, protocol.ErrUnknownEnv, err.Error())
		return nil
	}
	if hello.Seed != nil {
		inner.SetSeed(*hello.Seed)
	}

	repName := hello.ObservationRep
	if repName == "" {
		repName = repr.NameDefault
	}
	obsRep, err := repr.NewObservationRepresentation(repName, inner.Space().Observation)
	if err != nil {
		s.sendErr(conn, protocol.ErrUnknownRep, err.Error())
		return nil
	}
	outer := env.NewOuterEnv(inner, nil, obsRep)

	welcome := protocol.WelcomeMsg{
		Type:             protocol.TypeWelcome,
		ProtocolVersion:  protocol.Version,
		Env:              hello.Env,
		NumActions:       outer.NumActions(),
		ObservationRep:   repName,
		ObservationSpace: boundsMsgs(outer.ObservationSpace()),
	}
	if !s.send(conn, welcome) {
		return nil
	}
	s.log.Printf("session open env=%s rep=%s", hello.Env, repName)
	return &session{env: outer, name: hello.Env}
}

func (s *Server) serve(conn *websocket.Conn, sess *session) {
	for {
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			s.log.Printf("session closed env=%s: %v", sess.name, err)
			return
		}
		base, err := protocol.DecodeBase(msg)
		if err != nil {
			s.sendErr(conn, protocol.ErrProtoBadRequest, "malformed message")
			continue
		}
		switch base.Type {
		case protocol.TypeReset:
			obs, err := sess.env.Reset()
			if err != nil {
				s.sendErr(conn, protocol.ErrInternal, err.Error())
				continue
			}
			s.send(conn, protocol.ObsMsg{Type: protocol.TypeObs, Observation: arrayMsgs(obs)})

		case protocol.TypeStep:
			var step protocol.StepMsg
			if err := json.Unmarshal(msg, &step); err != nil {
				s.sendErr(conn, protocol.ErrProtoBadRequest, "malformed STEP")
				continue
			}
			reward, done, err := sess.env.Step(step.Action)
			if err != nil {
				s.sendErr(conn, stepErrCode(err), err.Error())
				continue
			}
			obs, err := sess.env.Observation()
			if err != nil {
				s.sendErr(conn, protocol.ErrInternal, err.Error())
				continue
			}
			s.send(conn, protocol.StepResultMsg{
				Type:        protocol.TypeStepResult,
				Reward:      reward,
				Done:        done,
				Observation: arrayMsgs(obs),
			})

		default:
			s.sendErr(conn, protocol.ErrProtoBadRequest, fmt.Sprintf("unexpected message type %q", base.Type))
		}
	}
}

func stepErrCode(err error) string {
	if errors.Is(err, env.ErrResetRequired) {
		return protocol.ErrResetRequired
	}
	return protocol.ErrBadAction
}

func (s *Server) send(conn *websocket.Conn, v any) bool {
	b, err := json.Marshal(v)
	if err != nil {
		return false
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, b) == nil
}

func (s *Server) sendErr(conn *websocket.Conn, code, message string) {
	s.send(conn, protocol.ErrMsg{Type: protocol.TypeErr, Code: code, Message: message})
}

func arrayMsgs(arrays map[string]repr.Array) map[string]protocol.ArrayMsg {
	out := make(map[string]protocol.ArrayMsg, len(arrays))
	for name, a := range arrays {
		out[name] = protocol.ArrayMsg{Shape: a.Shape, Data: a.Data}
	}
	return out
}

func boundsMsgs(space repr.Space) map[string]protocol.BoundsMsg {
	out := make(map[string]protocol.BoundsMsg, len(space))
	for name, b := range space {
		out[name] = protocol.BoundsMsg{Shape: b.Shape, Low: b.Low, High: b.High}
	}
	return out
}
