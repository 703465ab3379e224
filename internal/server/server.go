// Package server answers the remote-protocol lookups that the remote client
// issues: a rep socket serving raw individual payloads out of any Storage
// backend. This is the process the client calls "the storage server".
package server

import (
	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/rep"
	_ "go.nanomsg.org/mangos/v3/transport/inproc"
	_ "go.nanomsg.org/mangos/v3/transport/tcp"

	"vstore/internal/logging"
	"vstore/internal/storage"
	"vstore/internal/wire"
)

var srvlog = logging.For("server")

// Server serves the wire protocol over one rep socket.
type Server struct {
	sock mangos.Socket
	st   storage.Storage
}

// New wraps a backend. Listen must be called before Serve.
func New(st storage.Storage) *Server {
	return &Server{st: st}
}

// Listen binds the rep socket to addr (any mangos transport URL).
func (s *Server) Listen(addr string) error {
	sock, err := rep.NewSocket()
	if err != nil {
		return err
	}
	if err := sock.Listen(addr); err != nil {
		sock.Close()
		return err
	}
	s.sock = sock
	srvlog.Info("listening", "addr", addr)
	return nil
}

// Serve answers requests until the socket is closed. One request, one reply;
// malformed requests and misses both answer with the not-found marker, so a
// confused client degrades to NotFound rather than a stuck socket.
func (s *Server) Serve() error {
	for {
		msg, err := s.sock.Recv()
		if err != nil {
			if err == mangos.ErrClosed {
				return nil
			}
			return err
		}
		if err := s.sock.Send(s.handle(msg)); err != nil {
			if err == mangos.ErrClosed {
				return nil
			}
			srvlog.Error("failed to send reply", "err", err)
		}
	}
}

func (s *Server) handle(msg []byte) []byte {
	id, key, ok := wire.ParseRequest(msg)
	if !ok {
		srvlog.Error("malformed request", "len", len(msg))
		return wire.NotFoundReply
	}
	res := s.st.GetRawValue(id, key)
	if !res.IsOk() {
		return wire.NotFoundReply
	}
	return wire.Reply(res.Value)
}

// Close shuts the socket down, unblocking Serve.
func (s *Server) Close() error {
	if s.sock == nil {
		return nil
	}
	return s.sock.Close()
}
