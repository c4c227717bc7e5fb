// Package ipc lets a second open-sesame invocation steer the running
// instance over a unix socket, which is how repeated Alt+Space presses
// cycle the selection.
package ipc

import (
	"encoding/json"
	"fmt"
	"net"
	"os"

	"github.com/ScopeCreep-zip/open-sesame/pkg/global"
	"github.com/ScopeCreep-zip/open-sesame/pkg/paths"
)

const (
	CommandCycleForward  = "cycle_forward"
	CommandCycleBackward = "cycle_backward"
	CommandPing          = "ping"
)

type Request struct {
	Command string `json:"command"`
}

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// CommandHandler receives validated commands from the socket.
type CommandHandler func(command string) error

// Server accepts commands from subsequent invocations.
type Server struct {
	listener net.Listener
	handler  CommandHandler
	path     string
}

// NewServer binds the instance socket. A stale socket file from a
// crashed instance is removed first.
func NewServer(handler CommandHandler) (*Server, error) {
	log := global.GetLogger()

	socketPath, err := paths.SocketFile()
	if err != nil {
		return nil, fmt.Errorf("resolve socket path: %w", err)
	}

	if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
		log.Error("Failed to remove existing socket file", err)
		return nil, fmt.Errorf("remove stale socket: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to start socket server: %w", err)
	}

	log.Info("Socket server started", "path", socketPath)
	return &Server{listener: listener, handler: handler, path: socketPath}, nil
}

// Serve accepts connections until Close. Run it on its own goroutine.
func (s *Server) Serve() {
	log := global.GetLogger()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			// Closed listener means shutdown
			return
		}

		log.Debug("New connection accepted")
		go s.handleConnection(conn)
	}
}

// Close stops the listener and removes the socket file.
func (s *Server) Close() error {
	err := s.listener.Close()
	os.Remove(s.path)
	return err
}

func (s *Server) handleConnection(conn net.Conn) {
	log := global.GetLogger()
	defer conn.Close()

	var req Request
	decoder := json.NewDecoder(conn)
	if err := decoder.Decode(&req); err != nil {
		log.Error("Failed to decode request", err)
		return
	}

	log.Debug("Received request", "command", req.Command)

	var resp Response
	switch req.Command {
	case CommandCycleForward, CommandCycleBackward:
		if err := s.handler(req.Command); err != nil {
			log.Error("Command failed", err, "command", req.Command)
			resp = Response{Status: "error", Message: err.Error()}
		} else {
			resp = Response{Status: "success", Message: "ok"}
		}
	case CommandPing:
		resp = Response{Status: "success", Message: "pong"}
	default:
		log.Error("Unknown command received", fmt.Errorf("command: %s", req.Command))
		resp = Response{Status: "error", Message: "Unknown command"}
	}

	encoder := json.NewEncoder(conn)
	if err := encoder.Encode(resp); err != nil {
		log.Error("Failed to encode response", err)
	}
}
