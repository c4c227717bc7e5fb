package ipc

import (
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/ScopeCreep-zip/open-sesame/pkg/global"
	"github.com/ScopeCreep-zip/open-sesame/pkg/paths"
)

const dialTimeout = 200 * time.Millisecond

// SendCommand delivers a command to the running instance. A dial error
// means no instance is listening, which the caller uses to decide
// whether to become the instance itself.
func SendCommand(command string) (Response, error) {
	log := global.GetLogger()

	socketPath, err := paths.SocketFile()
	if err != nil {
		return Response{}, fmt.Errorf("resolve socket path: %w", err)
	}

	conn, err := net.DialTimeout("unix", socketPath, dialTimeout)
	if err != nil {
		log.Debug("No running instance", "path", socketPath)
		return Response{}, err
	}
	defer conn.Close()

	req := Request{Command: command}
	encoder := json.NewEncoder(conn)
	if err := encoder.Encode(req); err != nil {
		log.Error("Failed to encode request", err)
		return Response{}, err
	}

	var resp Response
	decoder := json.NewDecoder(conn)
	if err := decoder.Decode(&resp); err != nil {
		log.Error("Failed to decode response", err)
		return Response{}, err
	}

	log.Debug("Response received", "status", resp.Status, "message", resp.Message)
	return resp, nil
}
