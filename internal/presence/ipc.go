package presence

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/genricoloni/mpcpresence/internal/domain"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type opcode uint32

const (
	opHandshake opcode = 0
	opFrame     opcode = 1
	opClose     opcode = 2
	opPing      opcode = 3
	opPong      opcode = 4
)

const (
	ipcVersion       = 1
	maxFrameSize     = 64 * 1024
	defaultIOTimeout = 5 * time.Second
	maxTextLen       = 128
	activityWatching = 3
)

// ErrClosedByPeer is returned when Discord closes the IPC session
var ErrClosedByPeer = errors.New("ipc closed by peer")

// RPCError is an ERROR event returned by Discord for a command
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("discord rpc error %d: %s", e.Code, e.Message)
}

type handshakePayload struct {
	Version  int    `json:"v"`
	ClientID string `json:"client_id"`
}

type commandPayload struct {
	Cmd   string `json:"cmd"`
	Args  any    `json:"args,omitempty"`
	Nonce string `json:"nonce"`
}

type responsePayload struct {
	Cmd   string          `json:"cmd"`
	Evt   string          `json:"evt"`
	Nonce string          `json:"nonce"`
	Data  json.RawMessage `json:"data"`
}

type setActivityArgs struct {
	PID      int              `json:"pid"`
	Activity *activityPayload `json:"activity,omitempty"`
}

type activityPayload struct {
	Type       int             `json:"type"`
	Details    string          `json:"details,omitempty"`
	State      string          `json:"state,omitempty"`
	Timestamps *activityTimes  `json:"timestamps,omitempty"`
	Assets     *activityAssets `json:"assets,omitempty"`
}

type activityTimes struct {
	Start int64 `json:"start"`
}

type activityAssets struct {
	LargeImage string `json:"large_image,omitempty"`
	LargeText  string `json:"large_text,omitempty"`
}

// IPCConn is one handshaken session over the Discord IPC socket
type IPCConn struct {
	mu       sync.Mutex
	conn     net.Conn
	clientID string
	pid      int
}

// Dial connects to the first Discord IPC socket that accepts a handshake
func Dial(ctx context.Context, clientID string) (*IPCConn, error) {
	var lastErr error
	for _, path := range ipcPaths() {
		conn, err := dialSocket(ctx, path)
		if err != nil {
			lastErr = err
			continue
		}

		c := newIPCConn(conn, clientID)
		if err := c.handshake(ctx); err != nil {
			_ = conn.Close()
			lastErr = fmt.Errorf("handshake on %s: %w", path, err)
			continue
		}
		return c, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no ipc socket candidates")
	}
	return nil, fmt.Errorf("discord ipc unavailable: %w", lastErr)
}

func newIPCConn(conn net.Conn, clientID string) *IPCConn {
	return &IPCConn{conn: conn, clientID: clientID, pid: os.Getpid()}
}

// SetActivity replaces the displayed activity
func (c *IPCConn) SetActivity(ctx context.Context, activity *domain.Activity) error {
	return c.command(ctx, "SET_ACTIVITY", setActivityArgs{PID: c.pid, Activity: toPayload(activity)})
}

// ClearActivity removes the displayed activity
func (c *IPCConn) ClearActivity(ctx context.Context) error {
	return c.command(ctx, "SET_ACTIVITY", setActivityArgs{PID: c.pid})
}

// Close sends a close frame (best effort) and closes the socket
func (c *IPCConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(time.Second))
	_ = c.writeFrame(opClose, map[string]any{})
	return c.conn.Close()
}

func (c *IPCConn) handshake(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	release := c.bind(ctx)
	defer release()

	if err := c.writeFrame(opHandshake, handshakePayload{Version: ipcVersion, ClientID: c.clientID}); err != nil {
		return err
	}

	op, data, err := c.readFrame()
	if err != nil {
		return err
	}
	if op == opClose {
		return closeError(data)
	}

	var resp responsePayload
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("invalid handshake response: %w", err)
	}
	if resp.Cmd != "DISPATCH" || resp.Evt != "READY" {
		return fmt.Errorf("unexpected handshake response %s/%s", resp.Cmd, resp.Evt)
	}
	return nil
}

func (c *IPCConn) command(ctx context.Context, cmd string, args any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	release := c.bind(ctx)
	defer release()

	nonce := uuid.NewString()
	if err := c.writeFrame(opFrame, commandPayload{Cmd: cmd, Args: args, Nonce: nonce}); err != nil {
		return err
	}

	for {
		op, data, err := c.readFrame()
		if err != nil {
			return err
		}

		switch op {
		case opPing:
			if err := c.writeRaw(opPong, data); err != nil {
				return err
			}
			continue
		case opClose:
			return closeError(data)
		case opFrame:
		default:
			continue
		}

		var resp responsePayload
		if err := json.Unmarshal(data, &resp); err != nil {
			return fmt.Errorf("invalid response: %w", err)
		}
		if resp.Nonce != nonce {
			continue
		}
		if resp.Evt == "ERROR" {
			rpcErr := &RPCError{}
			if err := json.Unmarshal(resp.Data, rpcErr); err != nil {
				rpcErr.Message = string(resp.Data)
			}
			return rpcErr
		}
		return nil
	}
}

// bind applies ctx to socket I/O: its deadline, or the default timeout, and cancellation
func (c *IPCConn) bind(ctx context.Context) func() {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultIOTimeout)
	}
	_ = c.conn.SetDeadline(deadline)

	fired := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		defer close(fired)
		_ = c.conn.SetDeadline(time.Unix(1, 0))
	})
	return func() {
		if !stop() {
			// The callback already started; let it finish before resetting
			<-fired
		}
		_ = c.conn.SetDeadline(time.Time{})
	}
}

func (c *IPCConn) writeFrame(op opcode, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	return c.writeRaw(op, data)
}

func (c *IPCConn) writeRaw(op opcode, data []byte) error {
	buf := make([]byte, 8+len(data))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(op))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(data)))
	copy(buf[8:], data)

	if _, err := c.conn.Write(buf); err != nil {
		return fmt.Errorf("ipc write failed: %w", err)
	}
	return nil
}

func (c *IPCConn) readFrame() (opcode, []byte, error) {
	var header [8]byte
	if _, err := io.ReadFull(c.conn, header[:]); err != nil {
		return 0, nil, fmt.Errorf("ipc read failed: %w", err)
	}

	op := opcode(binary.LittleEndian.Uint32(header[0:4]))
	size := binary.LittleEndian.Uint32(header[4:8])
	if size > maxFrameSize {
		return 0, nil, fmt.Errorf("ipc frame too large: %d bytes", size)
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(c.conn, data); err != nil {
		return 0, nil, fmt.Errorf("ipc read failed: %w", err)
	}
	return op, data, nil
}

func closeError(data []byte) error {
	var reason RPCError
	if err := json.Unmarshal(data, &reason); err == nil && reason.Message != "" {
		return fmt.Errorf("%w: %s (%d)", ErrClosedByPeer, reason.Message, reason.Code)
	}
	return ErrClosedByPeer
}

func toPayload(a *domain.Activity) *activityPayload {
	p := &activityPayload{
		Type:    activityWatching,
		Details: fitText(a.Details),
		State:   fitText(a.State),
	}
	if !a.StartedAt.IsZero() {
		p.Timestamps = &activityTimes{Start: a.StartedAt.UnixMilli()}
	}
	if a.LargeImage != "" {
		text := a.LargeText
		if text == "" {
			text = a.Details
		}
		p.Assets = &activityAssets{LargeImage: a.LargeImage, LargeText: fitText(text)}
	}
	return p
}

// fitText enforces Discord's 2..128 character limit on text fields
func fitText(s string) string {
	n := utf8.RuneCountInString(s)
	switch {
	case n == 0:
		return ""
	case n == 1:
		return s + " "
	case n > maxTextLen:
		runes := []rune(s)
		return string(runes[:maxTextLen-3]) + "..."
	default:
		return s
	}
}
