package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/coder/websocket"
	"github.com/rocketscienceinc/tictactoe-xr/internal/entity"
	"github.com/rocketscienceinc/tictactoe-xr/internal/interaction"
	"github.com/rocketscienceinc/tictactoe-xr/internal/vmath"
)

const writeTimeout = 3 * time.Second

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload is shared by requests and responses; each action uses a subset.
type Payload struct {
	SessionID string                     `json:"sessionId,omitempty"`
	Pose      *vmath.Transform           `json:"pose,omitempty"`
	Hit       *entity.HitResult          `json:"hit,omitempty"`
	Effects   []interaction.Effect       `json:"effects,omitempty"`
	Board     *entity.Board              `json:"board,omitempty"`
	Objects   []entity.InteractiveObject `json:"objects,omitempty"`
	Topic     string                     `json:"topic,omitempty"`
	Error     string                     `json:"error,omitempty"`
}

// pose fills in the identity rotation for clients that only send a position.
func (that *Payload) pose() (vmath.Transform, bool) {
	if that.Pose == nil {
		return vmath.Transform{}, false
	}

	pose := *that.Pose
	if pose.Rotation == (vmath.Quat{}) {
		pose.Rotation = vmath.Identity
	}

	return pose, true
}

func (that *connection) sendMessage(ctx context.Context, action string, payload Payload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response, err := json.Marshal(Message{Action: action, Payload: payloadBytes})
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err = that.conn.Write(ctx, websocket.MessageText, response); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *connection) sendErrorResponse(ctx context.Context, action, message string) error {
	return that.sendMessage(ctx, action, Payload{Error: message})
}
