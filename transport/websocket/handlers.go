package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-xr/internal/usecase"
)

func decodePayload(msg *Message) (Payload, error) {
	var payload Payload
	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payload, nil
}

func (that *Server) handleSessionStart(ctx context.Context, client *connection, msg *Message) error {
	log := that.logger.With("method", "handleSessionStart", "connectionID", client.id)

	if client.sessionID != "" {
		return client.sendErrorResponse(ctx, msg.Action, "session already started")
	}

	session, effects, err := that.uSession.Start(ctx, client.id)
	if err != nil {
		log.Error("failed to start session", "error", err)
		return client.sendErrorResponse(ctx, msg.Action, "failed to start session")
	}

	client.sessionID = session.ID
	board := session.Board()

	payload := Payload{
		SessionID: session.ID,
		Effects:   effects,
		Board:     &board,
		Objects:   session.Objects(),
		Topic:     session.Topic(),
	}

	return client.sendMessage(ctx, msg.Action, payload)
}

// handleFrame answers only when the frame changed something, so idle gaze costs no writes.
func (that *Server) handleFrame(ctx context.Context, client *connection, msg *Message) error {
	session, payloadReq, err := that.sessionFor(ctx, client, msg)
	if session == nil {
		return err
	}

	pose, ok := payloadReq.pose()
	if !ok {
		return client.sendErrorResponse(ctx, msg.Action, "pose is required")
	}

	effects := session.Frame(pose)
	if len(effects) == 0 {
		return nil
	}

	return client.sendMessage(ctx, msg.Action, Payload{SessionID: session.ID, Effects: effects})
}

func (that *Server) handleActivate(ctx context.Context, client *connection, msg *Message) error {
	session, payloadReq, err := that.sessionFor(ctx, client, msg)
	if session == nil {
		return err
	}

	effects := session.Activate(payloadReq.Hit)
	board := session.Board()

	return client.sendMessage(ctx, msg.Action, Payload{SessionID: session.ID, Effects: effects, Board: &board})
}

func (that *Server) handleRecenter(ctx context.Context, client *connection, msg *Message) error {
	session, payloadReq, err := that.sessionFor(ctx, client, msg)
	if session == nil {
		return err
	}

	pose, ok := payloadReq.pose()
	if !ok {
		return client.sendErrorResponse(ctx, msg.Action, "pose is required")
	}

	session.Recenter(pose)

	return client.sendMessage(ctx, msg.Action, Payload{SessionID: session.ID, Objects: session.Objects()})
}

func (that *Server) handleSessionEnd(ctx context.Context, client *connection, msg *Message) error {
	if client.sessionID == "" {
		return client.sendErrorResponse(ctx, msg.Action, "no active session")
	}

	sessionID := client.sessionID
	client.sessionID = ""

	effects, err := that.uSession.End(sessionID)
	if err != nil {
		that.logger.Error("failed to end session", "sessionID", sessionID, "error", err)
		return client.sendErrorResponse(ctx, msg.Action, "failed to end session")
	}

	return client.sendMessage(ctx, msg.Action, Payload{SessionID: sessionID, Effects: effects})
}

// sessionFor decodes the payload and resolves the connection's session. A nil
// session means the client was already answered with an error.
func (that *Server) sessionFor(ctx context.Context, client *connection, msg *Message) (*usecase.Session, Payload, error) {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return nil, payloadReq, client.sendErrorResponse(ctx, msg.Action, "bad payload")
	}

	if client.sessionID == "" {
		return nil, payloadReq, client.sendErrorResponse(ctx, msg.Action, "no active session")
	}

	session, err := that.uSession.Get(client.sessionID)
	if err != nil {
		return nil, payloadReq, client.sendErrorResponse(ctx, msg.Action, "session not found")
	}

	return session, payloadReq, nil
}
