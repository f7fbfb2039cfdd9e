package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
)

// handleConnect - returns the session for the supplied id, creating a fresh
// one when the id is empty or unknown. The reply carries the full snapshot
// so a reloaded page picks up its board, scoreboard and history.
func (that *Server) handleConnect(ctx context.Context, conn *websocket.Conn, msg *Message) error {
	log := that.logger.With("method", "handleConnect")

	var payloadReq SessionPayload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	sess, err := that.manager.GetOrCreateSession(ctx, payloadReq.Session.ID)
	if err != nil {
		log.Error("failed to get or create session", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to get or create session")
	}

	log.Info("session connected", "sessionID", sess.ID)

	return that.sendMessage(conn, msg.Action, newSessionPayload(sess))
}

// handleGameTurn - submits a move. An invalid move is answered with an
// error payload and the unchanged snapshot; the UI treats it as a no-op.
func (that *Server) handleGameTurn(ctx context.Context, conn *websocket.Conn, msg *Message) error {
	log := that.logger.With("method", "handleGameTurn")

	var payloadReq TurnPayload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Session.ID == "" {
		return that.sendErrorResponse(conn, msg.Action, errMissingSessionID.Error())
	}

	sess, err := that.manager.SubmitMove(ctx, payloadReq.Session.ID, payloadReq.Cell)
	if errors.Is(err, apperror.ErrInvalidMove) {
		payload := newSessionPayload(sess)
		payload.Error = err.Error()

		return that.sendMessage(conn, msg.Action, payload)
	}

	if err != nil {
		log.Error("failed to submit move", "sessionID", payloadReq.Session.ID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to submit move")
	}

	return that.sendMessage(conn, msg.Action, newSessionPayload(sess))
}

// handleNewGame - replaces the active game; history and stats survive.
func (that *Server) handleNewGame(ctx context.Context, conn *websocket.Conn, msg *Message) error {
	log := that.logger.With("method", "handleNewGame")

	var payloadReq SessionPayload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Session.ID == "" {
		return that.sendErrorResponse(conn, msg.Action, errMissingSessionID.Error())
	}

	sess, err := that.manager.StartNewGame(ctx, payloadReq.Session.ID)
	if err != nil {
		log.Error("failed to start new game", "sessionID", payloadReq.Session.ID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to start new game")
	}

	return that.sendMessage(conn, msg.Action, newSessionPayload(sess))
}

// handleResetStats - clears history and stats; an in-progress game goes on.
func (that *Server) handleResetStats(ctx context.Context, conn *websocket.Conn, msg *Message) error {
	log := that.logger.With("method", "handleResetStats")

	var payloadReq SessionPayload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Session.ID == "" {
		return that.sendErrorResponse(conn, msg.Action, errMissingSessionID.Error())
	}

	sess, err := that.manager.ResetStats(ctx, payloadReq.Session.ID)
	if err != nil {
		log.Error("failed to reset stats", "sessionID", payloadReq.Session.ID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to reset stats")
	}

	return that.sendMessage(conn, msg.Action, newSessionPayload(sess))
}

// handleEndSession - discards the stored session on UI teardown.
func (that *Server) handleEndSession(ctx context.Context, conn *websocket.Conn, msg *Message) error {
	log := that.logger.With("method", "handleEndSession")

	var payloadReq SessionPayload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Session.ID == "" {
		return that.sendErrorResponse(conn, msg.Action, errMissingSessionID.Error())
	}

	if err := that.manager.EndSession(ctx, payloadReq.Session.ID); err != nil {
		log.Error("failed to end session", "sessionID", payloadReq.Session.ID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to end session")
	}

	return that.sendMessage(conn, msg.Action, ResponsePayload{})
}
