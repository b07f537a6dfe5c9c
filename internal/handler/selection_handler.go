package handler

import (
	"context"
	"encoding/json"
	"errors"

	"trip-planner-be/internal/constant"
	"trip-planner-be/internal/dto"
	"trip-planner-be/internal/pkg/logger"
	"trip-planner-be/internal/pkg/serverutils"
	"trip-planner-be/internal/service"
	internalWS "trip-planner-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// SelectionHandler serves the live selection channel of a planner session.
// Updates reach clients through the hub once the service publishes them.
type SelectionHandler struct {
	service service.IPlannerService
	hub     *internalWS.Hub
	logger  logger.ILogger
}

func NewSelectionHandler(service service.IPlannerService, hub *internalWS.Hub, log logger.ILogger) *SelectionHandler {
	return &SelectionHandler{
		service: service,
		hub:     hub,
		logger:  log,
	}
}

// ServeWs checks the session exists, then upgrades the connection.
func (h *SelectionHandler) ServeWs(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return serverutils.NewHTTPError(fiber.StatusNotFound, "Session not found", err)
	}

	session, err := h.service.GetSession(c.UserContext(), sessionID)
	if err != nil {
		return serverutils.PlannerError(err)
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	snapshot, _ := json.Marshal(dto.WsOutboundMessage{
		Type:      constant.WsTypeSessionSnapshot,
		SessionId: sessionID.String(),
		Data:      map[string]interface{}{"session": session},
	})

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info(constant.ModuleSelectionWS, "Starting WebSocket session", map[string]interface{}{"session_id": sessionID})
		internalWS.ServeWs(h.hub, conn, sessionID.String(), snapshot, func(client *internalWS.Client, data []byte) {
			h.HandleMessage(context.Background(), client, sessionID, data)
		})
		h.logger.Info(constant.ModuleSelectionWS, "WebSocket session ended", map[string]interface{}{"session_id": sessionID})
	})(c)
}

// Replier is the part of a websocket client HandleMessage writes errors to.
type Replier interface {
	Reply(data []byte) bool
}

// HandleMessage applies one inbound selection. Successful changes are
// broadcast by the consumer; failures are answered to the sender only.
func (h *SelectionHandler) HandleMessage(ctx context.Context, client Replier, sessionID uuid.UUID, data []byte) {
	var msg dto.WsInboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		h.replyError(client, sessionID, fiber.StatusBadRequest, "Malformed message")
		return
	}

	var err error
	switch msg.Type {
	case constant.WsTypeSelectTransport:
		req := dto.SelectTransportRequest{Mode: msg.Mode, Direction: msg.Direction, Index: msg.Index}
		if err = serverutils.ValidateRequest(req); err == nil {
			_, err = h.service.SelectTransport(ctx, sessionID, &req)
		}
	case constant.WsTypeSelectAccommodation:
		req := dto.SelectAccommodationRequest{Location: msg.Location, Index: msg.Index}
		if err = serverutils.ValidateRequest(req); err == nil {
			_, err = h.service.SelectAccommodation(ctx, sessionID, &req)
		}
	case constant.WsTypeReset:
		_, err = h.service.ResetSession(ctx, sessionID)
	default:
		h.replyError(client, sessionID, fiber.StatusBadRequest, "Unknown message type")
		return
	}
	if err == nil {
		return
	}

	code, message := fiber.StatusInternalServerError, "Internal server error"
	var httpErr *serverutils.HTTPError
	if errors.As(serverutils.PlannerError(err), &httpErr) {
		code, message = httpErr.Code, httpErr.Message
	}
	h.logger.Warn(constant.ModuleSelectionWS, "Selection rejected", map[string]interface{}{
		"session_id": sessionID,
		"type":       msg.Type,
		"error":      err.Error(),
	})
	h.replyError(client, sessionID, code, message)
}

func (h *SelectionHandler) replyError(client Replier, sessionID uuid.UUID, code int, message string) {
	payload, _ := json.Marshal(dto.WsOutboundMessage{
		Type:      constant.WsTypeError,
		SessionId: sessionID.String(),
		Data:      map[string]interface{}{"code": code, "message": message},
	})
	if !client.Reply(payload) {
		h.logger.Warn(constant.ModuleSelectionWS, "Client Send buffer full, dropping error reply", map[string]interface{}{"session_id": sessionID})
	}
}

// RegisterRoutes registers the websocket route.
func (h *SelectionHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/planner/v1/sessions/:id/ws", h.ServeWs)
}
