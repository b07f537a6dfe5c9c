package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"trip-planner-be/internal/constant"
	"trip-planner-be/internal/dto"
	"trip-planner-be/internal/entity"
	"trip-planner-be/internal/pkg/logger"
	"trip-planner-be/internal/repository/memory"
	"trip-planner-be/pkg/events"
	"trip-planner-be/pkg/itinerary"
	"trip-planner-be/pkg/planner"
	"trip-planner-be/pkg/reconcile"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound    = errors.New("planner session not found")
	ErrInvalidSelection   = errors.New("selection does not match any option")
	ErrGenerationInFlight = errors.New("a generation is already running for this session")
)

type IPlannerService interface {
	CreateItinerary(ctx context.Context, req *dto.CreateItineraryRequest) (*dto.SessionResponse, error)
	Regenerate(ctx context.Context, sessionId uuid.UUID, req *dto.RegenerateRequest) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, sessionId uuid.UUID) (*dto.SessionResponse, error)
	SelectTransport(ctx context.Context, sessionId uuid.UUID, req *dto.SelectTransportRequest) (*dto.SessionResponse, error)
	SelectAccommodation(ctx context.Context, sessionId uuid.UUID, req *dto.SelectAccommodationRequest) (*dto.SessionResponse, error)
	ResetSession(ctx context.Context, sessionId uuid.UUID) (*dto.SessionResponse, error)
	DeleteSession(ctx context.Context, sessionId uuid.UUID) error
}

// ItineraryGenerator turns a free-text request into one itinerary.
// *planner.Orchestrator is the production implementation.
type ItineraryGenerator interface {
	Generate(ctx context.Context, request string) (*itinerary.Document, error)
}

type plannerService struct {
	generator   ItineraryGenerator
	sessionRepo *memory.SessionRepository
	publisher   IPublisherService
	logger      logger.ILogger
	timeout     time.Duration
}

func NewPlannerService(
	generator ItineraryGenerator,
	sessionRepo *memory.SessionRepository,
	publisher IPublisherService,
	log logger.ILogger,
	timeout time.Duration,
) IPlannerService {
	return &plannerService{
		generator:   generator,
		sessionRepo: sessionRepo,
		publisher:   publisher,
		logger:      log,
		timeout:     timeout,
	}
}

func (s *plannerService) CreateItinerary(ctx context.Context, req *dto.CreateItineraryRequest) (*dto.SessionResponse, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, &planner.GenerationError{Kind: planner.ErrEmptyRequest}
	}

	doc, err := s.generate(ctx, "", prompt)
	if err != nil {
		return nil, err
	}

	engine := reconcile.NewEngine()
	engine.Seed(doc)
	session := entity.NewPlannerSession(prompt, engine)
	s.sessionRepo.Save(session)

	s.logger.Info(constant.ModulePlannerService, "Itinerary generated", map[string]interface{}{
		"session_id": session.Id,
		"title":      doc.Title,
		"base_cost":  engine.BaseCost(),
	})
	s.publish(ctx, events.TypeItineraryGenerated, session, map[string]interface{}{
		constant.EventKeyTitle:    doc.Title,
		constant.EventKeyCurrency: doc.Currency,
	})

	return toSessionResponse(session), nil
}

func (s *plannerService) Regenerate(ctx context.Context, sessionId uuid.UUID, req *dto.RegenerateRequest) (*dto.SessionResponse, error) {
	session, ok := s.sessionRepo.Get(sessionId)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !session.BeginGeneration() {
		return nil, ErrGenerationInFlight
	}
	defer session.EndGeneration()

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		prompt = session.Prompt()
	}

	doc, err := s.generate(ctx, session.Id.String(), prompt)
	if err != nil {
		// The previous itinerary and its selections stay in place.
		return nil, err
	}

	// A delete that landed while the model was working wins.
	if _, ok := s.sessionRepo.Get(sessionId); !ok {
		s.logger.Info(constant.ModulePlannerService, "Session deleted during regeneration, discarding result", map[string]interface{}{
			"session_id": sessionId,
		})
		return nil, ErrSessionNotFound
	}

	session.Engine.Seed(doc)
	session.Touch(prompt)
	s.sessionRepo.Save(session)

	s.logger.Info(constant.ModulePlannerService, "Itinerary regenerated", map[string]interface{}{
		"session_id": session.Id,
		"title":      doc.Title,
	})
	s.publish(ctx, events.TypeItineraryGenerated, session, map[string]interface{}{
		constant.EventKeyTitle:    doc.Title,
		constant.EventKeyCurrency: doc.Currency,
	})

	return toSessionResponse(session), nil
}

func (s *plannerService) GetSession(ctx context.Context, sessionId uuid.UUID) (*dto.SessionResponse, error) {
	session, ok := s.sessionRepo.Get(sessionId)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return toSessionResponse(session), nil
}

func (s *plannerService) SelectTransport(ctx context.Context, sessionId uuid.UUID, req *dto.SelectTransportRequest) (*dto.SessionResponse, error) {
	session, ok := s.sessionRepo.Get(sessionId)
	if !ok {
		return nil, ErrSessionNotFound
	}

	mode := itinerary.TransportMode(req.Mode)
	dir := itinerary.Direction(req.Direction)
	if req.Index == nil || !session.Engine.SelectTransportAt(mode, dir, *req.Index) {
		return nil, ErrInvalidSelection
	}

	s.changed(ctx, session, map[string]interface{}{
		constant.EventKeySelection: constant.SelectionTransport,
		constant.EventKeyMode:      req.Mode,
		constant.EventKeyDirection: req.Direction,
		constant.EventKeyIndex:     *req.Index,
	})
	return toSessionResponse(session), nil
}

func (s *plannerService) SelectAccommodation(ctx context.Context, sessionId uuid.UUID, req *dto.SelectAccommodationRequest) (*dto.SessionResponse, error) {
	session, ok := s.sessionRepo.Get(sessionId)
	if !ok {
		return nil, ErrSessionNotFound
	}

	if req.Index == nil || !session.Engine.SelectAccommodationAt(req.Location, *req.Index) {
		return nil, ErrInvalidSelection
	}

	s.changed(ctx, session, map[string]interface{}{
		constant.EventKeySelection: constant.SelectionAccommodation,
		constant.EventKeyLocation:  req.Location,
		constant.EventKeyIndex:     *req.Index,
	})
	return toSessionResponse(session), nil
}

func (s *plannerService) ResetSession(ctx context.Context, sessionId uuid.UUID) (*dto.SessionResponse, error) {
	session, ok := s.sessionRepo.Get(sessionId)
	if !ok {
		return nil, ErrSessionNotFound
	}

	session.Engine.Reset()
	session.Touch("")
	s.sessionRepo.Save(session)

	s.logger.Info(constant.ModulePlannerService, "Session reset", map[string]interface{}{"session_id": session.Id})
	s.publish(ctx, events.TypeSessionReset, session, nil)
	return toSessionResponse(session), nil
}

func (s *plannerService) DeleteSession(ctx context.Context, sessionId uuid.UUID) error {
	if !s.sessionRepo.Delete(sessionId) {
		return ErrSessionNotFound
	}

	s.logger.Info(constant.ModulePlannerService, "Session deleted", map[string]interface{}{"session_id": sessionId})
	s.emit(ctx, events.NewSessionEvent(events.TypeSessionDeleted, sessionId.String(), nil))
	return nil
}

func (s *plannerService) generate(ctx context.Context, sessionId, prompt string) (*itinerary.Document, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	doc, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		details := map[string]interface{}{
			"session_id":  sessionId,
			"error":       err.Error(),
			"duration_ms": time.Since(start).Milliseconds(),
		}
		var genErr *planner.GenerationError
		if errors.As(err, &genErr) {
			details["phase"] = string(genErr.Phase)
		}
		s.logger.Error(constant.ModulePlannerService, "Itinerary generation failed", details)

		// Use a fresh context: the request context may be the reason we failed.
		s.emit(context.Background(), events.NewSessionEvent(events.TypeGenerationFailed, sessionId, map[string]interface{}{
			constant.EventKeyMessage: planner.UserMessage(err),
		}))
		return nil, err
	}

	s.logger.Debug(constant.ModulePlannerService, "Generation finished", map[string]interface{}{
		"session_id":  sessionId,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return doc, nil
}

func (s *plannerService) changed(ctx context.Context, session *entity.PlannerSession, data map[string]interface{}) {
	session.Touch("")
	s.sessionRepo.Save(session)

	s.logger.Debug(constant.ModulePlannerService, "Selection changed", map[string]interface{}{
		"session_id": session.Id,
		"selection":  data,
	})
	s.publish(ctx, events.TypeSelectionChanged, session, data)
}

// publish attaches the current totals to data and emits the event.
func (s *plannerService) publish(ctx context.Context, eventType string, session *entity.PlannerSession, data map[string]interface{}) {
	payload := make(map[string]interface{}, len(data)+3)
	for k, v := range data {
		payload[k] = v
	}
	state := session.Engine.Snapshot()
	payload[constant.EventKeyBaseCost] = state.BaseCost
	payload[constant.EventKeyDerivedTotal] = state.DerivedTotal
	payload[constant.EventKeyTotalDefined] = state.TotalDefined

	s.emit(ctx, events.NewSessionEvent(eventType, session.Id.String(), payload))
}

func (s *plannerService) emit(ctx context.Context, event events.BaseEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn(constant.ModulePlannerService, "Failed to publish event", map[string]interface{}{
			"type":  event.Type,
			"error": err.Error(),
		})
	}
}

func toSessionResponse(session *entity.PlannerSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:        session.Id,
		Prompt:    session.Prompt(),
		Itinerary: session.Engine.Document(),
		Selection: session.Engine.Snapshot(),
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt(),
	}
}
