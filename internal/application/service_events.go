package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/contracts"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/domain"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/ports"
	"go.opentelemetry.io/otel/trace"
)

const timeFormat = time.RFC3339

// enqueueEvent writes a canonical envelope to the outbox. The state change it
// describes is already committed, so a failed enqueue is logged, not returned.
func (s *Service) enqueueEvent(ctx context.Context, actor Actor, eventType, campaignID string, data any) {
	if s.outbox == nil {
		return
	}
	if err := s.writeOutbox(ctx, eventType, campaignID, data); err != nil {
		s.logger.ErrorContext(ctx, "outbox enqueue failed",
			"event_type", eventType,
			"campaign_id", campaignID,
			"request_id", actor.RequestID,
			"error", err,
		)
	}
}

func (s *Service) writeOutbox(ctx context.Context, eventType, partitionKey string, data any) error {
	if !domain.IsCanonicalEmittedEvent(eventType) {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedEventType, eventType)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	now := s.nowFn()
	eventID := uuid.New()
	traceID := uuid.NewString()
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		traceID = sc.TraceID().String()
	}
	payload, err := json.Marshal(contracts.EventEnvelope{
		EventID:          eventID.String(),
		EventType:        eventType,
		OccurredAt:       now,
		PartitionKeyPath: domain.CampaignEventPartitionKeyPath,
		PartitionKey:     partitionKey,
		SourceService:    s.cfg.ServiceName,
		TraceID:          traceID,
		SchemaVersion:    domain.EventSchemaVersion,
		Data:             raw,
	})
	if err != nil {
		return err
	}
	return s.outbox.Enqueue(ctx, ports.OutboxEvent{
		EventID:          eventID,
		EventType:        eventType,
		PartitionKey:     partitionKey,
		PartitionKeyPath: domain.CampaignEventPartitionKeyPath,
		Payload:          payload,
		OccurredAt:       now,
		SchemaVersion:    domain.EventSchemaVersion,
		TraceID:          traceID,
	})
}

func (s *Service) enqueueRosterEvent(ctx context.Context, actor Actor, eventType string, c domain.Campaign, app *domain.Application) {
	if app == nil {
		return
	}
	s.enqueueEvent(ctx, actor, eventType, c.CampaignID, contracts.RosterChangedPayload{
		CampaignID:      c.CampaignID,
		InfluencerID:    app.InfluencerID,
		Status:          string(app.Status),
		Applicants:      c.Applicants,
		InfluencerCount: c.InfluencerCount,
		OccurredAt:      app.UpdatedAt.Format(timeFormat),
	})
}

// HandleCanonicalEvent applies an inbound event once per event id.
func (s *Service) HandleCanonicalEvent(ctx context.Context, envelope contracts.EventEnvelope) error {
	if err := validateEnvelope(envelope); err != nil {
		return err
	}
	if !domain.IsCanonicalInputEvent(envelope.EventType) {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedEventType, envelope.EventType)
	}
	if s.eventDedup != nil {
		dup, err := s.eventDedup.IsDuplicate(ctx, envelope.EventID, s.nowFn())
		if err != nil {
			return err
		}
		if dup {
			s.logger.DebugContext(ctx, "duplicate event skipped", "event_id", envelope.EventID, "event_type", envelope.EventType)
			return nil
		}
	}

	switch envelope.EventType {
	case domain.EventInfluencerProfileUpdated:
		var data contracts.InfluencerProfileUpdatedPayload
		if err := json.Unmarshal(envelope.Data, &data); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidEnvelope, err)
		}
		if data.InfluencerID != envelope.PartitionKey {
			return fmt.Errorf("%w: partition key does not match influencer_id", domain.ErrInvalidEnvelope)
		}
		if _, err := s.UpsertInfluencer(ctx, domain.Influencer{
			InfluencerID: data.InfluencerID,
			Name:         data.Name,
			Category:     data.Category,
			Followers:    data.Followers,
			Engagement:   data.Engagement,
			Platforms:    data.Platforms,
			Location:     data.Location,
			Bio:          data.Bio,
			Rate:         data.Rate,
		}); err != nil {
			return err
		}
	}

	if s.eventDedup != nil {
		if err := s.eventDedup.MarkProcessed(ctx, envelope.EventID, envelope.EventType, s.nowFn().Add(s.cfg.EventDedupTTL)); err != nil {
			return err
		}
	}
	s.logger.InfoContext(ctx, "event applied",
		slog.String("event_id", envelope.EventID),
		slog.String("event_type", envelope.EventType),
	)
	return nil
}

func validateEnvelope(event contracts.EventEnvelope) error {
	if strings.TrimSpace(event.EventID) == "" || strings.TrimSpace(event.EventType) == "" || event.OccurredAt.IsZero() {
		return domain.ErrInvalidEnvelope
	}
	if strings.TrimSpace(event.SourceService) == "" || strings.TrimSpace(event.SchemaVersion) == "" {
		return domain.ErrInvalidEnvelope
	}
	if strings.TrimSpace(event.PartitionKeyPath) == "" || strings.TrimSpace(event.PartitionKey) == "" {
		return domain.ErrInvalidEnvelope
	}
	if len(event.Data) == 0 {
		return domain.ErrInvalidEnvelope
	}
	return nil
}
