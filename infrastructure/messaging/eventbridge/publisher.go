package eventbridge

import (
	"context"
	"encoding/json"

	"talentnet-backend/application/ports"
	apperrors "talentnet-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"
)

const (
	eventSource       = "talentnet.network"
	edgeChangedDetail = "network.edge_changed"
)

// Publisher emits domain events to an EventBridge bus so downstream
// consumers (notifications, analytics) can react to network changes.
type Publisher struct {
	client  *eventbridge.Client
	busName string
	logger  *zap.Logger
}

// NewPublisher creates a new EventBridge publisher
func NewPublisher(client *eventbridge.Client, busName string, logger *zap.Logger) ports.EventPublisher {
	return &Publisher{
		client:  client,
		busName: busName,
		logger:  logger,
	}
}

// PublishEdgeChange publishes an edge state transition event
func (p *Publisher) PublishEdgeChange(ctx context.Context, event ports.EdgeChangeEvent) error {
	detail, err := json.Marshal(event)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal edge change event")
	}

	out, err := p.client.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{
			{
				EventBusName: aws.String(p.busName),
				Source:       aws.String(eventSource),
				DetailType:   aws.String(edgeChangedDetail),
				Detail:       aws.String(string(detail)),
			},
		},
	})
	if err != nil {
		return apperrors.NewDependencyUnavailableError("eventbridge", err)
	}
	if out.FailedEntryCount > 0 {
		p.logger.Warn("EventBridge rejected edge change entry",
			zap.Int32("failedCount", out.FailedEntryCount),
			zap.String("eventID", event.EventID),
		)
	}
	return nil
}
