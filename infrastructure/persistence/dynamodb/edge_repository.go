package dynamodb

import (
	"context"
	"fmt"
	"time"

	"talentnet-backend/application/ports"
	"talentnet-backend/domain/graph"
	apperrors "talentnet-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// EdgeRepository is the DynamoDB journal behind the in-memory graph store.
// The store remains the authority at runtime; the journal exists so the
// graph survives restarts. Single-table layout: PK "USER#<lo>",
// SK "EDGE#<hi>" with the pair stored canonically (lo < hi), so each
// unordered pair maps to exactly one item.
type EdgeRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewEdgeRepository creates a new EdgeRepository
func NewEdgeRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.EdgeRepository {
	return &EdgeRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// edgeItem represents the DynamoDB item structure for an edge
type edgeItem struct {
	PK               string `dynamodbav:"PK"`
	SK               string `dynamodbav:"SK"`
	EntityType       string `dynamodbav:"EntityType"`
	UserA            string `dynamodbav:"UserA"`
	UserB            string `dynamodbav:"UserB"`
	Requester        string `dynamodbav:"Requester"`
	ConnectionType   string `dynamodbav:"ConnectionType"`
	Status           string `dynamodbav:"Status"`
	CreatedAt        string `dynamodbav:"CreatedAt"`
	AcceptedAt       string `dynamodbav:"AcceptedAt,omitempty"`
	InteractionCount int    `dynamodbav:"InteractionCount"`
	LastInteraction  string `dynamodbav:"LastInteraction,omitempty"`
}

// Save writes the current state of an edge. Puts are full overwrites keyed
// by the canonical pair, so replaying a mutation is idempotent.
func (r *EdgeRepository) Save(ctx context.Context, edge graph.Edge) error {
	item := edgeItem{
		PK:               pairPK(edge.U),
		SK:               pairSK(edge.V),
		EntityType:       "EDGE",
		UserA:            edge.U.String(),
		UserB:            edge.V.String(),
		Requester:        edge.Requester.String(),
		ConnectionType:   string(edge.Type),
		Status:           string(edge.Status),
		CreatedAt:        edge.CreatedAt.Format(time.RFC3339Nano),
		InteractionCount: edge.InteractionCount,
	}
	if !edge.AcceptedAt.IsZero() {
		item.AcceptedAt = edge.AcceptedAt.Format(time.RFC3339Nano)
	}
	if !edge.LastInteraction.IsZero() {
		item.LastInteraction = edge.LastInteraction.Format(time.RFC3339Nano)
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return apperrors.NewDatabaseError("marshal_edge", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		r.logger.Error("Failed to save edge",
			zap.Error(err),
			zap.String("userA", edge.U.String()),
			zap.String("userB", edge.V.String()),
		)
		return apperrors.NewDatabaseError("save_edge", err)
	}
	return nil
}

// Delete removes the journal item for the pair; no-op when absent
func (r *EdgeRepository) Delete(ctx context.Context, u, v graph.UserID) error {
	lo, hi := u, v
	if lo > hi {
		lo, hi = hi, lo
	}

	key, err := attributevalue.MarshalMap(map[string]string{
		"PK": pairPK(lo),
		"SK": pairSK(hi),
	})
	if err != nil {
		return apperrors.NewDatabaseError("marshal_edge_key", err)
	}

	_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       key,
	})
	if err != nil {
		return apperrors.NewDatabaseError("delete_edge", err)
	}
	return nil
}

// LoadAll scans the table for edge items to rebuild the store at startup
func (r *EdgeRepository) LoadAll(ctx context.Context) ([]graph.Edge, error) {
	filter := expression.Name("EntityType").Equal(expression.Value("EDGE"))
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("build_scan_expression", err)
	}

	var edges []graph.Edge
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(r.tableName),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, apperrors.NewDatabaseError("scan_edges", err)
		}

		for _, av := range out.Items {
			var item edgeItem
			if err := attributevalue.UnmarshalMap(av, &item); err != nil {
				r.logger.Warn("Skipping unreadable edge item", zap.Error(err))
				continue
			}
			edges = append(edges, item.toEdge())
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	r.logger.Info("Loaded edges from journal", zap.Int("count", len(edges)))
	return edges, nil
}

func (item edgeItem) toEdge() graph.Edge {
	edge := graph.Edge{
		U:                graph.UserID(item.UserA),
		V:                graph.UserID(item.UserB),
		Requester:        graph.UserID(item.Requester),
		Type:             graph.ConnectionType(item.ConnectionType),
		Status:           graph.EdgeStatus(item.Status),
		InteractionCount: item.InteractionCount,
	}
	edge.CreatedAt, _ = time.Parse(time.RFC3339Nano, item.CreatedAt)
	if item.AcceptedAt != "" {
		edge.AcceptedAt, _ = time.Parse(time.RFC3339Nano, item.AcceptedAt)
	}
	if item.LastInteraction != "" {
		edge.LastInteraction, _ = time.Parse(time.RFC3339Nano, item.LastInteraction)
	}
	return edge
}

func pairPK(lo graph.UserID) string {
	return fmt.Sprintf("USER#%s", lo)
}

func pairSK(hi graph.UserID) string {
	return fmt.Sprintf("EDGE#%s", hi)
}
