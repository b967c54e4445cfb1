package dynamodb

import (
	"context"
	"time"

	"talentnet-backend/application/ports"
	"talentnet-backend/domain/content"
	"talentnet-backend/domain/graph"
	apperrors "talentnet-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// authorIndexName is the GSI keyed by author with items sorted by
// creation time
const authorIndexName = "AuthorIndex"

// ContentRepository reads recent content from the content table. Items
// are keyed by author on a GSI so one Query per author returns that
// author's items newest-first.
type ContentRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewContentRepository creates a new ContentRepository
func NewContentRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.ContentService {
	return &ContentRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// contentItem mirrors the stored content row
type contentItem struct {
	ItemID     string    `dynamodbav:"ItemID"`
	AuthorID   string    `dynamodbav:"AuthorID"`
	Type       string    `dynamodbav:"Type"`
	Visibility string    `dynamodbav:"Visibility"`
	CreatedAt  string    `dynamodbav:"CreatedAt"`
	Likes      int       `dynamodbav:"Likes"`
	Comments   int       `dynamodbav:"Comments"`
	Shares     int       `dynamodbav:"Shares"`
	Views      int       `dynamodbav:"Views"`
	Vector     []float64 `dynamodbav:"Vector,omitempty"`
}

// GetRecentContent returns all items by the given authors created inside
// the window
func (r *ContentRepository) GetRecentContent(ctx context.Context, authorIDs []graph.UserID, window time.Duration) ([]content.Item, error) {
	cutoff := time.Now().Add(-window).Format(time.RFC3339Nano)

	var items []content.Item
	for _, author := range authorIDs {
		authorItems, err := r.queryAuthor(ctx, author, cutoff)
		if err != nil {
			return nil, err
		}
		items = append(items, authorItems...)
	}
	return items, nil
}

func (r *ContentRepository) queryAuthor(ctx context.Context, author graph.UserID, cutoff string) ([]content.Item, error) {
	keyCond := expression.Key("AuthorID").Equal(expression.Value(author.String())).
		And(expression.Key("CreatedAt").GreaterThanEqual(expression.Value(cutoff)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("build_content_query", err)
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(authorIndexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false),
	})
	if err != nil {
		return nil, apperrors.NewDependencyUnavailableError("content", err)
	}

	items := make([]content.Item, 0, len(out.Items))
	for _, av := range out.Items {
		var row contentItem
		if err := attributevalue.UnmarshalMap(av, &row); err != nil {
			r.logger.Warn("Skipping unreadable content item", zap.Error(err))
			continue
		}
		items = append(items, row.toItem())
	}
	return items, nil
}

func (row contentItem) toItem() content.Item {
	item := content.Item{
		ID:         row.ItemID,
		AuthorID:   graph.UserID(row.AuthorID),
		Type:       content.ContentType(row.Type),
		Visibility: content.Visibility(row.Visibility),
		Engagement: content.Engagement{
			Likes:    row.Likes,
			Comments: row.Comments,
			Shares:   row.Shares,
			Views:    row.Views,
		},
		Vector: row.Vector,
	}
	item.CreatedAt, _ = time.Parse(time.RFC3339Nano, row.CreatedAt)
	return item
}
