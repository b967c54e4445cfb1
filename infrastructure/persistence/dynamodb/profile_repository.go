package dynamodb

import (
	"context"
	"fmt"

	"talentnet-backend/application/ports"
	"talentnet-backend/domain/graph"
	"talentnet-backend/domain/profile"
	apperrors "talentnet-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// ProfileRepository reads user attribute records from the identity table.
// Records written before the schema version existed come back as v0 open
// maps; those are migrated on read.
type ProfileRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.IdentityService {
	return &ProfileRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// profileItem mirrors the stored attribute record
type profileItem struct {
	PK              string    `dynamodbav:"PK"`
	SK              string    `dynamodbav:"SK"`
	SchemaVersion   int       `dynamodbav:"SchemaVersion"`
	Skills          []string  `dynamodbav:"Skills,omitempty"`
	Industry        string    `dynamodbav:"Industry,omitempty"`
	ExperienceLevel string    `dynamodbav:"ExperienceLevel,omitempty"`
	InterestVector  []float64 `dynamodbav:"InterestVector,omitempty"`
}

// GetUserAttributes returns the typed attribute record for a user
func (r *ProfileRepository) GetUserAttributes(ctx context.Context, userID graph.UserID) (*profile.AttributeRecord, error) {
	key, err := attributevalue.MarshalMap(map[string]string{
		"PK": fmt.Sprintf("PROFILE#%s", userID),
		"SK": "ATTRS",
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("marshal_profile_key", err)
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       key,
	})
	if err != nil {
		return nil, apperrors.NewDependencyUnavailableError("identity", err)
	}
	if out.Item == nil {
		return nil, apperrors.NewNotFoundError("profile")
	}

	var item profileItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, apperrors.NewDatabaseError("unmarshal_profile", err)
	}

	if item.SchemaVersion < profile.CurrentSchemaVersion {
		return r.migrate(userID, out.Item)
	}

	rec := profile.AttributeRecord{
		SchemaVersion:   item.SchemaVersion,
		UserID:          userID.String(),
		Skills:          item.Skills,
		Industry:        item.Industry,
		ExperienceLevel: profile.ParseExperienceLevel(item.ExperienceLevel),
		InterestVector:  item.InterestVector,
	}
	return &rec, nil
}

// migrate upgrades a pre-schema open map to the current record shape
func (r *ProfileRepository) migrate(userID graph.UserID, raw map[string]types.AttributeValue) (*profile.AttributeRecord, error) {
	var blob map[string]interface{}
	if err := attributevalue.UnmarshalMap(raw, &blob); err != nil {
		return nil, apperrors.NewDatabaseError("unmarshal_legacy_profile", err)
	}

	rec := profile.MigrateAttributes(userID.String(), blob)
	r.logger.Debug("Migrated legacy attribute record",
		zap.String("user", userID.String()),
	)
	return &rec, nil
}
