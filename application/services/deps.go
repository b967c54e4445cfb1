package services

import (
	"context"
	"time"

	"talentnet-backend/application/ports"
	"talentnet-backend/domain/graph"
	"talentnet-backend/domain/profile"
	"talentnet-backend/pkg/errors"
)

// retryBackoff is the pause before the single retry allowed on transient
// collaborator failures. Graph-structural errors are never retried.
const retryBackoff = 100 * time.Millisecond

// fetchAttributes calls the identity collaborator with exactly one retry.
// Not-found and validation errors surface immediately; anything else is
// treated as transient once, then surfaced as dependency unavailability.
func fetchAttributes(ctx context.Context, identity ports.IdentityService, userID graph.UserID) (*profile.AttributeRecord, error) {
	attrs, err := identity.GetUserAttributes(ctx, userID)
	if err == nil {
		return attrs, nil
	}
	if errors.IsNotFound(err) || errors.IsValidation(err) {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, errors.NewDependencyUnavailableError("identity", err)
	case <-time.After(retryBackoff):
	}

	attrs, retryErr := identity.GetUserAttributes(ctx, userID)
	if retryErr == nil {
		return attrs, nil
	}
	if errors.IsNotFound(retryErr) || errors.IsValidation(retryErr) {
		return nil, retryErr
	}
	return nil, errors.NewDependencyUnavailableError("identity", retryErr)
}
