// Package authz decides whether a principal may perform an action on a
// kind of resource. The decision table lives in policy.rego.
package authz

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"github.com/open-policy-agent/opa/rego"
)

//go:embed policy.rego
var policy string

const query = "data.trainstation.authz.allow"

type Action string

const (
	ActionList        Action = "list"
	ActionRetrieve    Action = "retrieve"
	ActionCreate      Action = "create"
	ActionUpdate      Action = "update"
	ActionDelete      Action = "delete"
	ActionUploadImage Action = "upload_image"
)

type Kind string

const (
	KindTrainType Kind = "train_type"
	KindTrain     Kind = "train"
	KindStation   Kind = "station"
	KindRoute     Kind = "route"
	KindCrew      Kind = "crew"
	KindTrip      Kind = "trip"
	KindOrder     Kind = "order"
)

// Principal is the caller identity resolved from the request.
type Principal struct {
	UserID        uuid.UUID
	Authenticated bool
	Admin         bool
}

func Anonymous() Principal {
	return Principal{}
}

type Authorizer struct {
	query rego.PreparedEvalQuery
}

// New compiles the embedded policy once; the result is safe for concurrent use.
func New(ctx context.Context) (*Authorizer, error) {
	prepared, err := rego.New(
		rego.Query(query),
		rego.Module("policy.rego", policy),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("prepare authz policy: %w", err)
	}
	return &Authorizer{query: prepared}, nil
}

func (a *Authorizer) Allow(ctx context.Context, principal Principal, action Action, kind Kind) (bool, error) {
	input := map[string]interface{}{
		"principal": map[string]interface{}{
			"authenticated": principal.Authenticated,
			"admin":         principal.Admin,
		},
		"action": string(action),
		"kind":   string(kind),
	}

	rs, err := a.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return false, fmt.Errorf("evaluate authz policy: %w", err)
	}
	return rs.Allowed(), nil
}
