package commands

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-survey-admin/components/surveys"
	"github.com/goliatone/go-survey-admin/pkg/activity"
)

// Deps are shared by every dimension command.
type Deps struct {
	Backend   surveys.MutationBackend
	Telemetry Telemetry
	Activity  ActivityEmitter
}

type base struct {
	kind      surveys.ActionKind
	backend   surveys.MutationBackend
	telemetry Telemetry
	activity  ActivityEmitter
}

func newBase(kind surveys.ActionKind, deps Deps) base {
	return base{
		kind:      kind,
		backend:   deps.Backend,
		telemetry: normalizeTelemetry(deps.Telemetry),
		activity:  deps.Activity,
	}
}

func (b base) check(msg surveys.ActionInput) error {
	if b.backend == nil {
		return fmt.Errorf("%s command requires backend", b.kind)
	}
	if msg.Action.Kind != b.kind {
		return fmt.Errorf("%w: %s command received %q", surveys.ErrUnknownAction, b.kind, msg.Action.Kind)
	}
	return msg.Action.Validate()
}

// done records telemetry and the audit event for a successful mutation.
func (b base) done(ctx context.Context, msg surveys.ActionInput, objectType, objectID string) {
	action := msg.Action
	payload := map[string]any{
		"kind":   string(b.kind),
		"event":  action.Scope.EventSlug,
		"survey": action.Scope.SurveySlug,
	}
	if action.DimensionSlug != "" {
		payload["dimension"] = action.DimensionSlug
	}
	if action.ValueSlug != "" {
		payload["value"] = action.ValueSlug
	}
	b.telemetry.Record(ctx, "surveys.action."+string(b.kind), payload)

	if b.activity == nil {
		return
	}
	evt := activity.Event{
		Verb:           verbFor(b.kind),
		ObjectType:     objectType,
		ObjectID:       objectID,
		DefinitionCode: "surveys:" + string(b.kind),
		Metadata:       payload,
	}
	if msg.Session != nil {
		evt.ActorID = msg.Session.UserID
		evt.UserID = msg.Session.UserID
	}
	if err := b.activity.Emit(ctx, evt); err != nil {
		b.telemetry.Record(ctx, "surveys.activity.error", map[string]any{
			"kind":  string(b.kind),
			"error": err.Error(),
		})
	}
}

func verbFor(kind surveys.ActionKind) string {
	switch kind {
	case surveys.ActionCreateDimension, surveys.ActionCreateDimensionValue:
		return "create"
	case surveys.ActionUpdateDimension, surveys.ActionUpdateDimensionValue:
		return "update"
	case surveys.ActionDeleteDimension, surveys.ActionDeleteDimensionValue:
		return "delete"
	}
	return string(kind)
}

func dimensionObjectID(action surveys.BoundAction, dimensionSlug string) string {
	return action.Scope.EventSlug + "/" + action.Scope.SurveySlug + "/" + dimensionSlug
}

func valueObjectID(action surveys.BoundAction, valueSlug string) string {
	return dimensionObjectID(action, action.DimensionSlug) + "/" + valueSlug
}

var errMissingForm = errors.New("command requires a decoded form")

// CreateDimensionCommand runs createDimension(eventSlug, surveySlug, form).
type CreateDimensionCommand struct{ base }

// NewCreateDimensionCommand builds the command.
func NewCreateDimensionCommand(deps Deps) *CreateDimensionCommand {
	return &CreateDimensionCommand{newBase(surveys.ActionCreateDimension, deps)}
}

var _ gocommand.Commander[surveys.ActionInput] = (*CreateDimensionCommand)(nil)

// Execute creates the dimension.
func (c *CreateDimensionCommand) Execute(ctx context.Context, msg surveys.ActionInput) error {
	if err := c.check(msg); err != nil {
		return err
	}
	if msg.Dimension == nil {
		return errMissingForm
	}
	if err := c.backend.CreateDimension(ctx, msg.Action.Scope, *msg.Dimension); err != nil {
		return err
	}
	c.done(ctx, msg, "dimension", dimensionObjectID(msg.Action, msg.Dimension.Slug))
	return nil
}

// UpdateDimensionCommand runs updateDimension(eventSlug, surveySlug, dimensionSlug, form).
type UpdateDimensionCommand struct{ base }

// NewUpdateDimensionCommand builds the command.
func NewUpdateDimensionCommand(deps Deps) *UpdateDimensionCommand {
	return &UpdateDimensionCommand{newBase(surveys.ActionUpdateDimension, deps)}
}

var _ gocommand.Commander[surveys.ActionInput] = (*UpdateDimensionCommand)(nil)

// Execute updates the dimension.
func (c *UpdateDimensionCommand) Execute(ctx context.Context, msg surveys.ActionInput) error {
	if err := c.check(msg); err != nil {
		return err
	}
	if msg.Dimension == nil {
		return errMissingForm
	}
	if err := c.backend.UpdateDimension(ctx, msg.Action.Scope, msg.Action.DimensionSlug, *msg.Dimension); err != nil {
		return err
	}
	c.done(ctx, msg, "dimension", dimensionObjectID(msg.Action, msg.Action.DimensionSlug))
	return nil
}

// DeleteDimensionCommand runs deleteDimension(eventSlug, surveySlug, dimensionSlug).
type DeleteDimensionCommand struct{ base }

// NewDeleteDimensionCommand builds the command.
func NewDeleteDimensionCommand(deps Deps) *DeleteDimensionCommand {
	return &DeleteDimensionCommand{newBase(surveys.ActionDeleteDimension, deps)}
}

var _ gocommand.Commander[surveys.ActionInput] = (*DeleteDimensionCommand)(nil)

// Execute deletes the dimension.
func (c *DeleteDimensionCommand) Execute(ctx context.Context, msg surveys.ActionInput) error {
	if err := c.check(msg); err != nil {
		return err
	}
	if err := c.backend.DeleteDimension(ctx, msg.Action.Scope, msg.Action.DimensionSlug); err != nil {
		return err
	}
	c.done(ctx, msg, "dimension", dimensionObjectID(msg.Action, msg.Action.DimensionSlug))
	return nil
}
