package commands

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-survey-admin/components/surveys"
)

// CreateDimensionValueCommand runs createDimensionValue(eventSlug, surveySlug, dimensionSlug, form).
type CreateDimensionValueCommand struct{ base }

// NewCreateDimensionValueCommand builds the command.
func NewCreateDimensionValueCommand(deps Deps) *CreateDimensionValueCommand {
	return &CreateDimensionValueCommand{newBase(surveys.ActionCreateDimensionValue, deps)}
}

var _ gocommand.Commander[surveys.ActionInput] = (*CreateDimensionValueCommand)(nil)

// Execute creates the value.
func (c *CreateDimensionValueCommand) Execute(ctx context.Context, msg surveys.ActionInput) error {
	if err := c.check(msg); err != nil {
		return err
	}
	if msg.Value == nil {
		return errMissingForm
	}
	if err := c.backend.CreateDimensionValue(ctx, msg.Action.Scope, msg.Action.DimensionSlug, *msg.Value); err != nil {
		return err
	}
	c.done(ctx, msg, "dimension_value", valueObjectID(msg.Action, msg.Value.Slug))
	return nil
}

// UpdateDimensionValueCommand runs updateDimensionValue(eventSlug, surveySlug, dimensionSlug, valueSlug, form).
type UpdateDimensionValueCommand struct{ base }

// NewUpdateDimensionValueCommand builds the command.
func NewUpdateDimensionValueCommand(deps Deps) *UpdateDimensionValueCommand {
	return &UpdateDimensionValueCommand{newBase(surveys.ActionUpdateDimensionValue, deps)}
}

var _ gocommand.Commander[surveys.ActionInput] = (*UpdateDimensionValueCommand)(nil)

// Execute updates the value.
func (c *UpdateDimensionValueCommand) Execute(ctx context.Context, msg surveys.ActionInput) error {
	if err := c.check(msg); err != nil {
		return err
	}
	if msg.Value == nil {
		return errMissingForm
	}
	action := msg.Action
	if err := c.backend.UpdateDimensionValue(ctx, action.Scope, action.DimensionSlug, action.ValueSlug, *msg.Value); err != nil {
		return err
	}
	c.done(ctx, msg, "dimension_value", valueObjectID(action, action.ValueSlug))
	return nil
}

// DeleteDimensionValueCommand runs deleteDimensionValue(eventSlug, surveySlug, dimensionSlug, valueSlug).
type DeleteDimensionValueCommand struct{ base }

// NewDeleteDimensionValueCommand builds the command.
func NewDeleteDimensionValueCommand(deps Deps) *DeleteDimensionValueCommand {
	return &DeleteDimensionValueCommand{newBase(surveys.ActionDeleteDimensionValue, deps)}
}

var _ gocommand.Commander[surveys.ActionInput] = (*DeleteDimensionValueCommand)(nil)

// Execute deletes the value.
func (c *DeleteDimensionValueCommand) Execute(ctx context.Context, msg surveys.ActionInput) error {
	if err := c.check(msg); err != nil {
		return err
	}
	action := msg.Action
	if err := c.backend.DeleteDimensionValue(ctx, action.Scope, action.DimensionSlug, action.ValueSlug); err != nil {
		return err
	}
	c.done(ctx, msg, "dimension_value", valueObjectID(action, action.ValueSlug))
	return nil
}

// Registry returns one command per action kind, ready for surveys.NewActionDispatcher.
func Registry(deps Deps) map[surveys.ActionKind]gocommand.Commander[surveys.ActionInput] {
	return map[surveys.ActionKind]gocommand.Commander[surveys.ActionInput]{
		surveys.ActionCreateDimension:      NewCreateDimensionCommand(deps),
		surveys.ActionUpdateDimension:      NewUpdateDimensionCommand(deps),
		surveys.ActionDeleteDimension:      NewDeleteDimensionCommand(deps),
		surveys.ActionCreateDimensionValue: NewCreateDimensionValueCommand(deps),
		surveys.ActionUpdateDimensionValue: NewUpdateDimensionValueCommand(deps),
		surveys.ActionDeleteDimensionValue: NewDeleteDimensionValueCommand(deps),
	}
}
