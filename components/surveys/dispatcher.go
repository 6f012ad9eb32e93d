package surveys

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	gocommand "github.com/goliatone/go-command"
)

// ActionInput is the message every dimension command receives. Exactly one of
// Dimension and Value is set for create and update kinds.
type ActionInput struct {
	Action    BoundAction
	Dimension *DimensionForm
	Value     *ValueForm
	Session   *Session
}

// ActionDispatcher routes bound actions to their commands.
type ActionDispatcher struct {
	sessions  SessionResolver
	commands  map[ActionKind]gocommand.Commander[ActionInput]
	basePath  string
	telemetry Telemetry
}

// ActionDispatcherOptions wires an ActionDispatcher.
type ActionDispatcherOptions struct {
	Sessions  SessionResolver
	Commands  map[ActionKind]gocommand.Commander[ActionInput]
	BasePath  string
	Telemetry Telemetry
}

// NewActionDispatcher requires a session resolver and a command for every kind.
func NewActionDispatcher(opts ActionDispatcherOptions) (*ActionDispatcher, error) {
	if opts.Sessions == nil {
		return nil, errMissingSessions
	}
	for _, kind := range ActionKinds() {
		if opts.Commands[kind] == nil {
			return nil, fmt.Errorf("surveys: no command registered for %s", kind)
		}
	}
	return &ActionDispatcher{
		sessions:  opts.Sessions,
		commands:  opts.Commands,
		basePath:  strings.TrimRight(opts.BasePath, "/"),
		telemetry: normalizeTelemetry(opts.Telemetry),
	}, nil
}

// ActionRequest is one submitted modal form.
type ActionRequest struct {
	Locale      string
	Action      BoundAction
	Form        url.Values
	Credentials Credentials
}

// Dispatch authenticates the viewer, checks the action, decodes its form and
// executes the command. It returns the editor URL to redirect to.
func (d *ActionDispatcher) Dispatch(ctx context.Context, req ActionRequest) (string, error) {
	session := SessionFromContext(ctx)
	if session == nil {
		resolved, err := d.sessions.ResolveSession(ctx, req.Credentials)
		if err != nil {
			return "", fmt.Errorf("surveys: resolve session: %w", err)
		}
		if resolved == nil {
			return "", ErrSignInRequired
		}
		session = resolved
		ctx = ContextWithSession(ctx, session)
	}

	input, err := BuildActionInput(req.Action, req.Form)
	if err != nil {
		d.telemetry.Record(ctx, "surveys.action.rejected", map[string]any{
			"kind":  string(req.Action.Kind),
			"error": err.Error(),
		})
		return "", err
	}
	input.Session = session

	command := d.commands[req.Action.Kind]
	if command == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, req.Action.Kind)
	}
	if err := command.Execute(ctx, input); err != nil {
		return "", err
	}
	locale := normalizeLocale(req.Locale)
	if locale == "" {
		locale = DefaultLocale
	}
	return DimensionsPath(d.basePath, locale, req.Action.Scope), nil
}

// BuildActionInput validates action and decodes form into the command input.
// Destructive kinds require the confirmation field.
func BuildActionInput(action BoundAction, form url.Values) (ActionInput, error) {
	if err := action.Validate(); err != nil {
		return ActionInput{}, err
	}
	input := ActionInput{Action: action}
	switch action.Kind {
	case ActionCreateDimension, ActionUpdateDimension:
		decoded, err := DecodeDimensionForm(form)
		if err != nil {
			return ActionInput{}, err
		}
		input.Dimension = &decoded
	case ActionCreateDimensionValue, ActionUpdateDimensionValue:
		decoded, err := DecodeValueForm(form)
		if err != nil {
			return ActionInput{}, err
		}
		input.Value = &decoded
	case ActionDeleteDimension, ActionDeleteDimensionValue:
		if !confirmed(form) {
			return ActionInput{}, ErrConfirmationRequired
		}
	}
	return input, nil
}

func confirmed(form url.Values) bool {
	return checkboxValue(form, FormFieldConfirm)
}
