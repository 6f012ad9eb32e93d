package surveys

import "github.com/ettle/strcase"

// Button variants understood by the modal template.
const (
	VariantPrimary = "primary"
	VariantDanger  = "danger"
)

const (
	iconDelete = "❌"
	iconLocked = "🔒"
	iconEdit   = "✏️"
	iconAdd    = "➕"
)

// ModalButton is a trigger that opens a confirmation modal. Submitting the
// modal posts to ActionURL, which dispatches Action. A disabled button carries
// no action at all, so it cannot be invoked from the rendered page.
type ModalButton struct {
	ID            string
	Title         string
	Label         string
	Icon          string
	Code          string
	SubmitLabel   string
	CancelLabel   string
	SubmitVariant string
	Disabled      bool
	Action        *BoundAction
	ActionURL     string
	Confirmation  string
	Fields        []FormFieldView
}

// Invocable reports whether the button can dispatch its action.
func (b ModalButton) Invocable() bool {
	return !b.Disabled && b.Action != nil && b.ActionURL != ""
}

// modalContext carries what every button on a page needs.
type modalContext struct {
	basePath string
	locale   string
	messages Messages
}

func (mc modalContext) button(action BoundAction, title string) ModalButton {
	bound := action
	return ModalButton{
		ID:            modalID(action),
		Title:         title,
		SubmitLabel:   mc.messages.Get("survey.modal_actions.submit"),
		CancelLabel:   mc.messages.Get("survey.modal_actions.cancel"),
		SubmitVariant: VariantPrimary,
		Action:        &bound,
		ActionURL:     action.Path(mc.basePath, mc.locale),
	}
}

// deleteButton renders a lock instead of an invocable control when canRemove is false.
func (mc modalContext) deleteButton(action BoundAction, canRemove bool, titleKey, cannotRemoveKey, confirmation string) ModalButton {
	button := mc.button(action, mc.messages.Get(titleKey))
	button.SubmitLabel = mc.messages.Get("survey.modal_actions.delete")
	button.SubmitVariant = VariantDanger
	button.Confirmation = confirmation
	button.Icon = iconDelete
	button.Fields = []FormFieldView{{Name: FormFieldConfirm, Type: "hidden", Value: "yes"}}
	if !canRemove {
		button.Icon = iconLocked
		button.Disabled = true
		button.Action = nil
		button.ActionURL = ""
		button.Confirmation = mc.messages.Get(cannotRemoveKey)
		button.Fields = nil
	}
	return button
}

// modalID is unique per bound action: the kind plus a hash of the raw slugs,
// which kebab-casing alone would conflate.
func modalID(action BoundAction) string {
	id := "modal-" + strcase.ToKebab(string(action.Kind))
	if action.DimensionSlug == "" && action.ValueSlug == "" {
		return id
	}
	return id + "-" + contentHash([]string{action.DimensionSlug, action.ValueSlug})[:12]
}
