package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cohort/internal/cohortapi"
	"github.com/five82/cohort/internal/listview"
)

const (
	fieldName = iota
	fieldDescription
	fieldCount
)

const (
	maxNameLength        = 120
	maxDescriptionLength = 500
	dialogWidth          = 56
)

// createDialog is the create-list form shown while the address carries the
// overlay parameter.
type createDialog struct {
	active     bool
	inputs     [fieldCount]textinput.Model
	focus      int
	err        string
	submitting bool
}

func newCreateDialog(t listview.Translator) createDialog {
	var d createDialog
	d.inputs[fieldName] = newFormInput(t.T("listNameLabel", "List name"), maxNameLength)
	d.inputs[fieldDescription] = newFormInput(t.T("descriptionLabel", "Describe the purpose of this list"), maxDescriptionLength)
	return d
}

func newFormInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = dialogWidth - 6
	return in
}

// open clears the form and focuses the name field.
func (d *createDialog) open() tea.Cmd {
	d.active = true
	d.err = ""
	d.submitting = false
	for i := range d.inputs {
		d.inputs[i].SetValue("")
	}
	return d.focusField(fieldName)
}

func (d *createDialog) close() {
	d.active = false
	d.submitting = false
	for i := range d.inputs {
		d.inputs[i].Blur()
	}
}

func (d *createDialog) focusField(idx int) tea.Cmd {
	idx = ((idx % fieldCount) + fieldCount) % fieldCount
	d.focus = idx
	for i := range d.inputs {
		d.inputs[i].Blur()
	}
	return d.inputs[idx].Focus()
}

// request validates the form. The returned message is non-empty when the
// form cannot be submitted.
func (d createDialog) request(t listview.Translator) (cohortapi.NewList, string) {
	name := strings.TrimSpace(d.inputs[fieldName].Value())
	if name == "" {
		return cohortapi.NewList{}, t.T("nameRequired", "List name is required")
	}
	return cohortapi.NewList{
		Name:        name,
		Description: strings.TrimSpace(d.inputs[fieldDescription].Value()),
		Kind:        cohortapi.KindUser,
	}, ""
}

// update forwards msg to the focused input.
func (d *createDialog) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	d.inputs[d.focus], cmd = d.inputs[d.focus].Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		d.err = ""
	}
	return cmd
}

func (d createDialog) view(styles Styles, t listview.Translator) string {
	var b strings.Builder
	b.WriteString(styles.DialogTitle.Render(t.T("createNewList", "Create new patient list")))
	b.WriteString("\n\n")

	labels := [fieldCount]string{
		t.T("listNameLabel", "List name"),
		t.T("descriptionLabel", "Describe the purpose of this list"),
	}
	for i, in := range d.inputs {
		b.WriteString(styles.MutedText.Render(labels[i]))
		b.WriteString("\n")
		box := styles.Input
		if i == d.focus {
			box = styles.InputFocus
		}
		b.WriteString(box.Width(dialogWidth - 4).Render(in.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case d.submitting:
		b.WriteString(styles.MutedText.Render(t.T("creating", "Creating…")))
	case d.err != "":
		b.WriteString(styles.DangerText.Render(d.err))
	default:
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			styles.Button.Render(t.T("createList", "Create list")),
			"  ",
			styles.MutedText.Render(t.T("cancel", "Cancel")+" (esc)"),
		))
	}
	return styles.Dialog.Width(dialogWidth).Render(b.String())
}
