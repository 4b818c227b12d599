// Package editor holds the state of the add/edit transaction dialog.
package editor

import (
	"strings"
	"sync"

	"accounting/internal/core"
)

// Form field names accepted by SetField.
const (
	FieldType        = "type"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldAmount      = "amount"
)

// Mode is the dialog's purpose, used for its title.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Committer persists a draft. *ledger.Store satisfies it.
type Committer interface {
	Add(d core.Draft) core.Transaction
	Update(id int64, d core.Draft) (core.Transaction, bool)
}

// Dialog is the editor: a draft plus an open/closed flag.
type Dialog struct {
	mu    sync.Mutex
	store Committer
	draft core.Draft
	open  bool
}

func New(store Committer) *Dialog {
	return &Dialog{store: store, draft: core.NewDraft()}
}

// OpenForCreate resets the draft to defaults and opens the dialog.
func (d *Dialog) OpenForCreate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.draft = core.NewDraft()
	d.open = true
}

// OpenForEdit loads a copy of t (magnitude only) and opens the dialog.
func (d *Dialog) OpenForEdit(t core.Transaction) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.draft = core.DraftFrom(t)
	d.open = true
}

// Close discards the draft.
func (d *Dialog) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
}

// SetField updates one draft field. Amount input that is not a number becomes
// zero; unknown field names are ignored.
func (d *Dialog) SetField(name, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FieldType:
		d.draft.Type = core.ParseTransactionType(strings.TrimSpace(value))
	case FieldDescription:
		d.draft.Description = value
	case FieldCategory:
		d.draft.Category = value
	case FieldAmount:
		d.draft.Amount = core.CoerceAmount(value)
	}
}

// Commit saves the draft (add in create mode, update in edit mode) and closes
// the dialog. The bool is false only when an edited transaction no longer
// exists, in which case nothing was saved.
func (d *Dialog) Commit() (core.Transaction, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	draft := d.draft
	d.reset()
	if draft.EditingID == nil {
		return d.store.Add(draft), true
	}
	return d.store.Update(*draft.EditingID, draft)
}

// Draft returns a copy of the current draft.
func (d *Dialog) Draft() core.Draft {
	d.mu.Lock()
	defer d.mu.Unlock()
	draft := d.draft
	if draft.EditingID != nil {
		id := *draft.EditingID
		draft.EditingID = &id
	}
	return draft
}

func (d *Dialog) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

func (d *Dialog) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.draft.IsEdit() {
		return ModeEdit
	}
	return ModeCreate
}

func (d *Dialog) reset() {
	d.draft = core.NewDraft()
	d.open = false
}
