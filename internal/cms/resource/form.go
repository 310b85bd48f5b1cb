package resource

// Form is the create/edit panel of one collection. An empty editing id
// means create mode.
type Form[T Item, D Draft] struct {
	kind      Kind[T, D]
	draft     D
	editingID string
	visible   bool
}

func NewForm[T Item, D Draft](kind Kind[T, D]) *Form[T, D] {
	return &Form[T, D]{kind: kind, draft: kind.NewDraft()}
}

// BeginCreate opens the form with a default draft.
func (f *Form[T, D]) BeginCreate() {
	f.draft = f.kind.NewDraft()
	f.editingID = ""
	f.visible = true
}

// BeginEdit opens the form with a copy of item.
func (f *Form[T, D]) BeginEdit(item T) {
	f.draft = f.kind.DraftFrom(item)
	f.editingID = item.ItemID()
	f.visible = true
}

// Cancel discards the draft and hides the form.
func (f *Form[T, D]) Cancel() {
	f.draft = f.kind.NewDraft()
	f.editingID = ""
	f.visible = false
}

func (f *Form[T, D]) Visible() bool {
	return f.visible
}

func (f *Form[T, D]) EditingID() string {
	return f.editingID
}

// Draft returns the draft for in-place field edits.
func (f *Form[T, D]) Draft() *D {
	return &f.draft
}
