package http

import (
	"net/http"

	"accounting/internal/editor"
	"accounting/internal/log"
)

// handleEditorField applies submitted fields to the draft and re-renders the
// dialog, so coerced values (a non-numeric amount becomes 0) are visible.
func (s *Server) handleEditorField(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		log.FromContext(r.Context()).WithComponent(log.ComponentEditor).WarnContext(r.Context(), "Parse editor field error",
			log.FieldError, err,
			log.FieldErrorType, log.ErrorTypeValidation)
		BadRequestError("Invalid request format").Write(w)
		return
	}

	for _, f := range p.EditorFields() {
		s.editor.SetField(f.Name, f.Value)
	}
	s.collector.RecordOperation(log.OpSetField, s.editor.IsOpen())

	s.render(w, r, "editor", s.editorView(), nil)
}

// handleEditorSave applies every submitted field, then commits the draft:
// create mode adds, edit mode updates. The dialog closes either way.
func (s *Server) handleEditorSave(w http.ResponseWriter, r *http.Request) {
	if !s.editor.IsOpen() {
		ErrorResponse(http.StatusConflict, "The editor is not open").Write(w)
		return
	}

	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		log.FromContext(r.Context()).WithComponent(log.ComponentEditor).WarnContext(r.Context(), "Parse editor save error",
			log.FieldError, err,
			log.FieldErrorType, log.ErrorTypeValidation)
		BadRequestError("Invalid request format").Write(w)
		return
	}
	for _, f := range p.EditorFields() {
		s.editor.SetField(f.Name, f.Value)
	}

	op, verb := log.OpCreate, "added"
	if s.editor.Mode() == editor.ModeEdit {
		op, verb = log.OpUpdate, "updated"
	}

	t, ok := s.editor.Commit()
	s.recordChange(r.Context(), op, t, ok)

	b := NewHTMXResponse().TriggerEditorClosed()
	if ok {
		b.TriggerTransactionsChanged(t.ID).
			TriggerSuccessNotification("Transaction " + verb)
	} else {
		log.FromContext(r.Context()).WithComponent(log.ComponentLedger).WarnContext(r.Context(), "Update target no longer exists",
			log.FieldOperation, op,
			log.FieldErrorType, log.ErrorTypeNotFound)
		b.TriggerTransactionsChanged(0).
			TriggerWarningNotification("This transaction was deleted before it could be saved")
	}
	s.render(w, r, "editor", s.editorView(), b)
}

// handleEditorCancel discards the draft and closes the dialog.
func (s *Server) handleEditorCancel(w http.ResponseWriter, r *http.Request) {
	s.editor.Close()
	s.collector.RecordOperation(log.OpCancel, true)
	s.render(w, r, "editor", s.editorView(), NewHTMXResponse().TriggerEditorClosed())
}
