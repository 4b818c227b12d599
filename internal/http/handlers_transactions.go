package http

import (
	"net/http"

	"accounting/internal/core"
	"accounting/internal/log"
)

// handleNewTransaction opens the dialog in create mode.
func (s *Server) handleNewTransaction(w http.ResponseWriter, r *http.Request) {
	s.editor.OpenForCreate()
	s.collector.RecordOperation(log.OpOpen, true)

	log.FromContext(r.Context()).WithComponent(log.ComponentEditor).DebugContext(r.Context(), "Editor opened for create",
		log.FieldOperation, log.OpOpen)

	s.render(w, r, "editor", s.editorView(), nil)
}

// handleEditTransaction opens the dialog on a copy of an existing transaction.
func (s *Server) handleEditTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := ParsePathID(r)
	if err != nil {
		BadRequestError("Invalid transaction id").Write(w)
		return
	}

	t, ok := s.ledger.Get(id)
	if !ok {
		log.FromContext(r.Context()).WithComponent(log.ComponentEditor).WarnContext(r.Context(), "Edit requested for unknown transaction",
			log.FieldTransactionID, id,
			log.FieldErrorType, log.ErrorTypeNotFound)
		NotFoundError("Transaction not found").Write(w)
		return
	}

	s.editor.OpenForEdit(t)
	s.collector.RecordOperation(log.OpOpen, true)

	log.FromContext(r.Context()).WithComponent(log.ComponentEditor).DebugContext(r.Context(), "Editor opened for edit",
		log.NewFields().WithTransaction(t).WithOperation(log.OpOpen).ToSlice()...)

	s.render(w, r, "editor", s.editorView(), nil)
}

// handleDeleteTransaction removes a transaction. Deleting an unknown id is a
// no-op that still refreshes the client's view.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := ParsePathID(r)
	if err != nil {
		BadRequestError("Invalid transaction id").Write(w)
		return
	}

	t, _ := s.ledger.Get(id)
	removed := s.ledger.Remove(id)
	if !removed {
		t = core.Transaction{ID: id}
		log.FromContext(r.Context()).WithComponent(log.ComponentLedger).WarnContext(r.Context(), "Delete requested for unknown transaction",
			log.FieldTransactionID, id,
			log.FieldOperation, log.OpDelete,
			log.FieldErrorType, log.ErrorTypeNotFound)
	}
	s.recordChange(r.Context(), log.OpDelete, t, removed)

	b := NewHTMXResponse().TriggerTransactionsChanged(id)
	if removed {
		b.TriggerSuccessNotification("Transaction deleted")
	}
	b.Write(w)
}
