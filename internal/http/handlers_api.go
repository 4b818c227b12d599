package http

import (
	"encoding/json"
	"net/http"

	"accounting/internal/core"
)

type transactionJSON struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
	Date        string `json:"date"`
}

type summaryJSON struct {
	TotalIncomeCents   int64  `json:"total_income_cents"`
	TotalExpensesCents int64  `json:"total_expenses_cents"`
	NetProfitCents     int64  `json:"net_profit_cents"`
	Count              int    `json:"count"`
	TotalIncome        string `json:"total_income"`
	TotalExpenses      string `json:"total_expenses"`
	NetProfit          string `json:"net_profit"`
}

func (s *Server) handleAPITransactions(w http.ResponseWriter, r *http.Request) {
	items := s.ledger.List()
	out := make([]transactionJSON, 0, len(items))
	for _, t := range items {
		out = append(out, toTransactionJSON(t))
	}
	s.writeJSON(w, r, out)
}

func (s *Server) handleAPISummary(w http.ResponseWriter, r *http.Request) {
	t := s.ledger.Totals()
	s.writeJSON(w, r, summaryJSON{
		TotalIncomeCents:   t.TotalIncome.Cents,
		TotalExpensesCents: t.TotalExpenses.Cents,
		NetProfitCents:     t.NetProfit.Cents,
		Count:              t.Count,
		TotalIncome:        t.TotalIncome.String(),
		TotalExpenses:      t.TotalExpenses.String(),
		NetProfit:          t.NetProfit.String(),
	})
}

func toTransactionJSON(t core.Transaction) transactionJSON {
	return transactionJSON{
		ID:          t.ID,
		Type:        string(t.Type),
		Description: t.Description,
		Category:    t.Category,
		Amount:      t.Amount.String(),
		AmountCents: t.Amount.Cents,
		Date:        t.Date,
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.ErrorContext(r.Context(), "Encode JSON response failed", "error", err)
	}
}
