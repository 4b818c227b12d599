package http

import (
	"accounting/internal/core"
	"accounting/internal/editor"
)

// Page chrome.
const (
	pageTitle       = "Accounting"
	pageDescription = "Financial Management System"
	pageHeading     = "Accounting Dashboard"
)

type summaryView struct {
	TotalIncome   string
	TotalExpenses string
	NetProfit     string
	NetPositive   bool
	Count         int
}

type rowView struct {
	ID          int64
	Type        string
	IsIncome    bool
	Description string
	Category    string
	Amount      string
	Date        string
}

type editorView struct {
	Open        bool
	Title       string
	SubmitLabel string
	IsIncome    bool
	Description string
	Category    string
	Amount      string
	EditingID   int64
}

type pageView struct {
	Title       string
	Description string
	Heading     string
	Theme       string
	Summary     summaryView
	Rows        []rowView
	Editor      editorView
}

func (s *Server) summaryView(t core.Totals) summaryView {
	return summaryView{
		TotalIncome:   s.currency.Format(t.TotalIncome),
		TotalExpenses: s.currency.Format(t.TotalExpenses),
		NetProfit:     s.currency.Format(t.NetProfit),
		NetPositive:   !t.NetProfit.IsNegative(),
		Count:         t.Count,
	}
}

func (s *Server) rowViews(items []core.Transaction) []rowView {
	rows := make([]rowView, 0, len(items))
	for _, t := range items {
		rows = append(rows, rowView{
			ID:          t.ID,
			Type:        string(t.Type),
			IsIncome:    t.Type.IsIncome(),
			Description: t.Description,
			Category:    t.Category,
			Amount:      s.currency.FormatAbs(t.Amount),
			Date:        t.Date,
		})
	}
	return rows
}

func (s *Server) editorView() editorView {
	if !s.editor.IsOpen() {
		return editorView{}
	}
	d := s.editor.Draft()
	v := editorView{
		Open:        true,
		Title:       "Add Transaction",
		SubmitLabel: "Add",
		IsIncome:    d.Type.IsIncome(),
		Description: d.Description,
		Category:    d.Category,
		Amount:      d.Amount.Decimal().String(),
	}
	if s.editor.Mode() == editor.ModeEdit && d.EditingID != nil {
		v.Title = "Edit Transaction"
		v.SubmitLabel = "Update"
		v.EditingID = *d.EditingID
	}
	return v
}

func (s *Server) pageView() pageView {
	return pageView{
		Title:       pageTitle,
		Description: pageDescription,
		Heading:     pageHeading,
		Theme:       s.theme,
		Summary:     s.summaryView(s.ledger.Totals()),
		Rows:        s.rowViews(s.ledger.List()),
		Editor:      s.editorView(),
	}
}
