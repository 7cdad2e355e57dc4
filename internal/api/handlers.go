package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lachiem1/weekwise/internal/budget"
)

type paydayRequest struct {
	Payday int `json:"payday"`
}

type expenseRequest struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
	Date  string          `json:"date_expense"`
}

type incomeRequest struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
	Type  string          `json:"type"`
}

type billRequest struct {
	Name    string          `json:"name"`
	Value   decimal.Decimal `json:"value"`
	Day     int             `json:"day"`
	Type    string          `json:"type"`
	Savings bool            `json:"savings"`
}

type savingRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type leftoverRequest struct {
	Action string `json:"action"`
}

type deleteBillsRequest struct {
	IDs []int64 `json:"ids"`
}

type confirmRequest struct {
	WeeklyOriginal decimal.Decimal `json:"weekly_original"`
	WeeklyNew      decimal.Decimal `json:"weekly_new"`
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	today, err := h.today(r)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	view, err := h.Engine.GetHomeViewModel(r.Context(), userFrom(r), today)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) SetPayday(w http.ResponseWriter, r *http.Request) {
	var req paydayRequest
	if err := decodeJSON(r, &req); err != nil {
		writeEngineError(w, r, err)
		return
	}
	if err := h.Engine.SetPayday(r.Context(), userFrom(r), req.Payday); err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, budget.User{Username: userFrom(r), Payday: req.Payday})
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	today, err := h.today(r)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	week := budget.ResolveWeek(today)
	from, to := week.Start, week.End
	q := r.URL.Query()
	if raw := strings.TrimSpace(q.Get("from")); raw != "" {
		if from, err = budget.ParseDate("from", raw, time.Local); err != nil {
			writeEngineError(w, r, err)
			return
		}
	}
	if raw := strings.TrimSpace(q.Get("to")); raw != "" {
		if to, err = budget.ParseDate("to", raw, time.Local); err != nil {
			writeEngineError(w, r, err)
			return
		}
	}
	out, err := h.Engine.ListExpenses(r.Context(), userFrom(r), from, to)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) expenseInput(r *http.Request) (budget.ExpenseInput, error) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		return budget.ExpenseInput{}, err
	}
	in := budget.ExpenseInput{Name: req.Name, Value: req.Value}
	if strings.TrimSpace(req.Date) == "" {
		in.Date = budget.StartOfDay(h.Now())
		return in, nil
	}
	d, err := budget.ParseDate("date_expense", req.Date, time.Local)
	if err != nil {
		return budget.ExpenseInput{}, err
	}
	in.Date = d
	return in, nil
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	in, err := h.expenseInput(r)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	exp, err := h.Engine.RecordExpense(r.Context(), userFrom(r), in)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, exp)
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	in, err := h.expenseInput(r)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	exp, err := h.Engine.UpdateExpense(r.Context(), userFrom(r), id, in)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, exp)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	if err := h.Engine.DeleteExpense(r.Context(), userFrom(r), id); err != nil {
		writeEngineError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListIncomes(w http.ResponseWriter, r *http.Request) {
	today, err := h.today(r)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	view, err := h.Engine.ListIncomes(r.Context(), userFrom(r), today)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func incomeInput(r *http.Request) (budget.IncomeInput, error) {
	var req incomeRequest
	if err := decodeJSON(r, &req); err != nil {
		return budget.IncomeInput{}, err
	}
	typ, err := budget.ParseIncomeType(req.Type)
	if err != nil {
		return budget.IncomeInput{}, err
	}
	return budget.IncomeInput{Name: req.Name, Value: req.Value, Type: typ}, nil
}

func (h *Handler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	today, err := h.today(r)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	in, err := incomeInput(r)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	in.Date = h.Now()
	inc, err := h.Engine.RecordIncome(r.Context(), userFrom(r), in, today)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, inc)
}

func (h *Handler) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	in, err := incomeInput(r)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	inc, err := h.Engine.UpdateIncome(r.Context(), userFrom(r), id, in)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inc)
}

func (h *Handler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	if err := h.Engine.DeleteIncome(r.Context(), userFrom(r), id); err != nil {
		writeEngineError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := h.Engine.ListBills(r.Context(), userFrom(r))
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bills)
}

func billInput(r *http.Request) (budget.BillInput, error) {
	var req billRequest
	if err := decodeJSON(r, &req); err != nil {
		return budget.BillInput{}, err
	}
	typ, err := budget.ParseBillType(req.Type)
	if err != nil {
		return budget.BillInput{}, err
	}
	return budget.BillInput{Name: req.Name, Value: req.Value, Day: req.Day, Type: typ, Savings: req.Savings}, nil
}

func (h *Handler) CreateBill(w http.ResponseWriter, r *http.Request) {
	in, err := billInput(r)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	b, err := h.Engine.RecordBill(r.Context(), userFrom(r), in)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handler) UpdateBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	in, err := billInput(r)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	b, err := h.Engine.UpdateBill(r.Context(), userFrom(r), id, in)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) DeleteBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	if err := h.Engine.DeleteBill(r.Context(), userFrom(r), id); err != nil {
		writeEngineError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) MarkBillPaid(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	b, err := h.Engine.MarkBillPaid(r.Context(), userFrom(r), id)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) BillStatuses(w http.ResponseWriter, r *http.Request) {
	today, err := h.today(r)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	board, err := h.Engine.ResolveBillStatuses(r.Context(), userFrom(r), today)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (h *Handler) ListSavings(w http.ResponseWriter, r *http.Request) {
	view, err := h.Engine.ListSavings(r.Context(), userFrom(r))
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) CreateSaving(w http.ResponseWriter, r *http.Request) {
	today, err := h.today(r)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	var req savingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeEngineError(w, r, err)
		return
	}
	s, err := h.Engine.RecordSaving(r.Context(), userFrom(r), budget.SavingInput{Amount: req.Amount}, today)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

func (h *Handler) DeleteSaving(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	if err := h.Engine.DeleteSaving(r.Context(), userFrom(r), id); err != nil {
		writeEngineError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CycleDraft(w http.ResponseWriter, r *http.Request) {
	today, err := h.today(r)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	draft, err := h.Engine.NewCycleDraft(r.Context(), userFrom(r), today)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (h *Handler) LeftoverAction(w http.ResponseWriter, r *http.Request) {
	today, err := h.today(r)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	var req leftoverRequest
	if err := decodeJSON(r, &req); err != nil {
		writeEngineError(w, r, err)
		return
	}
	action, err := budget.ParseLeftoverAction(req.Action)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	draft, err := h.Engine.LeftoverAction(r.Context(), userFrom(r), action, today)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (h *Handler) DeleteBills(w http.ResponseWriter, r *http.Request) {
	var req deleteBillsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeEngineError(w, r, err)
		return
	}
	n, err := h.Engine.DeleteBills(r.Context(), userFrom(r), req.IDs)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

func (h *Handler) ConfirmCycle(w http.ResponseWriter, r *http.Request) {
	today, err := h.today(r)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	var req confirmRequest
	if err := decodeJSON(r, &req); err != nil {
		writeEngineError(w, r, err)
		return
	}
	cycle, err := h.Engine.ConfirmCycle(
		r.Context(), userFrom(r),
		budget.Money(req.WeeklyOriginal), budget.Money(req.WeeklyNew),
		today,
	)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, cycle)
}

func (h *Handler) ListSummaries(w http.ResponseWriter, r *http.Request) {
	limit := 12
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 520 {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "limit must be between 1 and 520", Field: "limit"})
			return
		}
		limit = n
	}
	out, err := h.Engine.ListSummaries(r.Context(), userFrom(r), limit)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
