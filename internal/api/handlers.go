package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rxtech-lab/settlement-desk/internal/address"
	"github.com/rxtech-lab/settlement-desk/internal/trades"
	"github.com/rxtech-lab/settlement-desk/internal/types"
	"github.com/rxtech-lab/settlement-desk/pkg/errors"
	"go.uber.org/zap"
)

// Group names accepted by the group query parameter.
const (
	GroupPending = "pending"
	GroupOther   = "other"
)

// TradePage is one page of a trade group.
type TradePage struct {
	Items    []types.TradeRecord `json:"items"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"pageSize"`
	Pages    int                 `json:"pages"`
	Total    int                 `json:"total"`
}

// TradesResponse is the body of GET /trades. Count is the number of
// trades fetched, before the search filter.
type TradesResponse struct {
	User    string     `json:"user"`
	Count   int        `json:"count"`
	Pending *TradePage `json:"pending,omitempty"`
	Other   *TradePage `json:"other,omitempty"`
}

// StatusRequest is the body of PATCH /trades/{id}.
type StatusRequest struct {
	Status string `json:"status"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	group := strings.ToLower(query.Get("group"))
	if group != "" && group != GroupPending && group != GroupOther {
		s.writeError(w, errors.Newf(errors.ErrCodeInvalidArgument, "unknown group %q", group))
		return
	}

	page, err := intParam(query.Get("page"), 0)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if page < 0 {
		s.writeError(w, errors.Newf(errors.ErrCodeInvalidArgument, "page must not be negative, got %d", page))
		return
	}

	size, err := intParam(query.Get("size"), s.opts.PageSize)
	if err != nil {
		s.writeError(w, err)
		return
	}

	limit, err := intParam(query.Get("limit"), s.opts.FetchLimit)
	if err != nil {
		s.writeError(w, err)
		return
	}

	fetched, err := s.opts.Repository.FetchTrades(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}

	groups := trades.Group(fetched, query.Get("q"))

	resp := TradesResponse{
		User:  address.Format(s.opts.Account),
		Count: len(fetched),
	}

	if group == "" || group == GroupPending {
		if resp.Pending, err = pageOf(groups.Pending, page, size); err != nil {
			s.writeError(w, err)
			return
		}
	}

	if group == "" || group == GroupOther {
		if resp.Other, err = pageOf(groups.Other, page, size); err != nil {
			s.writeError(w, err)
			return
		}
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetTrade(w http.ResponseWriter, r *http.Request) {
	trade, err := s.opts.Repository.GetTrade(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, trade)
}

func (s *Server) handleCreateTrade(w http.ResponseWriter, r *http.Request) {
	var answers types.WizardAnswers
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidArgument, "invalid request body", err))
		return
	}

	trade, err := s.opts.Submitter.Submit(r.Context(), answers, s.opts.Account)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, trade)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidArgument, "invalid request body", err))
		return
	}

	status := types.ParseTradeStatus(req.Status)
	if !status.IsKnown() {
		s.writeError(w, errors.Newf(errors.ErrCodeInvalidStatus, "unknown trade status %q", req.Status))
		return
	}

	if err := s.opts.Repository.UpdateStatus(r.Context(), id, status); err != nil {
		s.writeError(w, err)
		return
	}

	trade, err := s.opts.Repository.GetTrade(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, trade)
}

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	if s.opts.Balances == nil {
		s.writeJSON(w, http.StatusNotImplemented, ErrorResponse{
			Code:    int(errors.ErrCodeBalanceFetchFailed),
			Message: "token balances are not configured",
		})

		return
	}

	balances, err := s.opts.Balances.Balances(r.Context(), mux.Vars(r)["address"])
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, balances)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func pageOf(group []types.TradeRecord, page, size int) (*TradePage, error) {
	items, err := trades.Page(group, page, size)
	if err != nil {
		return nil, err
	}

	pages, err := trades.PageCount(len(group), size)
	if err != nil {
		return nil, err
	}

	return &TradePage{
		Items:    items,
		Page:     page,
		PageSize: size,
		Pages:    pages,
		Total:    len(group),
	}, nil
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeInvalidArgument, err, "%q is not an integer", raw)
	}

	return v, nil
}

// statusFor maps an error code onto an HTTP status.
func statusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeInvalidArgument,
		errors.ErrCodeMissingField,
		errors.ErrCodeInvalidAddress,
		errors.ErrCodeInvalidAmount,
		errors.ErrCodeInvalidExpiry,
		errors.ErrCodeInvalidStatus:
		return http.StatusBadRequest
	case errors.ErrCodeTradeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeStoreUnavailable:
		return http.StatusServiceUnavailable
	case errors.ErrCodeBalanceFetchFailed:
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)

	if status >= http.StatusInternalServerError {
		s.opts.Logger.Error("Request failed", zap.Int("code", int(code)), zap.Error(err))
	}

	s.writeJSON(w, status, ErrorResponse{
		Code:    int(code),
		Message: err.Error(),
		Fields:  errors.MissingFields(err),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.opts.Logger.Warn("Failed to encode response", zap.Error(err))
	}
}
