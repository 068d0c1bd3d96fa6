package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/holiday-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type HolidayHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Edit(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Process(w http.ResponseWriter, r *http.Request)

	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListBankHolidays(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	Calendar(w http.ResponseWriter, r *http.Request)
}

type HolidayHandlerImpl struct {
	holidayService holiday.HolidayService
}

func NewHolidayHandler(holidayService holiday.HolidayService) HolidayHandler {
	return &HolidayHandlerImpl{holidayService: holidayService}
}

// Create implements HolidayHandler.
func (h *HolidayHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req holiday.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateHoliday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.holidayService.CreateHoliday(r.Context(), caller, req)
	if err != nil {
		slog.Warn("CreateHoliday failed", "user_id", caller.UserID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created successfully", result)
}

// Edit implements HolidayHandler.
func (h *HolidayHandlerImpl) Edit(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req holiday.EditHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("EditHoliday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.holidayService.EditHoliday(r.Context(), caller, chi.URLParam(r, "id"), req)
	if err != nil {
		slog.Warn("EditHoliday failed", "user_id", caller.UserID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday updated successfully", result)
}

// Delete implements HolidayHandler.
func (h *HolidayHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireActor(w, r)
	if !ok {
		return
	}

	result, err := h.holidayService.DeleteHoliday(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		slog.Warn("DeleteHoliday failed", "user_id", caller.UserID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday deleted successfully", result)
}

// Process implements HolidayHandler.
func (h *HolidayHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req holiday.ProcessHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ProcessHoliday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.holidayService.ProcessHoliday(r.Context(), caller, chi.URLParam(r, "id"), req)
	if err != nil {
		slog.Warn("ProcessHoliday failed", "user_id", caller.UserID, "action", req.Action, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday processed successfully", result)
}

// Get implements HolidayHandler.
func (h *HolidayHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireActor(w, r)
	if !ok {
		return
	}

	result, err := h.holidayService.GetHoliday(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements HolidayHandler.
func (h *HolidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireActor(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filter := holiday.HolidayFilter{
		Status: query.Get("status"),
		Type:   query.Get("type"),
		UserID: query.Get("user_id"),
	}

	result, err := h.holidayService.ListHolidays(r.Context(), caller, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListBankHolidays implements HolidayHandler.
func (h *HolidayHandlerImpl) ListBankHolidays(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireActor(w, r)
	if !ok {
		return
	}

	result, err := h.holidayService.ListBankHolidays(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListRequests implements HolidayHandler.
func (h *HolidayHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireActor(w, r)
	if !ok {
		return
	}

	result, err := h.holidayService.ListRequests(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Calendar implements HolidayHandler.
func (h *HolidayHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireActor(w, r)
	if !ok {
		return
	}

	req := holiday.CalendarRequest{
		Start: r.URL.Query().Get("start"),
		End:   r.URL.Query().Get("end"),
	}

	result, err := h.holidayService.Calendar(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
