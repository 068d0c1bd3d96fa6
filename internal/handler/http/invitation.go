package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/invitation"
	"github.com/cmlabs-hris/holiday-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type InvitationHandler interface {
	// Employer endpoints
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Revoke(w http.ResponseWriter, r *http.Request)
	// Public endpoints, the token is the credential
	GetInvitationByToken(w http.ResponseWriter, r *http.Request)
	AcceptInvitation(w http.ResponseWriter, r *http.Request)
}

type invitationHandlerImpl struct {
	invitationService invitation.InvitationService
}

func NewInvitationHandler(invitationService invitation.InvitationService) InvitationHandler {
	return &invitationHandlerImpl{
		invitationService: invitationService,
	}
}

// Create implements InvitationHandler
func (h *invitationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req invitation.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateInvitation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.invitationService.Create(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Invitation created successfully", result)
}

// List implements InvitationHandler
func (h *invitationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireActor(w, r)
	if !ok {
		return
	}

	result, err := h.invitationService.List(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Revoke implements InvitationHandler
func (h *invitationHandlerImpl) Revoke(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := h.invitationService.Revoke(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invitation revoked successfully", nil)
}

// GetInvitationByToken implements InvitationHandler - public endpoint
func (h *invitationHandlerImpl) GetInvitationByToken(w http.ResponseWriter, r *http.Request) {
	result, err := h.invitationService.GetByToken(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AcceptInvitation implements InvitationHandler - creates the invitee's account
func (h *invitationHandlerImpl) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	var req invitation.AcceptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Token = chi.URLParam(r, "token")

	result, err := h.invitationService.Accept(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Invitation accepted successfully", result)
}
