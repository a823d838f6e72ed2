// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"

	"github.com/olegiv/folio/internal/contact"
	"github.com/olegiv/folio/internal/hcaptcha"
	"github.com/olegiv/folio/internal/session"
	"github.com/olegiv/folio/internal/util"
)

// API response messages for POST /api/contact.
const (
	apiMsgSent          = "Message sent successfully"
	apiMsgFieldsMissing = "All fields are required"
	apiMsgSendFailed    = "Failed to send message"
)

// contactAnchor is where the form lives on the home page.
const contactAnchor = "/#contact"

// ContactHandler handles the contact form and the contact API endpoint.
type ContactHandler struct {
	pages    *PagesHandler
	sessions *scs.SessionManager
	service  *contact.Service
	endpoint contact.Deliverer
	logger   *slog.Logger
}

// NewContactHandler creates a new ContactHandler. service backs the HTML form;
// endpoint is the strategy used by POST /api/contact.
func NewContactHandler(pages *PagesHandler, sessions *scs.SessionManager, service *contact.Service, endpoint contact.Deliverer, logger *slog.Logger) *ContactHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactHandler{
		pages:    pages,
		sessions: sessions,
		service:  service,
		endpoint: endpoint,
		logger:   logger,
	}
}

// Submit handles POST /contact from the HTML form. A sent message redirects
// back to the form with a success banner; any other outcome re-renders the
// home page keeping the entered values.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	in := contact.Input{
		Name:    r.PostFormValue(contact.FieldName),
		Email:   r.PostFormValue(contact.FieldEmail),
		Subject: r.PostFormValue(contact.FieldSubject),
		Message: r.PostFormValue(contact.FieldMessage),
		Phone:   r.PostFormValue(contact.FieldPhone),
	}
	meta := contact.Meta{
		RemoteIP:     util.ClientIP(r),
		UserAgent:    r.UserAgent(),
		CaptchaToken: hcaptcha.ResponseFromForm(r),
	}

	res := h.service.Submit(r.Context(), in, meta)

	form := ContactFormView{
		Values: res.Input,
		Errors: res.Errors,
		Status: res.Status,
		Banner: res.Message,
	}

	switch res.Status {
	case contact.StatusSent:
		flashAndRedirect(w, r, h.sessions, contactAnchor, session.Flash{Success: res.Message})
	case contact.StatusInvalid:
		h.pages.renderHome(w, r, http.StatusUnprocessableEntity, form)
	case contact.StatusConfigError:
		h.pages.renderHome(w, r, http.StatusServiceUnavailable, form)
	default:
		h.pages.renderHome(w, r, http.StatusBadGateway, form)
	}
}

// API handles POST /api/contact. It requires the four text fields, logs the
// submission through the endpoint strategy and answers with a small JSON body.
// A body that cannot be decoded is a server-side failure, not a missing field.
func (h *ContactHandler) API(w http.ResponseWriter, r *http.Request) {
	var in contact.Input
	if err := decodeJSON(w, r, &in); err != nil {
		h.logger.ErrorContext(r.Context(), "contact api body decode failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, apiMsgSendFailed)
		return
	}

	if !contact.RequiredPresent(in) {
		writeJSONError(w, http.StatusBadRequest, apiMsgFieldsMissing)
		return
	}

	sub := contact.Submission{
		ID:         uuid.NewString(),
		Input:      contact.Normalize(in),
		RemoteIP:   util.ClientIP(r),
		UserAgent:  r.UserAgent(),
		ReceivedAt: time.Now(),
	}

	if err := h.endpoint.Deliver(r.Context(), sub); err != nil {
		h.logger.ErrorContext(r.Context(), "contact api delivery failed",
			"error", err,
			"submission_id", sub.ID,
			"strategy", h.endpoint.Name(),
		)
		writeJSONError(w, http.StatusInternalServerError, apiMsgSendFailed)
		return
	}

	writeJSONSuccess(w, map[string]any{
		"message": apiMsgSent,
	})
}
