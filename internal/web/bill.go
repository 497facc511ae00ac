package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/kudimara/kudimara/internal/forms"
	"github.com/kudimara/kudimara/internal/i18n"
	"github.com/kudimara/kudimara/internal/session"
	"github.com/kudimara/kudimara/internal/store"
	"github.com/kudimara/kudimara/internal/tools"
)

// handleBillView renders the session's bills; with ?id= it also opens the
// inline edit form prefilled from the stored record.
func (h *Handler) handleBillView(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	st := h.reg.For(store.ToolBill)
	p := &page{
		Title:   i18n.T("bill_title", sess.Lang),
		Tool:    store.ToolBill,
		Records: st.FilterBySession(sess.SID),
	}
	if id := r.URL.Query().Get("id"); id != "" {
		env, ok := st.GetByID(id)
		if !ok || env.SessionID != sess.SID {
			sess.AddFlash(session.FlashDanger, i18n.T("bill_not_found", sess.Lang))
		} else {
			p.EditID = id
			p.EditFields = tools.BillEditFields()
			p.EditValues = billEditValues(env)
		}
	}
	h.view.render(w, sess, "bills", p, http.StatusOK)
}

// handleBillAction dispatches the view/edit form's POST actions: edit,
// delete, toggle_status. Every path redirects back (PRG) with a flash.
func (h *Handler) handleBillAction(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	if err := r.ParseForm(); err != nil {
		h.view.Error(w, r, sess, http.StatusBadRequest)
		return
	}
	if !h.sessions.VerifyCSRF(sess, r.PostFormValue("_csrf")) {
		h.view.Error(w, r, sess, http.StatusBadRequest)
		return
	}

	st := h.reg.For(store.ToolBill)
	id := r.PostFormValue("id")
	env, ok := st.GetByID(id)
	if !ok || env.SessionID != sess.SID {
		sess.AddFlash(session.FlashDanger, i18n.T("bill_not_found", sess.Lang))
		h.redirect(w, r, sess, "/bill/view_edit")
		return
	}

	switch action := r.PostFormValue("action"); action {
	case "delete":
		if st.DeleteByID(id) {
			sess.AddFlash(session.FlashSuccess, i18n.T("bill_deleted", sess.Lang))
		} else {
			sess.AddFlash(session.FlashDanger, i18n.T("bill_not_found", sess.Lang))
		}
	case "toggle_status":
		if err := tools.ToggleBillStatus(st, id, time.Now()); err != nil {
			slog.Error("toggling bill status", "bill_id", id, "session_id", sess.SID, "error", err)
			sess.AddFlash(session.FlashDanger, i18n.T("core_save_failed", sess.Lang))
		} else {
			sess.AddFlash(session.FlashSuccess, i18n.T("bill_updated", sess.Lang))
		}
	case "edit":
		fields := tools.BillEditFields()
		values, errs := forms.Validate(fields, r.PostForm, sess.Lang)
		if errs != nil {
			// Re-render the edit form in place with the rejected input.
			h.view.render(w, sess, "bills", &page{
				Title:      i18n.T("bill_title", sess.Lang),
				Tool:       store.ToolBill,
				Records:    st.FilterBySession(sess.SID),
				EditID:     id,
				EditFields: fields,
				EditValues: values,
				EditErrors: errs,
			}, http.StatusOK)
			return
		}
		if err := tools.EditBill(st, id, values, time.Now()); err != nil {
			slog.Error("editing bill", "bill_id", id, "session_id", sess.SID, "error", err)
			sess.AddFlash(session.FlashDanger, i18n.T("core_save_failed", sess.Lang))
		} else {
			sess.AddFlash(session.FlashSuccess, i18n.T("bill_updated", sess.Lang))
		}
	default:
		h.view.Error(w, r, sess, http.StatusBadRequest)
		return
	}
	h.redirect(w, r, sess, "/bill/view_edit")
}

// handleUnsubscribe turns reminder emails off for every bill owned by the
// address inside the signed token. The link arrives in reminder emails and
// works without a session.
func (h *Handler) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	email, err := h.sessions.VerifyEmailToken(r.PathValue("token"))
	if err != nil {
		h.view.Error(w, r, sess, http.StatusNotFound)
		return
	}
	n := tools.UnsubscribeEmail(h.reg.For(store.ToolBill), email)
	slog.Info("unsubscribed email from reminders", "bills", n)
	sess.AddFlash(session.FlashSuccess, i18n.T("bill_unsubscribed", sess.Lang, map[string]any{"email": email}))
	h.redirect(w, r, sess, "/")
}

// billEditValues flattens a stored bill back into form input strings.
func billEditValues(env store.Envelope) forms.Values {
	v := make(forms.Values, len(env.Data))
	for _, f := range tools.BillEditFields() {
		switch raw := env.Data[f.Name].(type) {
		case nil:
		case string:
			v[f.Name] = raw
		case bool:
			v[f.Name] = fmt.Sprintf("%t", raw)
		case float64:
			if raw == float64(int64(raw)) {
				v[f.Name] = fmt.Sprintf("%d", int64(raw))
			} else {
				v[f.Name] = fmt.Sprintf("%g", raw)
			}
		default:
			v[f.Name] = fmt.Sprintf("%v", raw)
		}
	}
	return v
}
