package handler

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/joestump/cuecard/internal/coach"
	"github.com/joestump/cuecard/internal/cuecard"
	"github.com/joestump/cuecard/internal/export"
	"github.com/joestump/cuecard/internal/metrics"
	"github.com/joestump/cuecard/internal/session"
)

// CardPage is the template data for the form page and its result fragment.
type CardPage struct {
	BasePage
	Sports   []string
	Request  cuecard.Request
	State    cuecard.State
	Card     *cuecard.Card
	CardHTML template.HTML
	Error    string
	Missing  map[string]bool

	// ServerKey is true when the server has its own model credential.
	ServerKey  bool
	SessionKey bool
}

// NeedsAPIKey reports whether the form cannot generate until a key is entered.
func (p CardPage) NeedsAPIKey() bool { return !p.ServerKey && !p.SessionKey }

// CardsHandler serves the cue card form, submissions and image export.
type CardsHandler struct {
	sessions *session.Store
	coach    *coach.Service
	capturer export.Capturer
	log      *zap.Logger
}

// NewCardsHandler creates a new CardsHandler.
func NewCardsHandler(ss *session.Store, cs *coach.Service, c export.Capturer, log *zap.Logger) *CardsHandler {
	return &CardsHandler{sessions: ss, coach: cs, capturer: c, log: log}
}

// visibleCard returns the card the page shows for snap. A parse failure hides
// the previous card until the athlete dismisses the error or submits again.
func visibleCard(snap session.Snapshot) *cuecard.Card {
	if snap.State == cuecard.StateParseFailed {
		return nil
	}
	return snap.Card
}

func (h *CardsHandler) page(r *http.Request) CardPage {
	ctx := r.Context()
	snap := h.sessions.Load(ctx)

	p := CardPage{
		BasePage:   newBasePage(r),
		Sports:     cuecard.Sports,
		Request:    snap.Request,
		State:      snap.State,
		Card:       visibleCard(snap),
		Error:      snap.Error,
		ServerKey:  h.coach.Configured(),
		SessionKey: h.sessions.APIKey(ctx) != "",
	}
	if p.Request.Sport == "" {
		p.Request.Sport = cuecard.Sports[0]
	}

	// Highlight rejected fields after a failed submission.
	if p.Error != "" {
		var ve *cuecard.ValidationError
		if err := snap.Request.Validate(); errors.As(err, &ve) {
			p.Missing = make(map[string]bool, len(ve.Fields))
			for _, f := range ve.Fields {
				p.Missing[f] = true
			}
		}
	}

	if p.Card != nil {
		html, err := cuecard.Render(p.Card)
		if err != nil {
			h.log.Error("render card", zap.Error(err))
			p.Card = nil
			p.Error = cuecard.UserMessage(&cuecard.ParseError{Err: err})
		} else {
			p.CardHTML = html
		}
	}
	return p
}

// Index serves GET /.
func (h *CardsHandler) Index(w http.ResponseWriter, r *http.Request) {
	render(w, "index.html", h.page(r))
}

// Create handles POST /cards. One submission per session may be in flight;
// a second one gets 409 Conflict.
func (h *CardsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	req := cuecard.Request{
		Sport:        r.FormValue("sport"),
		Situation:    r.FormValue("situation"),
		MentalState:  r.FormValue("mental_state"),
		DesiredState: r.FormValue("desired_state"),
		SuccessKey:   r.FormValue("success_key"),
	}

	ctx := r.Context()
	release, err := h.sessions.Acquire(ctx)
	if err != nil {
		http.Error(w, cuecard.UserMessage(err), http.StatusConflict)
		return
	}
	defer release()

	res := h.coach.Submit(ctx, req, h.sessions.APIKey(ctx))
	if res.Err != nil {
		h.log.Info("card not generated",
			zap.Error(res.Err),
			zap.String("state", string(res.Cycle.State)),
			zap.String("sport", res.Request.Sport),
		)
	}
	h.sessions.Save(ctx, coach.Apply(h.sessions.Load(ctx), res))

	h.respond(w, r)
}

// Dismiss handles POST /cards/dismiss and clears the current error message.
func (h *CardsHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	snap := h.sessions.Load(ctx)
	snap.Error = ""
	if snap.State == cuecard.StateParseFailed {
		snap.State = cuecard.StateIdle
	}
	h.sessions.Save(ctx, snap)

	h.respond(w, r)
}

// respond renders the result fragment for HTMX and redirects plain form posts.
func (h *CardsHandler) respond(w http.ResponseWriter, r *http.Request) {
	if isHTMX(r) {
		renderFragment(w, "result", h.page(r))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Export handles GET /cards/export.png.
func (h *CardsHandler) Export(w http.ResponseWriter, r *http.Request) {
	card := visibleCard(h.sessions.Load(r.Context()))
	if card == nil {
		metrics.ExportsTotal.WithLabelValues("no_card").Inc()
		http.NotFound(w, r)
		return
	}

	img, err := h.capturer.Capture(r.Context(), card)
	if err != nil {
		metrics.ExportsTotal.WithLabelValues("error").Inc()
		h.log.Error("export card image", zap.Error(err))
		http.Error(w, "could not create image", http.StatusInternalServerError)
		return
	}
	metrics.ExportsTotal.WithLabelValues("ok").Inc()

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(img)
}
