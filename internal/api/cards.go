package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/joestump/cuecard/internal/coach"
)

// maxBodyBytes caps request bodies; model replies are a few KB at most.
const maxBodyBytes = 64 << 10

type cardsAPIHandler struct {
	coach *coach.Service
	log   *zap.Logger
}

// Create generates a card with the server's model credential.
// POST /api/v1/cards
//
// @Summary      Generate a cue card
// @Description  Builds the prompt from the request, calls the configured model and parses the reply
// @Tags         Cards
// @Accept       json
// @Produce      json
// @Param        request  body      CardRequest  true  "Athlete's answers"
// @Success      200      {object}  CardResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      422      {object}  ErrorResponse
// @Failure      502      {object}  ErrorResponse
// @Failure      503      {object}  ErrorResponse
// @Router       /cards [post]
func (h *cardsAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CardRequest
	if !decode(w, r, &req) {
		return
	}

	res := h.coach.Submit(r.Context(), req.toDomain(), "")
	if res.Err != nil {
		h.log.Info("api: card not generated", zap.Error(res.Err), zap.String("state", string(res.Cycle.State)))
		writeCycleError(w, res.Err)
		return
	}
	writeJSON(w, http.StatusOK, cardResponse(res.Card))
}

// Parse turns raw model output into a card without calling the model.
// POST /api/v1/cards/parse
//
// @Summary      Parse model output
// @Description  Splits markdown with strategy and cues headings into a card
// @Tags         Cards
// @Accept       json
// @Produce      json
// @Param        request  body      ParseRequest  true  "Raw model output"
// @Success      200      {object}  CardResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      422      {object}  ErrorResponse
// @Router       /cards/parse [post]
func (h *cardsAPIHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Raw) == "" {
		writeError(w, http.StatusBadRequest, "raw is required", "BAD_REQUEST")
		return
	}

	card, err := h.coach.Parse(req.Raw)
	if err != nil {
		writeCycleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cardResponse(card))
}

// Prompt returns the prompt that would be sent for a request.
// POST /api/v1/prompts
//
// @Summary      Preview the prompt
// @Tags         Cards
// @Accept       json
// @Produce      json
// @Param        request  body      CardRequest  true  "Athlete's answers"
// @Success      200      {object}  PromptResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /prompts [post]
func (h *cardsAPIHandler) Prompt(w http.ResponseWriter, r *http.Request) {
	var req CardRequest
	if !decode(w, r, &req) {
		return
	}

	prompt, err := h.coach.Prompt(req.toDomain())
	if err != nil {
		writeCycleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PromptResponse{Prompt: prompt})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return false
	}
	return true
}
