package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/export"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
)

// persistenceWarning is shown when cards were generated but not saved.
const persistenceWarning = "Flashcards were generated but could not be saved to your history"

// FlashcardHandler serves generation and ad hoc export.
type FlashcardHandler struct {
	generator GenerationService
	now       func() time.Time
	logger    *slog.Logger
}

// NewFlashcardHandler creates a FlashcardHandler.
func NewFlashcardHandler(generator GenerationService, log *slog.Logger) *FlashcardHandler {
	if log == nil {
		log = slog.Default()
	}
	return &FlashcardHandler{
		generator: generator,
		now:       time.Now,
		logger:    log.With(slog.String("component", "flashcard_handler")),
	}
}

// Generate handles POST /api/flashcards/generate. Each call performs
// exactly one provider request.
func (h *FlashcardHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req GenerateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	log := logger.FromContextOrDefault(r.Context(), h.logger)
	log.Debug("generating flashcards",
		slog.Int("count", req.Count),
		slog.String("difficulty", req.Difficulty),
		slog.String("mode", req.Mode),
		slog.String("provider", req.Provider))

	result, err := h.generator.Generate(r.Context(), userID, req.ToDomain())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate flashcards")
		return
	}

	resp := GenerateResponse{Flashcards: result.Cards}
	if result.Session != nil {
		resp.SessionID = &result.Session.ID
	}
	if result.PersistenceWarning != nil {
		resp.Warning = persistenceWarning
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Export handles POST /api/flashcards/export, returning the posted cards
// as a JSON download.
func (h *FlashcardHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	writeExport(w, r, export.NewDocument(req.Topic, req.Flashcards, h.now()))
}

func writeExport(w http.ResponseWriter, r *http.Request, doc *export.Document) {
	body, err := doc.Marshal()
	if err != nil {
		HandleAPIError(w, r, err, "Failed to export flashcards")
		return
	}
	shared.RespondWithAttachment(w, r, export.ContentType, doc.ContentDisposition(), body)
}
