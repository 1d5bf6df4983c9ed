package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-xr/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-xr/internal/entity"
)

const maxRecordSize = 64 << 10

type optionRepo interface {
	Save(ctx context.Context, key string, set *entity.OptionSet) error
	GetByKey(ctx context.Context, key string) (*entity.OptionSet, error)
	DeleteByKey(ctx context.Context, key string) error
}

// optionsHandler seeds and inspects the persisted option records.
type optionsHandler struct {
	logger     *slog.Logger
	optionRepo optionRepo
}

func (that *optionsHandler) get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	set, err := that.optionRepo.GetByKey(r.Context(), key)
	if err != nil {
		that.writeError(w, "get", key, err)
		return
	}

	writeJSON(w, http.StatusOK, set)
}

// put stores the body after the same checks a session applies on load.
func (that *optionsHandler) put(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRecordSize))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	set, err := entity.ParseOptionSet(body)
	if err != nil {
		that.writeError(w, "put", key, err)
		return
	}

	if err = that.optionRepo.Save(r.Context(), key, set); err != nil {
		that.writeError(w, "put", key, err)
		return
	}

	that.logger.Info("option set stored", "key", key, "topic", set.Topic)
	writeJSON(w, http.StatusOK, set)
}

func (that *optionsHandler) delete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	if err := that.optionRepo.DeleteByKey(r.Context(), key); err != nil {
		that.writeError(w, "delete", key, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *optionsHandler) writeError(w http.ResponseWriter, method, key string, err error) {
	switch {
	case errors.Is(err, apperror.ErrOptionsNotFound):
		http.Error(w, "option set not found", http.StatusNotFound)
	case errors.Is(err, apperror.ErrMalformedOptions):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		that.logger.Error("option set request failed", "method", method, "key", key, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
