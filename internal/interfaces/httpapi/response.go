package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/bolao-app/bolao-api/internal/usecase"
)

// User-facing messages are in Portuguese; the precise wording is part of the
// API contract with the frontend.
const (
	msgUnauthorized          = "Não autorizado"
	msgUserNotAuthenticated  = "Usuário não autenticado"
	msgInvalidPayload        = "Dados inválidos"
	msgNegativeScore         = "Placar não pode ser negativo"
	msgFixtureNotFound       = "Partida não encontrada"
	msgPredictionsClosed     = "As apostas já fecharam!"
	msgFixtureLookupFailed   = "Erro ao verificar partida"
	msgPredictionSaveFailed  = "Erro ao salvar palpite"
	msgDependencyUnavailable = "Serviço temporariamente indisponível"
	msgInternalError         = "Erro interno do servidor"
)

type errorResponse struct {
	Error string `json:"error"`
}

type mappedError struct {
	HTTPStatus int
	Message    string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	writeJSON(ctx, w, mapped.HTTPStatus, errorResponse{Error: mapped.Message})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: msgInternalError})
}

func mapError(ctx context.Context, err error) mappedError {
	ctx, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, usecase.ErrNegativeScore):
		return mappedError{HTTPStatus: http.StatusBadRequest, Message: msgNegativeScore}
	case errors.Is(err, usecase.ErrPredictionsClosed):
		return mappedError{HTTPStatus: http.StatusBadRequest, Message: msgPredictionsClosed}
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{HTTPStatus: http.StatusBadRequest, Message: msgInvalidPayload}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{HTTPStatus: http.StatusNotFound, Message: msgFixtureNotFound}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{HTTPStatus: http.StatusUnauthorized, Message: msgUnauthorized}
	case errors.Is(err, usecase.ErrFixtureLookup):
		return mappedError{HTTPStatus: http.StatusInternalServerError, Message: msgFixtureLookupFailed}
	case errors.Is(err, usecase.ErrPredictionSave):
		return mappedError{HTTPStatus: http.StatusInternalServerError, Message: msgPredictionSaveFailed}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Message: msgDependencyUnavailable}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Message: msgInternalError}
	}
}
