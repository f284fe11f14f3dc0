package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/flemzord/tgrelay/internal/telegram"
)

const maxSendBody = 1 << 20

// SendRequest is the body of POST /api/message/send.
type SendRequest struct {
	ChatID  telegram.ChatID `json:"chat_id"`
	Message string          `json:"message"`
}

// ErrorResponse is returned for every failed relay request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (g *Gateway) handleSend() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SendRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSendBody))
		if err := dec.Decode(&req); err != nil {
			g.metrics.RecordFailure("bad_request")
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		if err := req.validate(); err != nil {
			g.metrics.RecordFailure("bad_request")
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		msg, err := g.sender.SendMessage(r.Context(), telegram.SendMessageRequest{
			ChatID: req.ChatID,
			Text:   req.Message,
		})
		if err != nil {
			g.metrics.RecordFailure("upstream")
			g.logger.Error("relaying message failed", "chat_id", string(req.ChatID), "error", err)
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}

		g.metrics.RecordSent()
		g.logger.Debug("message relayed", "chat_id", string(req.ChatID), "message_id", msg.MessageID)
		writeJSON(w, http.StatusCreated, msg)
	}
}

func (r SendRequest) validate() error {
	var errs []error
	if r.ChatID == "" {
		errs = append(errs, errors.New("chat_id is required"))
	}
	if r.Message == "" {
		errs = append(errs, errors.New("message is required"))
	}
	return errors.Join(errs...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Success: false, Error: msg})
}
