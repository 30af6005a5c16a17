package handler

import (
	"net/http"
	httputil "roombook/pkg/http"
	"roombook/pkg/logger"
)

func writeError(log *logger.Logger, w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func writeSuccess(log *logger.Logger, w http.ResponseWriter, handler string, data any) {
	if err := httputil.WriteSuccess(w, data); err != nil {
		log.Error("failed to write success response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}

func writeCreated(log *logger.Logger, w http.ResponseWriter, handler string, data any) {
	if err := httputil.WriteCreated(w, data); err != nil {
		log.Error("failed to write created response", "handler", handler, "operation", "WriteCreated", "error", err)
	}
}
