package respond

import (
	"encoding/json"
	"fmt"
	"net/http"

	apperror "goshop/internal/errors"
	"goshop/internal/pkg/logger"
)

// JSON processa o desfecho de uma chamada de serviço e envia a resposta
// padronizada ao cliente (antes duplicado em cada pacote de handler).
// Erros são mapeados via apperror.MapToHTTPStatus; nada aqui é fatal ao
// processo: toda falha resolve para um estado visível ao usuário.
func JSON(w http.ResponseWriter, r *http.Request, log logger.Logger, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)

		log.Debug("Requisição concluída com sucesso.", map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": successStatus,
		})

		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				log.Error("Falha ao codificar JSON de resposta.", jsonErr)
			}
		}
		return
	}

	// --- Tratamento de Erros ---
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		log.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		// Erros de cliente (4xx) são logados em nível de debug.
		log.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	errorResponse := map[string]interface{}{
		"code":     status,
		"category": category,
		"message":  message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse)
}
