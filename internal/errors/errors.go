// errors описывает таксономию ошибок клиента и её отображение наружу.
//
// Три класса ошибок:
//   - транспорт (ErrTransport): запрос не дошёл или ответ не прочитан;
//   - доменная (*DomainError): конверт ответа с code != 200, даже при
//     HTTP 200 транспорта;
//   - валидация (*ValidationError): отказ до отправки запроса.
//
// Дальше ошибка превращается либо в уведомление (ToNotice), либо
// в JSON-ответ view-сервера (ToHTTP/WriteError).
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

var (
	// ErrTransport — сетевой сбой или обрыв при чтении ответа.
	ErrTransport = stderrors.New("transport failure")
	// ErrDecode — тело ответа не является ожидаемым JSON-конвертом.
	ErrDecode = stderrors.New("malformed response")
	// ErrStale — ответ устарел: за время запроса началось новое поколение фильтров.
	ErrStale = stderrors.New("stale response")
	// ErrForbidden — действие недоступно текущему пользователю (проверка на клиенте).
	ErrForbidden = stderrors.New("no permission")
	// ErrUnauthenticated — действие требует входа.
	ErrUnauthenticated = stderrors.New("unauthenticated")
	// ErrHydrating — состояние сессии ещё не восстановлено из хранилища.
	ErrHydrating = stderrors.New("session is hydrating")
	// ErrNotFound — запрошенная сущность отсутствует в клиентском состоянии.
	ErrNotFound = stderrors.New("not found")
)

// DomainError — отказ бэкенда, закодированный в конверте ответа.
// Status — HTTP-статус транспорта (для диагностики, не для ветвления).
type DomainError struct {
	Status  int
	Code    int
	Message string
}

func (e *DomainError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: code %d", e.Code)
	}

	return fmt.Sprintf("api error: code %d: %s", e.Code, e.Message)
}

// ValidationError — ошибки полей формы, обнаруженные до запроса.
type ValidationError struct {
	Fields map[string]string
}

// Invalid собирает ValidationError для одного поля.
func Invalid(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// AsDomain извлекает *DomainError из цепочки.
func AsDomain(err error) (*DomainError, bool) {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de, true
	}

	return nil, false
}

// AsValidation извлекает *ValidationError из цепочки.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stderrors.As(err, &ve) {
		return ve, true
	}

	return nil, false
}

// APIError — единый формат ошибки view-сервера.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	RequestID string            `json:"request_id,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку клиентского слоя в HTTP-статус и тело ответа.
//
// Поведение:
//   - err == nil — программная ошибка вызова: 500/internal;
//   - *ValidationError — 400 с перечнем полей;
//   - *DomainError — статус по доменному коду через baseFromDomain(),
//     сообщение бэкенда передаётся как есть: оно предназначено пользователю;
//   - транспорт — 504 по дедлайну, 499 по отмене, иначе 503;
//   - прочее — 500/internal без утечки деталей.
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, internal()
	}

	if ve, ok := AsValidation(err); ok {
		return http.StatusBadRequest, ErrorResponse{Error: APIError{
			Code:    "validation_failed",
			Message: "validation failed",
			Fields:  ve.Fields,
		}}
	}

	if de, ok := AsDomain(err); ok {
		status, code, msg := baseFromDomain(de.Code)
		if de.Message != "" {
			msg = de.Message
		}
		return status, ErrorResponse{Error: APIError{Code: code, Message: msg}}
	}

	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, simple("deadline_exceeded", "deadline exceeded")
	case stderrors.Is(err, context.Canceled):
		return StatusClientClosedRequest, simple("canceled", "canceled")
	case stderrors.Is(err, ErrTransport):
		return http.StatusServiceUnavailable, simple("unavailable", "backend unavailable")
	case stderrors.Is(err, ErrDecode):
		return http.StatusBadGateway, simple("bad_gateway", "malformed backend response")
	case stderrors.Is(err, ErrForbidden):
		return http.StatusForbidden, simple("permission_denied", "permission denied")
	case stderrors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, simple("unauthenticated", "unauthenticated")
	case stderrors.Is(err, ErrHydrating):
		return http.StatusConflict, simple("hydrating", "session is hydrating")
	case stderrors.Is(err, ErrStale):
		return http.StatusConflict, simple("stale", "superseded by a newer request")
	case stderrors.Is(err, ErrNotFound):
		return http.StatusNotFound, simple("not_found", "not found")
	default:
		return http.StatusInternalServerError, internal()
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// baseFromDomain — маппинг доменного кода конверта в HTTP/код/сообщение.
// Бэкенд использует HTTP-подобные коды в поле code:
//   - 400 (ошибочные параметры) -> 400
//   - 401 (нет или просрочен токен) -> 401
//   - 403 (чужой ресурс, нет роли) -> 403
//   - 404 -> 404
//   - 409 (дубликат: проект, тег, оценка) -> 409
//   - 422 (ошибка схемы запроса) -> 422
//   - 429 -> 429
//   - прочее (5xx и неизвестные) -> 502: сбой на стороне бэкенда
func baseFromDomain(code int) (int, string, string) {
	switch code {
	case http.StatusBadRequest:
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case http.StatusUnauthorized:
		return http.StatusUnauthorized, "unauthenticated", "unauthenticated"
	case http.StatusForbidden:
		return http.StatusForbidden, "permission_denied", "permission denied"
	case http.StatusNotFound:
		return http.StatusNotFound, "not_found", "not found"
	case http.StatusConflict:
		return http.StatusConflict, "already_exists", "already exists"
	case http.StatusUnprocessableEntity:
		return http.StatusUnprocessableEntity, "unprocessable", "unprocessable request"
	case http.StatusTooManyRequests:
		return http.StatusTooManyRequests, "resource_exhausted", "resource exhausted"
	default:
		return http.StatusBadGateway, "upstream_error", "backend error"
	}
}

func simple(code, msg string) ErrorResponse {
	return ErrorResponse{Error: APIError{Code: code, Message: msg}}
}

func internal() ErrorResponse {
	return simple("internal", "internal error")
}
