package errors

import (
	"context"
	stderrors "errors"
)

// Kind — уровень уведомления.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Notice — кратковременное уведомление для пользователя.
// Key — ключ каталога сообщений; Message — текст бэкенда, если он есть
// (тогда он показывается вместо локализованного текста по Key).
type Notice struct {
	Kind    Kind   `json:"kind"`
	Key     string `json:"key"`
	Message string `json:"message,omitempty"`
}

// Ключи сообщений об ошибках.
const (
	KeyInternal        = "error.internal"
	KeyTransport       = "error.transport"
	KeyTimeout         = "error.timeout"
	KeyDecode          = "error.decode"
	KeyDomain          = "error.domain"
	KeyValidation      = "error.validation"
	KeyForbidden       = "error.forbidden"
	KeyUnauthenticated = "error.unauthenticated"
	KeyHydrating       = "error.hydrating"
	KeyStale           = "error.stale"
	KeyNotFound        = "error.not_found"
)

// ToNotice отображает ошибку любого класса в уведомление.
// ErrStale даёт KindInfo: вызывающий код обычно такое уведомление не показывает.
func ToNotice(err error) Notice {
	if err == nil {
		return Notice{Kind: KindError, Key: KeyInternal}
	}

	if ve, ok := AsValidation(err); ok {
		return Notice{Kind: KindWarning, Key: KeyValidation, Message: firstField(ve)}
	}
	if de, ok := AsDomain(err); ok {
		return Notice{Kind: KindError, Key: KeyDomain, Message: de.Message}
	}

	for _, m := range noticeTable {
		if stderrors.Is(err, m.target) {
			return Notice{Kind: m.kind, Key: m.key}
		}
	}

	return Notice{Kind: KindError, Key: KeyInternal}
}

// Порядок важен: дедлайн проверяется раньше общего транспортного сбоя.
var noticeTable = []struct {
	target error
	kind   Kind
	key    string
}{
	{ErrStale, KindInfo, KeyStale},
	{context.DeadlineExceeded, KindError, KeyTimeout},
	{context.Canceled, KindInfo, KeyStale},
	{ErrTransport, KindError, KeyTransport},
	{ErrDecode, KindError, KeyDecode},
	{ErrForbidden, KindWarning, KeyForbidden},
	{ErrUnauthenticated, KindWarning, KeyUnauthenticated},
	{ErrHydrating, KindInfo, KeyHydrating},
	{ErrNotFound, KindWarning, KeyNotFound},
}

func firstField(ve *ValidationError) string {
	msg := ""
	best := ""
	for k, v := range ve.Fields {
		if best == "" || k < best {
			best, msg = k, v
		}
	}

	return msg
}
