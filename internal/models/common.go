// Package models содержит DTO REST-API бэкенда и клиентские параметры запросов.
//
// Клиент не владеет жизненным циклом этих сущностей: всё, что приходит
// от бэкенда, считается только для чтения, кроме вычисляемых на клиенте
// полей (например, Comment.Replies).
package models

// CodeOK — доменный код успеха в конверте ответа.
// HTTP-статус транспорта сам по себе ничего не гарантирует.
const CodeOK = 200

// Order — направление сортировки.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Valid сообщает, допустимо ли значение направления.
func (o Order) Valid() bool { return o == OrderAsc || o == OrderDesc }

// Envelope — единый конверт ответа бэкенда: {code, message, data?}.
type Envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// OK сообщает об успехе на доменном уровне.
func (e Envelope[T]) OK() bool { return e.Code == CodeOK }

// Page — страница списка.
// Pages — общее число страниц; по нему клиент определяет конец данных.
type Page[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Pages    int `json:"pages"`
}

// HasMore — есть ли страницы после текущей.
func (p Page[T]) HasMore() bool { return p.Page < p.Pages }

// PageParams — базовые параметры постраничной выдачи.
type PageParams struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// ValidationErrorResponse — ответ бэкенда с ошибками по полям.
type ValidationErrorResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Fields  map[string]any `json:"fields"`
}
