package errors

import (
	"fmt"
	"strings"
)

// ErrNoURLFound возникает, когда во входящем сообщении нет ссылки.
// Это штатный исход, а не сбой.
type ErrNoURLFound struct {
	Message string
}

func (e *ErrNoURLFound) Error() string {
	return "ссылка в сообщении не найдена"
}

func (e *ErrNoURLFound) Is(target error) bool {
	_, ok := target.(*ErrNoURLFound)
	return ok
}

type ErrInvalidURL struct {
	URL string
}

func (e *ErrInvalidURL) Error() string {
	return "неверный формат URL: " + e.URL
}

type ErrUnsupportedPlatform struct {
	Platform string
}

func (e *ErrUnsupportedPlatform) Error() string {
	return fmt.Sprintf("для платформы %s не настроены стратегии получения метаданных", e.Platform)
}

func (e *ErrUnsupportedPlatform) Is(target error) bool {
	_, ok := target.(*ErrUnsupportedPlatform)
	return ok
}

// ErrUpstreamUnavailable - внешний сервис не ответил, ответил не 2xx или не уложился в таймаут.
type ErrUpstreamUnavailable struct {
	Service string
	Cause   error
}

func (e *ErrUpstreamUnavailable) Error() string {
	return fmt.Sprintf("сервис %s недоступен: %v", e.Service, e.Cause)
}

func (e *ErrUpstreamUnavailable) Unwrap() error {
	return e.Cause
}

func (e *ErrUpstreamUnavailable) Is(target error) bool {
	_, ok := target.(*ErrUpstreamUnavailable)
	return ok
}

// ErrMalformedUpstreamResponse - внешний сервис ответил, но тело ответа не удалось разобрать.
type ErrMalformedUpstreamResponse struct {
	Service string
	Cause   error
}

func (e *ErrMalformedUpstreamResponse) Error() string {
	return fmt.Sprintf("некорректный ответ сервиса %s: %v", e.Service, e.Cause)
}

func (e *ErrMalformedUpstreamResponse) Unwrap() error {
	return e.Cause
}

func (e *ErrMalformedUpstreamResponse) Is(target error) bool {
	_, ok := target.(*ErrMalformedUpstreamResponse)
	return ok
}

// ErrNoMetadata - стратегия отработала, но не нашла подходящих данных на странице.
type ErrNoMetadata struct {
	Strategy string
	Reason   string
}

func (e *ErrNoMetadata) Error() string {
	return fmt.Sprintf("стратегия %s не нашла метаданные: %s", e.Strategy, e.Reason)
}

func (e *ErrNoMetadata) Is(target error) bool {
	_, ok := target.(*ErrNoMetadata)
	return ok
}

type ErrAllModelsFailed struct {
	Models []string
	Last   error
}

func (e *ErrAllModelsFailed) Error() string {
	return fmt.Sprintf("все модели недоступны (%s): %v", strings.Join(e.Models, ", "), e.Last)
}

func (e *ErrAllModelsFailed) Unwrap() error {
	return e.Last
}

type ErrEmptyCompletion struct {
	Model string
}

func (e *ErrEmptyCompletion) Error() string {
	return fmt.Sprintf("модель %s не вернула текста", e.Model)
}

// ErrInvalidCompletionJSON хранит исходный и очищенный текст ответа модели для диагностики.
type ErrInvalidCompletionJSON struct {
	Raw     string
	Cleaned string
	Cause   error
}

func (e *ErrInvalidCompletionJSON) Error() string {
	return fmt.Sprintf("ответ модели не является корректным JSON: %v", e.Cause)
}

func (e *ErrInvalidCompletionJSON) Unwrap() error {
	return e.Cause
}

type ErrInvalidEnrichment struct {
	Reason string
}

func (e *ErrInvalidEnrichment) Error() string {
	return "некорректный результат обогащения: " + e.Reason
}

type ErrPersistence struct {
	Operation string
	Cause     error
}

func (e *ErrPersistence) Error() string {
	return fmt.Sprintf("ошибка хранилища при %s: %v", e.Operation, e.Cause)
}

func (e *ErrPersistence) Unwrap() error {
	return e.Cause
}

func (e *ErrPersistence) Is(target error) bool {
	_, ok := target.(*ErrPersistence)
	return ok
}

type ErrUnknownDBAccessType struct {
	AccessType string
}

func (e *ErrUnknownDBAccessType) Error() string {
	return fmt.Sprintf("неизвестный тип доступа к базе данных: %s", e.AccessType)
}

type ErrUnknownEventTransport struct {
	Transport string
}

func (e *ErrUnknownEventTransport) Error() string {
	return fmt.Sprintf("неизвестный транспорт событий: %s", e.Transport)
}

type ErrUnknownAIBackend struct {
	Backend string
}

func (e *ErrUnknownAIBackend) Error() string {
	return fmt.Sprintf("неизвестный AI бэкенд: %s", e.Backend)
}

type ErrBuildSQLQuery struct {
	Operation string
	Cause     error
}

func (e *ErrBuildSQLQuery) Error() string {
	return fmt.Sprintf("ошибка при построении SQL запроса для %s: %v", e.Operation, e.Cause)
}

func (e *ErrBuildSQLQuery) Unwrap() error {
	return e.Cause
}

type ErrSQLExecution struct {
	Operation string
	Cause     error
}

func (e *ErrSQLExecution) Error() string {
	return fmt.Sprintf("ошибка при выполнении SQL запроса для %s: %v", e.Operation, e.Cause)
}

func (e *ErrSQLExecution) Unwrap() error {
	return e.Cause
}

type ErrSQLScan struct {
	Entity string
	Cause  error
}

func (e *ErrSQLScan) Error() string {
	return fmt.Sprintf("ошибка при сканировании %s: %v", e.Entity, e.Cause)
}

func (e *ErrSQLScan) Unwrap() error {
	return e.Cause
}

type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error: %d", e.StatusCode)
}
