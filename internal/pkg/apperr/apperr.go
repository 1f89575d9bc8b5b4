package apperr

import "fmt"

// ExternalError — сбой внешнего сервиса (OneID, Eskiz SMS, хранилище файлов).
// Имя сервиса попадает в лог, исходная ошибка не уходит клиенту.
type ExternalError struct {
	Service string
	Err     error
}

func (e *ExternalError) Error() string {
	return fmt.Sprintf("external service %s: %v", e.Service, e.Err)
}

func (e *ExternalError) Unwrap() error { return e.Err }

func External(service string, err error) *ExternalError {
	return &ExternalError{Service: service, Err: err}
}
