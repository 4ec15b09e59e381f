// Package apperrors содержит общие виды ошибок сервиса. Конкретные ошибки
// оборачивают эти значения через %w, обработчики проверяют их через errors.Is.
package apperrors

import "errors"

var (
	// ErrNotFound - запрошенная сущность отсутствует в базе.
	ErrNotFound = errors.New("entity not found")
	// ErrAlreadyExists - нарушено одно из ограничений уникальности.
	ErrAlreadyExists = errors.New("entity already exists")
	// ErrDataProcessing - ответ внешнего сервиса не удалось получить или
	// разобрать, либо он не прошел проверку целостности данных.
	ErrDataProcessing = errors.New("failed to process location data")
)
