package repository

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolation - код SQLSTATE для нарушения ограничения уникальности в PostgreSQL.
const uniqueViolation = "23505"

// isUniqueViolation сообщает, вызвана ли ошибка нарушением ограничения
// уникальности. Ограничения базы - окончательный арбитр при конкурентных
// вставках, поэтому репозитории переводят эту ошибку в ErrAlreadyExists.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
