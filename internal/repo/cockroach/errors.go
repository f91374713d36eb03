package cockroach

import (
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

// psql - билдер запросов с плейсхолдерами вида $1, $2 (cockroach работает с драйвером postgres)
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func isForeignKeyViolation(err error) bool {
	var pgErr *pq.Error
	return errors.As(err, &pgErr) && pgErr.Code.Name() == "foreign_key_violation"
}
