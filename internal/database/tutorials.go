package database

import (
	"context"
	"database/sql"
	"errors"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/saltyorg/tutorials/internal/tutorial"
)

const (
	insertTutorialSQL = `
		INSERT INTO tutorials (title, author, url, published_date)
		VALUES (?, ?, ?, ?)`
	selectTutorialSQL = `
		SELECT tutorial_id, title, author, url, published_date
		FROM tutorials WHERE tutorial_id = ?`
	selectTutorialsSQL = `
		SELECT tutorial_id, title, author, url, published_date
		FROM tutorials ORDER BY tutorial_id`
	updateTutorialSQL = `
		UPDATE tutorials SET title = ?, author = ?, url = ?, published_date = ?
		WHERE tutorial_id = ?`
	deleteTutorialSQL = `DELETE FROM tutorials WHERE tutorial_id = ?`
)

// TutorialStore reads and writes tutorial rows. It keeps no state between
// calls; every operation acquires its own connection from the provider.
type TutorialStore struct {
	provider ConnProvider
}

// NewTutorialStore creates a store backed by the given connection provider.
func NewTutorialStore(provider ConnProvider) *TutorialStore {
	return &TutorialStore{provider: provider}
}

// Add inserts t and sets t.ID to the store-assigned ID.
func (s *TutorialStore) Add(ctx context.Context, t *tutorial.Tutorial) (*tutorial.Tutorial, error) {
	if t == nil {
		return nil, operationAnomaly(opAdd, "tutorial is nil")
	}

	err := s.withStatement(ctx, opAdd, insertTutorialSQL, func(stmt *sql.Stmt) error {
		result, err := stmt.ExecContext(ctx, t.Title, t.Author, t.URL, dateValue(t.PublishedDate))
		if err != nil {
			return operationFailed(opAdd, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return operationFailed(opAdd, err)
		}
		if affected == 0 {
			return operationAnomaly(opAdd, "no rows affected")
		}

		id, err := result.LastInsertId()
		if err != nil {
			return &OperationError{Op: opAdd, Detail: "no ID obtained", Err: err}
		}
		if id <= 0 {
			return operationAnomaly(opAdd, "no ID obtained")
		}

		t.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug().Int64("id", t.ID).Str("title", t.Title).Msg("Tutorial added")
	return t, nil
}

// GetByID returns the tutorial with the given ID.
func (s *TutorialStore) GetByID(ctx context.Context, id int64) (*tutorial.Tutorial, error) {
	var found *tutorial.Tutorial

	err := s.withRows(ctx, opGet, selectTutorialSQL, []any{id}, func(rows *sql.Rows) error {
		if !rows.Next() {
			if err := rows.Err(); err != nil {
				return operationFailed(opGet, err)
			}
			return notFound(opGet, id)
		}

		t, err := scanTutorial(rows)
		if err != nil {
			return operationFailed(opGet, err)
		}
		found = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}

// GetAll returns every tutorial ordered by ID. An empty table yields an empty slice.
func (s *TutorialStore) GetAll(ctx context.Context) ([]*tutorial.Tutorial, error) {
	tutorials := make([]*tutorial.Tutorial, 0)

	err := s.withRows(ctx, opList, selectTutorialsSQL, nil, func(rows *sql.Rows) error {
		for rows.Next() {
			t, err := scanTutorial(rows)
			if err != nil {
				return operationFailed(opList, err)
			}
			tutorials = append(tutorials, t)
		}
		if err := rows.Err(); err != nil {
			return operationFailed(opList, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tutorials, nil
}

// Update overwrites title, author, url and published date of the row with t.ID.
func (s *TutorialStore) Update(ctx context.Context, t *tutorial.Tutorial) error {
	if t == nil {
		return operationAnomaly(opUpdate, "tutorial is nil")
	}

	err := s.execAffecting(ctx, opUpdate, t.ID, updateTutorialSQL,
		t.Title, t.Author, t.URL, dateValue(t.PublishedDate), t.ID)
	if err != nil {
		return err
	}

	log.Debug().Int64("id", t.ID).Msg("Tutorial updated")
	return nil
}

// Delete removes the row with the given ID.
func (s *TutorialStore) Delete(ctx context.Context, id int64) error {
	if err := s.execAffecting(ctx, opDelete, id, deleteTutorialSQL, id); err != nil {
		return err
	}

	log.Debug().Int64("id", id).Msg("Tutorial deleted")
	return nil
}

// execAffecting runs a statement keyed by id and reports NotFound when no row changed.
func (s *TutorialStore) execAffecting(ctx context.Context, op string, id int64, query string, args ...any) error {
	return s.withStatement(ctx, op, query, func(stmt *sql.Stmt) error {
		result, err := stmt.ExecContext(ctx, args...)
		if err != nil {
			return operationFailed(op, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return operationFailed(op, err)
		}
		if affected == 0 {
			return notFound(op, id)
		}
		return nil
	})
}

// withConn acquires a connection for the length of fn and always releases it,
// including when Acquire fails.
func (s *TutorialStore) withConn(ctx context.Context, op string, fn func(conn *sql.Conn) error) error {
	conn, err := s.provider.Acquire(ctx)
	defer s.provider.Release(conn)
	if err != nil {
		return operationFailed(op, err)
	}
	if conn == nil {
		return operationAnomaly(op, "no connection available")
	}
	return fn(conn)
}

// withStatement prepares query on a fresh connection. The statement is closed
// before the connection is released.
func (s *TutorialStore) withStatement(ctx context.Context, op, query string, fn func(stmt *sql.Stmt) error) error {
	return s.withConn(ctx, op, func(conn *sql.Conn) error {
		stmt, err := conn.PrepareContext(ctx, query)
		if err != nil {
			return operationFailed(op, err)
		}
		defer closeQuietly(op, "statement", stmt)

		return fn(stmt)
	})
}

// withRows runs a prepared query and hands the cursor to fn. Release order is
// cursor, statement, connection.
func (s *TutorialStore) withRows(ctx context.Context, op, query string, args []any, fn func(rows *sql.Rows) error) error {
	return s.withStatement(ctx, op, query, func(stmt *sql.Stmt) error {
		rows, err := stmt.QueryContext(ctx, args...)
		if err != nil {
			return operationFailed(op, err)
		}
		defer closeQuietly(op, "cursor", rows)

		return fn(rows)
	})
}

func closeQuietly(op, resource string, c io.Closer) {
	if err := c.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		log.Warn().Err(err).Str("op", op).Str("resource", resource).Msg("Failed to close database resource")
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanTutorial maps one result row onto a new Tutorial
func scanTutorial(row rowScanner) (*tutorial.Tutorial, error) {
	t := &tutorial.Tutorial{}
	var published nullDate
	if err := row.Scan(&t.ID, &t.Title, &t.Author, &t.URL, &published); err != nil {
		return nil, err
	}
	t.PublishedDate = published.option()
	return t, nil
}
