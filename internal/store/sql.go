package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/sijil-app/sijil/internal/logging"
	"github.com/sijil-app/sijil/internal/store/migrations"
)

// SQL stores documents in a single table on database/sql. The driver is
// chosen from the DSN: postgres:// selects pgx, anything else is treated
// as a sqlite path (":memory:" included). Change fan-out within the
// process goes through the hub; attach a Notifier to reach other
// instances.
type SQL struct {
	db       *sql.DB
	driver   string
	hub      *hub
	logger   logging.Logger
	notifier Notifier
}

var _ Store = (*SQL)(nil)

// OpenSQL opens the backend and runs pending migrations.
func OpenSQL(ctx context.Context, dsn string, logger logging.Logger) (*SQL, error) {
	if logger == nil {
		logger = logging.NopLogger{}
	}

	driver, dialect := "sqlite", "sqlite3"
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		driver, dialect = "pgx", "postgres"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if driver == "sqlite" {
		// every pooled connection to :memory: would otherwise be its own
		// empty database
		db.SetMaxOpenConns(1)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return nil, fmt.Errorf("db dialect error: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	return &SQL{
		db:     db,
		driver: driver,
		hub:    newHub(),
		logger: logger.With("component", "store", "backend", driver),
	}, nil
}

// SetNotifier attaches cross-instance change broadcasting.
func (s *SQL) SetNotifier(n Notifier) {
	s.notifier = n
}

// HandleRemote refreshes local subscribers after another instance
// announced a change on topic.
func (s *SQL) HandleRemote(topic string) {
	s.hub.notify(topic)
}

func (s *SQL) Subscribe(collection string, onSnapshot func([]Record), onError func(error)) (func(), error) {
	return subscribeCollection(s.hub, s, collection, onSnapshot, onError)
}

func (s *SQL) SubscribeUsers(onSnapshot func(admins, viewers []Record), onError func(error)) (func(), error) {
	return subscribeUsers(s.hub, s, onSnapshot, onError)
}

func (s *SQL) Snapshot(ctx context.Context, collection string) ([]Record, error) {
	sources, ok := personCollections(collection)
	if !ok {
		return nil, ErrUnknownCollection
	}

	query, args := s.inCollections("SELECT id, data FROM documents WHERE collection IN (%s) ORDER BY id", sources)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	recs := make([]Record, 0)
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		doc, err := decodeDocument(data)
		if err != nil {
			return nil, err
		}
		recs = append(recs, Record{ID: id, Fields: doc})
	}
	return recs, rows.Err()
}

func (s *SQL) Users(ctx context.Context) ([]Record, []Record, error) {
	admins, err := s.Snapshot(ctx, UsersAdmins)
	if err != nil {
		return nil, nil, err
	}
	viewers, err := s.Snapshot(ctx, UsersViewers)
	if err != nil {
		return nil, nil, err
	}
	return admins, viewers, nil
}

func (s *SQL) Get(ctx context.Context, collection, id string) (Record, error) {
	_, _, doc, err := s.find(ctx, collection, id)
	if err != nil {
		return Record{}, err
	}
	return Record{ID: id, Fields: doc}, nil
}

func (s *SQL) Insert(ctx context.Context, collection string, fields Document) (string, error) {
	if _, ok := personCollections(collection); !ok {
		return "", ErrUnknownCollection
	}
	id := NewPushID()
	data, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}

	query := s.rebind("INSERT INTO documents (collection, id, data) VALUES (?, ?, ?)")
	if _, err := s.db.ExecContext(ctx, query, collection, id, string(data)); err != nil {
		return "", fmt.Errorf("error performing sql request: %w", err)
	}

	s.changed(ctx, topicFor(collection))
	return id, nil
}

func (s *SQL) Merge(ctx context.Context, collection, id string, partial Document) error {
	target, found, doc, err := s.find(ctx, collection, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if doc == nil {
		doc = make(Document, len(partial))
	}
	for k, v := range partial {
		doc[k] = v
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	if found {
		query := s.rebind("UPDATE documents SET data = ? WHERE collection = ? AND id = ?")
		_, err = s.db.ExecContext(ctx, query, string(data), target, id)
	} else {
		// merge against an absent path creates it
		query := s.rebind("INSERT INTO documents (collection, id, data) VALUES (?, ?, ?)")
		_, err = s.db.ExecContext(ctx, query, collection, id, string(data))
	}
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}

	s.changed(ctx, topicFor(collection))
	return nil
}

func (s *SQL) Remove(ctx context.Context, collection, id string) error {
	sources, ok := personCollections(collection)
	if !ok {
		return ErrUnknownCollection
	}

	query, args := s.inCollections("DELETE FROM documents WHERE collection IN (%s) AND id = ?", sources)
	args = append(args, id)
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n > 0 {
		s.changed(ctx, topicFor(collection))
	}
	return nil
}

func (s *SQL) Close() error {
	s.hub.close()
	return s.db.Close()
}

// find locates a document across the stored collections an addressable
// collection reads from, returning the concrete collection it lives in.
func (s *SQL) find(ctx context.Context, collection, id string) (target string, found bool, doc Document, err error) {
	sources, ok := personCollections(collection)
	if !ok {
		return "", false, nil, ErrUnknownCollection
	}

	query, args := s.inCollections("SELECT collection, data FROM documents WHERE collection IN (%s) AND id = ?", sources)
	args = append(args, id)

	var data string
	row := s.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&target, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return collection, false, nil, ErrNotFound
		}
		return "", false, nil, fmt.Errorf("error performing sql request: %w", err)
	}

	doc, err = decodeDocument(data)
	return target, true, doc, err
}

// inCollections expands sources into the IN clause of format and rebinds
// the whole query for the active driver.
func (s *SQL) inCollections(format string, sources []string) (string, []any) {
	marks := make([]string, len(sources))
	args := make([]any, len(sources))
	for i, src := range sources {
		marks[i] = "?"
		args[i] = src
	}
	return s.rebind(fmt.Sprintf(format, strings.Join(marks, ", "))), args
}

// rebind rewrites ? placeholders to $n for postgres.
func (s *SQL) rebind(query string) string {
	if s.driver != "pgx" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQL) changed(ctx context.Context, topic string) {
	s.hub.notify(topic)
	if s.notifier != nil {
		s.notifier.Publish(ctx, topic)
	}
}

func decodeDocument(data string) (Document, error) {
	doc := make(Document)
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("corrupt document: %w", err)
	}
	return doc, nil
}
