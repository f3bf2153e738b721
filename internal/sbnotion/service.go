// Package sbnotion is a convenience layer over the Notion API: it caches the
// directory of known pages and databases, detects schema drift, and keeps
// generated record types up to date.
package sbnotion

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/snadboy/notiongen/internal/notion"
	"github.com/snadboy/notiongen/internal/schema"
	"github.com/snadboy/notiongen/pkg/record"
)

// ErrNotFound indicates an identifier that resolved to nothing even after a
// directory refresh. Absence is an expected outcome, not a failure.
var ErrNotFound = errors.New("unknown page or database identifier")

// Service ties the directory cache, the transport and the schema generator
// together. Concurrent use is safe, but two simultaneous cache misses may
// each trigger a redundant refresh; refresh is idempotent and last-writer
// wins, so that costs at most a wasted round trip.
type Service struct {
	client    *notion.Client
	logger    *zap.Logger
	gen       *schema.Generator
	dir       *directory
	outputDir string
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithCacheTTL overrides the directory cache TTL.
func WithCacheTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		s.dir = newDirectory(ttl)
	}
}

// WithPackageName overrides the package clause of generated files.
func WithPackageName(name string) ServiceOption {
	return func(s *Service) {
		s.gen = schema.NewGenerator(name)
	}
}

// New creates a Service writing generated types into outputDir. The logger
// is required; pass zap.NewNop() to silence it.
func New(client *notion.Client, outputDir string, logger *zap.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if outputDir == "" {
		outputDir = "generated"
	}
	s := &Service{
		client:    client,
		logger:    logger,
		gen:       schema.NewGenerator("generated"),
		dir:       newDirectory(defaultCacheTTL),
		outputDir: outputDir,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// refresh re-lists all pages and databases and swaps the directory. A
// transport failure leaves the previous cache and its timestamp intact, so
// the next call retries instead of assuming freshness. Schema drift checks
// run per database after a successful swap; their failures are logged and
// never abort the refresh.
func (s *Service) refresh(ctx context.Context) error {
	s.logger.Debug("refreshing directory cache")

	pages, err := s.client.SearchAllPages(ctx)
	if err != nil {
		return err
	}
	dbs, err := s.client.SearchAllDatabases(ctx)
	if err != nil {
		return err
	}
	s.dir.replace(pages, dbs)
	s.logger.Info("directory cache refreshed",
		zap.Int("pages", len(pages)),
		zap.Int("databases", len(dbs)))

	for _, db := range dbs {
		s.checkSchemaDrift(ctx, db.ID)
	}
	return nil
}

// refreshLogged runs a refresh and downgrades its failure to a log entry.
// Used where a stale directory is still serviceable.
func (s *Service) refreshLogged(ctx context.Context) {
	if err := s.refresh(ctx); err != nil {
		s.logger.Error("directory refresh failed", zap.Error(err))
	}
}

// checkSchemaDrift retrieves a database's full schema, compares its hash
// against the last recorded one, and regenerates the record type on change.
// Transport and generation failures are logged per database and swallowed.
// Returns the full database when it was retrieved successfully.
func (s *Service) checkSchemaDrift(ctx context.Context, databaseID string) *notion.Database {
	full, err := s.client.RetrieveDatabase(ctx, databaseID)
	if err != nil {
		s.logger.Error("error checking schema for database",
			zap.String("database_id", databaseID), zap.Error(err))
		return nil
	}

	newHash := schema.Hash(full)
	oldHash, known := s.dir.schemaHash(databaseID)
	if known && oldHash == newHash {
		return full
	}

	s.logger.Info("schema change detected for database",
		zap.String("database", full.PlainTitle()),
		zap.String("database_id", databaseID))
	s.dir.setSchemaHash(databaseID, newHash)

	if _, err := s.GenerateDatabaseType(ctx, databaseID, true); err != nil {
		s.logger.Error("error regenerating record type",
			zap.String("database_id", databaseID), zap.Error(err))
	}
	return full
}

// GetPage resolves a page by id or display title. A cache miss triggers at
// most one refresh per call before giving up with ErrNotFound.
func (s *Service) GetPage(ctx context.Context, identifier string) (*notion.Page, error) {
	attempted := false
	if s.dir.stale() {
		s.refreshLogged(ctx)
		attempted = true
	}

	page := s.dir.page(identifier)
	if page == nil && !attempted {
		s.refreshLogged(ctx)
		page = s.dir.page(identifier)
	}
	if page == nil {
		return nil, ErrNotFound
	}
	return page, nil
}

// GetDatabase resolves a database by id or display title, then retrieves its
// full schema and runs the drift check. When the drift check cannot reach
// the remote, the cached summary is returned instead.
func (s *Service) GetDatabase(ctx context.Context, identifier string) (*notion.Database, error) {
	attempted := false
	if s.dir.stale() {
		s.refreshLogged(ctx)
		attempted = true
	}

	db := s.dir.database(identifier)
	if db == nil && !attempted {
		s.refreshLogged(ctx)
		db = s.dir.database(identifier)
	}
	if db == nil {
		return nil, ErrNotFound
	}

	if full := s.checkSchemaDrift(ctx, db.ID); full != nil {
		return full, nil
	}
	return db, nil
}

// Pages returns a snapshot of all cached pages keyed by id, refreshing first
// when the cache is stale. The returned error reports a failed refresh; the
// snapshot is still usable (possibly stale) alongside it.
func (s *Service) Pages(ctx context.Context) (map[string]*notion.Page, error) {
	var err error
	if s.dir.stale() {
		err = s.refresh(ctx)
	}
	return s.dir.snapshotPages(), err
}

// Databases returns a snapshot of all cached databases keyed by id,
// refreshing first when the cache is stale.
func (s *Service) Databases(ctx context.Context) (map[string]*notion.Database, error) {
	var err error
	if s.dir.stale() {
		err = s.refresh(ctx)
	}
	return s.dir.snapshotDatabases(), err
}

// GenerateDatabaseType fetches a database schema and writes its generated
// record type plus metadata sidecar. Generation is skipped (returning "")
// when the stored schema hash matches and force is unset.
func (s *Service) GenerateDatabaseType(ctx context.Context, databaseID string, force bool) (string, error) {
	db, err := s.client.RetrieveDatabase(ctx, databaseID)
	if err != nil {
		return "", err
	}

	source, meta, err := s.gen.Generate(databaseID, db)
	if err != nil {
		return "", err
	}

	metaPath := schema.MetaPath(s.outputDir, meta.NotionDBName)
	if !schema.ShouldRegenerate(metaPath, meta.SchemaHash, force) {
		s.logger.Info("schema unchanged, skipping generation",
			zap.String("database", meta.NotionDBName))
		return "", nil
	}

	path, err := schema.Save(source, meta, s.outputDir)
	if err != nil {
		return "", err
	}
	s.logger.Info("generated record type",
		zap.String("database", meta.NotionDBName),
		zap.String("path", path))
	return path, nil
}

// CreatePage creates a page in the database baked into the record's type.
// Transport failures propagate: the caller needs to know the write did not
// happen.
func (s *Service) CreatePage(ctx context.Context, rec record.Record) (*notion.Page, error) {
	databaseID, err := record.DatabaseID(rec)
	if err != nil {
		return nil, err
	}
	props, err := record.ToProperties(rec)
	if err != nil {
		return nil, err
	}
	return s.client.CreatePage(ctx, databaseID, props)
}

// UpdatePage updates a page with the record's non-absent fields. Absent
// fields are omitted from the request so unrelated properties are untouched.
// Transport failures propagate.
func (s *Service) UpdatePage(ctx context.Context, pageID string, rec any) (*notion.Page, error) {
	props, err := record.ToProperties(rec)
	if err != nil {
		return nil, err
	}
	return s.client.UpdatePage(ctx, pageID, props)
}

// GetTyped retrieves a page and unmarshals it into a generated record type.
func GetTyped[T record.Record](ctx context.Context, s *Service, pageID string) (*T, error) {
	page, err := s.client.RetrievePage(ctx, pageID)
	if err != nil {
		return nil, err
	}
	rec := new(T)
	if err := record.FromPage(page, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Query runs a database query against the database baked into T and returns
// typed results. A mid-stream transport failure is logged and the results
// collected up to that point are returned; per-page conversion failures are
// logged and skipped.
func Query[T record.Record](ctx context.Context, s *Service, query notion.DatabaseQuery) ([]*T, error) {
	var zero T
	databaseID, err := record.DatabaseID(zero)
	if err != nil {
		return nil, err
	}

	pages, err := s.client.QueryDatabaseAll(ctx, databaseID, query)
	if err != nil {
		s.logger.Error("database query terminated early",
			zap.String("database_id", databaseID), zap.Error(err))
	}

	out := make([]*T, 0, len(pages))
	for _, page := range pages {
		rec := new(T)
		if err := record.FromPage(page, rec); err != nil {
			s.logger.Error("error converting page",
				zap.String("page_id", page.ID), zap.Error(err))
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
