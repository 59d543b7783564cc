package graph

import (
	"database/sql"
	"fmt"

	"github.com/lexigraph/etymograph/internal/lexicon"
	_ "modernc.org/sqlite"
)

const defaultBatchSize = 5000

// querier is the read surface shared by *sql.DB and *sql.Tx. Reads route
// through the open batch transaction when there is one, so a batch sees its
// own uncommitted writes and checkpointing stays invisible to callers.
type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Store owns the SQLite database holding the graph. One connection, one
// writer. Bulk writes go through a batch transaction that is cycled every
// batchSize statements.
type Store struct {
	db       *sql.DB
	tx       *sql.Tx
	stmtNode *sql.Stmt
	stmtEdge *sql.Stmt

	batchSize int
	count     int
}

// Open opens the graph database at path, creating the file if needed.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One connection: reads during a batch must go through the same
	// transaction, and SQLite allows a single writer anyway.
	db.SetMaxOpenConns(1)

	// Bulk-load tuning. The database is a derived artifact; a build that
	// crashes is rerun from the corpus, not repaired.
	if _, err := db.Exec("PRAGMA synchronous = OFF"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode = MEMORY"); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, batchSize: defaultBatchSize}, nil
}

// OpenReadOnly opens an existing graph database for queries only.
func OpenReadOnly(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	return &Store{db: db, batchSize: defaultBatchSize}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	node_id TEXT PRIMARY KEY,
	word TEXT NOT NULL,
	lang TEXT,
	lang_code TEXT NOT NULL,
	pos TEXT,
	etymology_number INTEGER,
	etymology_text TEXT,
	etymology_templates TEXT,
	derived TEXT,
	descendants TEXT,
	alt_of TEXT,
	form_of TEXT,
	categories TEXT,
	redirects TEXT,
	literal_meaning TEXT,
	wikidata TEXT
);
CREATE INDEX IF NOT EXISTS idx_entries_lang_word_pos ON entries(lang_code, word, pos);
CREATE INDEX IF NOT EXISTS idx_entries_word ON entries(word);

CREATE TABLE IF NOT EXISTS edges (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	src_id TEXT NOT NULL,
	dst_id TEXT NOT NULL,
	relation_type TEXT NOT NULL,
	raw_payload TEXT,
	FOREIGN KEY (src_id) REFERENCES entries(node_id),
	FOREIGN KEY (dst_id) REFERENCES entries(node_id)
);
CREATE INDEX IF NOT EXISTS idx_edges_src ON edges(src_id);
CREATE INDEX IF NOT EXISTS idx_edges_dst ON edges(dst_id);
CREATE INDEX IF NOT EXISTS idx_edges_type ON edges(relation_type);
`

// InitSchema creates tables and indexes. Safe to call on an existing
// database.
func (s *Store) InitSchema() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// BeginBatch starts a write batch. The transaction is committed and
// reopened every batchSize writes; Flush commits whatever remains. A
// batchSize of 0 keeps the current size.
func (s *Store) BeginBatch(batchSize int) error {
	if s.tx != nil {
		return fmt.Errorf("batch already open")
	}
	if batchSize > 0 {
		s.batchSize = batchSize
	}
	s.count = 0
	return s.beginTx()
}

func (s *Store) beginTx() error {
	var err error
	s.tx, err = s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	s.stmtNode, err = s.tx.Prepare(`
		INSERT OR REPLACE INTO entries (
			node_id, word, lang, lang_code, pos, etymology_number,
			etymology_text, etymology_templates, derived, descendants,
			alt_of, form_of, categories, redirects, literal_meaning, wikidata
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	s.stmtEdge, err = s.tx.Prepare(`
		INSERT INTO edges (src_id, dst_id, relation_type, raw_payload)
		VALUES (?, ?, ?, ?)
	`)
	return err
}

func (s *Store) commitTx() error {
	if s.stmtNode != nil {
		_ = s.stmtNode.Close()
		s.stmtNode = nil
	}
	if s.stmtEdge != nil {
		_ = s.stmtEdge.Close()
		s.stmtEdge = nil
	}
	tx := s.tx
	s.tx = nil
	return tx.Commit()
}

// checkpoint cycles the transaction once enough writes have accumulated.
func (s *Store) checkpoint() error {
	s.count++
	if s.count < s.batchSize {
		return nil
	}
	if err := s.commitTx(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	s.count = 0
	return s.beginTx()
}

// UpsertNode writes one node row, replacing any previous row with the same
// identity. The replacement is whole-row: attributes absent from rec come
// out NULL even if an earlier row had them.
func (s *Store) UpsertNode(rec lexicon.NodeRecord) error {
	if s.tx == nil {
		return fmt.Errorf("upsert node %s: no open batch", rec.NodeID)
	}
	_, err := s.stmtNode.Exec(
		rec.NodeID,
		rec.Word,
		rec.Lang,
		rec.LangCode,
		rec.POS,
		rec.EtymologyNumber,
		rec.EtymologyText,
		rec.EtymologyTemplates,
		rec.Derived,
		rec.Descendants,
		rec.AltOf,
		rec.FormOf,
		rec.Categories,
		rec.Redirects,
		rec.LiteralMeaning,
		rec.Wikidata,
	)
	if err != nil {
		return fmt.Errorf("upsert node %s: %w", rec.NodeID, err)
	}
	return s.checkpoint()
}

// InsertEdge appends one edge row.
func (s *Store) InsertEdge(e Edge) error {
	if s.tx == nil {
		return fmt.Errorf("insert edge %s -> %s: no open batch", e.SrcID, e.DstID)
	}
	if _, err := s.stmtEdge.Exec(e.SrcID, e.DstID, e.Kind, e.RawPayload); err != nil {
		return fmt.Errorf("insert edge %s -> %s: %w", e.SrcID, e.DstID, err)
	}
	return s.checkpoint()
}

// Flush commits the open batch, if any. After Flush returns every prior
// write is visible to every later read.
func (s *Store) Flush() error {
	if s.tx == nil {
		return nil
	}
	if err := s.commitTx(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	s.count = 0
	return nil
}

// Close flushes any open batch and closes the database.
func (s *Store) Close() error {
	if err := s.Flush(); err != nil {
		_ = s.db.Close()
		return err
	}
	return s.db.Close()
}

func (s *Store) q() querier {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

// Candidates returns every node sharing (lang_code, word), oldest write
// first. The rowid ordering is what makes downstream tie-breaks
// deterministic.
func (s *Store) Candidates(langCode, word string) ([]Candidate, error) {
	rows, err := s.q().Query(`
		SELECT node_id, pos, etymology_number FROM entries
		WHERE lang_code = ? AND word = ?
		ORDER BY rowid
	`, langCode, word)
	if err != nil {
		return nil, fmt.Errorf("query candidates %s:%s: %w", langCode, word, err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	var out []Candidate
	for rows.Next() {
		var c Candidate
		var pos sql.NullString
		var ety sql.NullInt64
		if err := rows.Scan(&c.NodeID, &pos, &ety); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		c.POS = pos.String
		if ety.Valid {
			n := ety.Int64
			c.EtymologyNumber = &n
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const nodeInfoColumns = `node_id, word, lang, lang_code, pos, etymology_number, etymology_text`

// GetNode fetches the summary row for one node id.
func (s *Store) GetNode(nodeID string) (*NodeInfo, error) {
	row := s.q().QueryRow(`SELECT `+nodeInfoColumns+` FROM entries WHERE node_id = ?`, nodeID)
	info, err := scanNodeInfo(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get node %s: %w", nodeID, err)
	}
	return &info, nil
}

// NodesByWord returns every node with the given spelling, oldest write
// first. A non-empty langCode narrows the result to one language.
func (s *Store) NodesByWord(word, langCode string) ([]NodeInfo, error) {
	query := `SELECT ` + nodeInfoColumns + ` FROM entries WHERE word = ?`
	args := []any{word}
	if langCode != "" {
		query += ` AND lang_code = ?`
		args = append(args, langCode)
	}
	query += ` ORDER BY rowid`

	rows, err := s.q().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query word %s: %w", word, err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	var out []NodeInfo
	for rows.Next() {
		info, err := scanNodeInfo(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

func scanNodeInfo(scan func(...any) error) (NodeInfo, error) {
	var info NodeInfo
	var lang, pos, etyText sql.NullString
	var ety sql.NullInt64
	if err := scan(&info.NodeID, &info.Word, &lang, &info.LangCode, &pos, &ety, &etyText); err != nil {
		return info, err
	}
	info.Lang = lang.String
	info.POS = pos.String
	info.EtymologyText = etyText.String
	if ety.Valid {
		n := ety.Int64
		info.EtymologyNumber = &n
	}
	return info, nil
}

// EdgesFrom returns the edges leaving a node, in insertion order.
func (s *Store) EdgesFrom(nodeID string) ([]Edge, error) {
	return s.edges("src_id", nodeID)
}

// EdgesTo returns the edges arriving at a node, in insertion order.
func (s *Store) EdgesTo(nodeID string) ([]Edge, error) {
	return s.edges("dst_id", nodeID)
}

func (s *Store) edges(col, nodeID string) ([]Edge, error) {
	rows, err := s.q().Query(
		`SELECT src_id, dst_id, relation_type, raw_payload FROM edges WHERE `+col+` = ? ORDER BY id`,
		nodeID)
	if err != nil {
		return nil, fmt.Errorf("query edges for %s: %w", nodeID, err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	var out []Edge
	for rows.Next() {
		e, err := scanEdge(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ForEachEdge streams every edge to fn in insertion order. Only one row is
// alive at a time.
func (s *Store) ForEachEdge(fn func(Edge) error) error {
	rows, err := s.q().Query(`SELECT src_id, dst_id, relation_type, raw_payload FROM edges ORDER BY id`)
	if err != nil {
		return fmt.Errorf("query edges: %w", err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	for rows.Next() {
		e, err := scanEdge(rows)
		if err != nil {
			return err
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return rows.Err()
}

func scanEdge(rows *sql.Rows) (Edge, error) {
	var e Edge
	var payload sql.NullString
	if err := rows.Scan(&e.SrcID, &e.DstID, &e.Kind, &payload); err != nil {
		return e, fmt.Errorf("scan edge: %w", err)
	}
	if payload.Valid {
		p := payload.String
		e.RawPayload = &p
	}
	return e, nil
}

// CountNodes returns the number of node rows.
func (s *Store) CountNodes() (int64, error) {
	return s.countRows("entries")
}

// CountEdges returns the number of edge rows.
func (s *Store) CountEdges() (int64, error) {
	return s.countRows("edges")
}

func (s *Store) countRows(table string) (int64, error) {
	var n int64
	if err := s.q().QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
