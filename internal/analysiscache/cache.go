// Package analysiscache persists analysis outcomes keyed by a
// content-addressed hash of the query text and the active dialect
// configuration. The rewritten, canonical AST is a pure function of
// those two inputs, so a cache hit or miss, or a disabled cache, must
// never change the analysis result — only whether it was recomputed.
package analysiscache

import (
	"context"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/google/uuid"

	"github.com/gqlcpp/gql/internal/ast"
	"github.com/gqlcpp/gql/internal/auxdata"
	"github.com/gqlcpp/gql/internal/gqlerr"
)

//go:embed schema.sql
var schemaSQL string

const domainAnalysisKey = "gqlcpp/analysis-cache/v1"

// Key computes the content-addressed cache key for a query's text under a
// given dialect fingerprint (e.g. a hash of the resolved dialect.Config).
func Key(queryText, dialectFingerprint string) string {
	h := sha256.New()
	h.Write([]byte(domainAnalysisKey))
	h.Write([]byte{0x00})
	h.Write([]byte(queryText))
	h.Write([]byte{0x00})
	h.Write([]byte(dialectFingerprint))
	return hex.EncodeToString(h.Sum(nil))
}

// Outcome is the cached summary of one analysis run: either the
// graph pattern's final variable table and joinable-variable set, or the
// first error the pass raised.
type Outcome struct {
	OK        bool
	Variables map[string]auxdata.Variable
	Joinable  []string
	Err       *gqlerr.AnalysisError
}

// Cache is a SQLite-backed store, opened with the same WAL/single-writer
// conventions as the corpus's other durable stores.
type Cache struct {
	db    *sql.DB
	runID string
}

// Open creates or opens a SQLite database at path and ensures the cache
// schema is present. RunID returns a fresh uuid v4 identifying this
// process's analyzer run, independent of any content-addressed key,
// intended purely for correlating log lines.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("analysiscache: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("analysiscache: connect: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("analysiscache: pragma %q: %w", p, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("analysiscache: apply schema: %w", err)
	}

	return &Cache{db: db, runID: uuid.NewString()}, nil
}

func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// RunID returns this Cache's per-process correlation id.
func (c *Cache) RunID() string { return c.runID }

// Get returns the cached outcome for key, or ok=false on a miss.
func (c *Cache) Get(ctx context.Context, key string) (Outcome, bool, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT outcome, variables, joinable, error_code, error_pos, error_message
		FROM analysis_cache WHERE cache_key = ?`, key)

	var outcomeKind string
	var variablesJSON, joinableJSON, errCode, errPos, errMsg sql.NullString
	if err := row.Scan(&outcomeKind, &variablesJSON, &joinableJSON, &errCode, &errPos, &errMsg); err != nil {
		if err == sql.ErrNoRows {
			return Outcome{}, false, nil
		}
		return Outcome{}, false, fmt.Errorf("analysiscache: get: %w", err)
	}

	out := Outcome{OK: outcomeKind == "ok"}
	if out.OK {
		if variablesJSON.Valid {
			if err := json.Unmarshal([]byte(variablesJSON.String), &out.Variables); err != nil {
				return Outcome{}, false, fmt.Errorf("analysiscache: decode variables: %w", err)
			}
		}
		if joinableJSON.Valid {
			if err := json.Unmarshal([]byte(joinableJSON.String), &out.Joinable); err != nil {
				return Outcome{}, false, fmt.Errorf("analysiscache: decode joinable: %w", err)
			}
		}
	} else {
		out.Err = &gqlerr.AnalysisError{
			Code:    gqlerr.Code(errCode.String),
			Message: errMsg.String,
		}
		if errPos.String != "" {
			var line, col int
			if _, err := fmt.Sscanf(errPos.String, "%d:%d", &line, &col); err == nil {
				out.Err.Position = ast.NewInputPosition(line, col)
			}
		}
	}
	return out, true, nil
}

// Put stores outcome under key, overwriting any existing entry.
func (c *Cache) Put(ctx context.Context, key string, outcome Outcome) error {
	if outcome.OK {
		variablesJSON, err := json.Marshal(outcome.Variables)
		if err != nil {
			return fmt.Errorf("analysiscache: encode variables: %w", err)
		}
		joinableJSON, err := json.Marshal(outcome.Joinable)
		if err != nil {
			return fmt.Errorf("analysiscache: encode joinable: %w", err)
		}
		_, err = c.db.ExecContext(ctx, `
			INSERT INTO analysis_cache (cache_key, run_id, outcome, variables, joinable)
			VALUES (?, ?, 'ok', ?, ?)
			ON CONFLICT(cache_key) DO UPDATE SET
				run_id = excluded.run_id, outcome = excluded.outcome,
				variables = excluded.variables, joinable = excluded.joinable,
				error_code = NULL, error_pos = NULL, error_message = NULL`,
			key, c.runID, string(variablesJSON), string(joinableJSON))
		if err != nil {
			return fmt.Errorf("analysiscache: put ok: %w", err)
		}
		return nil
	}

	var pos string
	if outcome.Err != nil && outcome.Err.Position.IsSet() {
		pos = outcome.Err.Position.String()
	}
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO analysis_cache (cache_key, run_id, outcome, error_code, error_pos, error_message)
		VALUES (?, ?, 'error', ?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			run_id = excluded.run_id, outcome = excluded.outcome,
			variables = NULL, joinable = NULL,
			error_code = excluded.error_code, error_pos = excluded.error_pos,
			error_message = excluded.error_message`,
		key, c.runID, string(outcome.Err.Code), pos, outcome.Err.Message)
	if err != nil {
		return fmt.Errorf("analysiscache: put error: %w", err)
	}
	return nil
}
