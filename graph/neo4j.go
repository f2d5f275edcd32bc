package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Client implements Writer over the neo4j bolt driver.  Construct it
// explicitly and pass it to whoever needs to write; there is no
// package-level connection.
type Client struct {
	driver neo4j.DriverWithContext
	log    *slog.Logger
}

// NewClient connects to the store described by cfg and verifies
// connectivity before returning.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	driver, err := neo4j.NewDriverWithContext(cfg.URI,
		neo4j.BasicAuth(cfg.User, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("creating driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("verifying connectivity to %s: %w", cfg.URI, err)
	}
	return &Client{driver: driver, log: slog.Default()}, nil
}

// SetLogger replaces the client's logger (defaults to slog.Default).
func (c *Client) SetLogger(l *slog.Logger) {
	if l != nil {
		c.log = l
	}
}

// Close shuts the underlying driver down.
func (c *Client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

// EnsureSchema creates uniqueness constraints and lookup indexes if
// not already present.
func (c *Client) EnsureSchema(ctx context.Context) error {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	for _, q := range schemaQueries {
		if _, err := session.Run(ctx, q, nil); err != nil {
			return fmt.Errorf("ensuring schema: %w", err)
		}
	}
	return nil
}

// UpsertNodes merges one node per record under the kind's label.  An
// empty batch issues nothing.
func (c *Client) UpsertNodes(ctx context.Context, kind NodeKind, records []map[string]any) error {
	if len(records) == 0 {
		return nil
	}
	q, err := nodeQuery(kind)
	if err != nil {
		return err
	}
	if err := c.write(ctx, q, map[string]any{"nodes": records}); err != nil {
		return fmt.Errorf("upserting %d %s nodes: %w", len(records), kind, err)
	}
	return nil
}

// UpsertRelationships merges one relationship per pair according to
// the given spec.  An empty batch issues nothing; pairs whose
// endpoints match no node yield no relationship.
func (c *Client) UpsertRelationships(ctx context.Context, spec RelSpec, pairs []Pair) error {
	if len(pairs) == 0 {
		return nil
	}
	q, err := relQuery(spec)
	if err != nil {
		return err
	}
	if err := c.write(ctx, q, map[string]any{"pairs": pairParams(pairs)}); err != nil {
		return fmt.Errorf("upserting %d %s relationships: %w", len(pairs), spec.Kind, err)
	}
	return nil
}

func (c *Client) write(ctx context.Context, query string, params map[string]any) error {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return nil, res.Err()
	})
	if isConstraintViolation(err) {
		// A rerun racing its own earlier import; the record is
		// already there, which is all an upsert promises.
		c.log.Debug("ignoring uniqueness violation on upsert", "error", err)
		return nil
	}
	return err
}

func isConstraintViolation(err error) bool {
	var ne *neo4j.Neo4jError
	return errors.As(err, &ne) &&
		strings.Contains(ne.Code, "ConstraintValidationFailed")
}
