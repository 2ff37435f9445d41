// Package treesql builds the SQL shared by the Postgres and SQLite node
// repositories. Paths are stored as dot-joined TEXT; strict descendants of P
// are the half-open byte range [P || '.', P || '/'), so no LIKE patterns or
// path extensions are needed.
package treesql

import (
	"fmt"
	"strings"

	"wikitree/internal/domain/models/tree"
	treerepo "wikitree/internal/domain/repositories/tree"
	"wikitree/internal/treepath"
)

// Dialect selects the placeholder syntax of generated statements.
type Dialect int

const (
	Postgres Dialect = iota // $1, $2, ...
	SQLite                  // ?
)

// Columns lists the node columns in scan order.
const Columns = "id, site_id, folder_path, file_name, type, title, created_at, updated_at"

// folderLabels is the number of labels in folder_path.
const folderLabels = "(CASE WHEN folder_path = '' THEN 0 ELSE length(folder_path) - length(replace(folder_path, '.', '')) + 1 END)"

// DepthExpr is the label count of a node's own full path.
const DepthExpr = "(" + folderLabels + " + 1)"

var orderColumns = map[tree.OrderField]string{
	tree.OrderByTitle:     "title",
	tree.OrderByFileName:  "file_name",
	tree.OrderByCreatedAt: "created_at",
	tree.OrderByUpdatedAt: "updated_at",
}

// Statements generates SQL for one node table.
type Statements struct {
	dialect Dialect
	table   string
}

// New creates a statement builder for table.
func New(dialect Dialect, table string) *Statements {
	return &Statements{dialect: dialect, table: table}
}

// Table returns the node table name.
func (s *Statements) Table() string {
	return s.table
}

// args accumulates positional arguments and renders their placeholders.
type args struct {
	dialect Dialect
	values  []any
}

func (a *args) add(v any) string {
	a.values = append(a.values, v)
	if a.dialect == Postgres {
		return fmt.Sprintf("$%d", len(a.values))
	}
	return "?"
}

func (a *args) list(vs []any) string {
	placeholders := make([]string, len(vs))
	for i, v := range vs {
		placeholders[i] = a.add(v)
	}
	return strings.Join(placeholders, ", ")
}

func (s *Statements) newArgs() *args {
	return &args{dialect: s.dialect}
}

// SelectByID selects one node by id.
func (s *Statements) SelectByID(id string) (string, []any) {
	a := s.newArgs()
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = %s", Columns, s.table, a.add(id))
	return query, a.values
}

// SelectByParentAndName selects the node named fileName directly under folderPath.
// A non-empty excludeID skips that node.
func (s *Statements) SelectByParentAndName(siteID string, folderPath treepath.Path, fileName, excludeID string) (string, []any) {
	a := s.newArgs()
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE site_id = %s AND folder_path = %s AND file_name = %s",
		Columns, s.table, a.add(siteID), a.add(folderPath.String()), a.add(fileName),
	)
	if excludeID != "" {
		query += " AND id <> " + a.add(excludeID)
	}
	return query, a.values
}

// Insert inserts one node. created and updated are passed through as given so
// each backend can choose its timestamp encoding.
func (s *Statements) Insert(n *tree.Node, created, updated any) (string, []any) {
	a := s.newArgs()
	values := a.list([]any{n.ID, n.SiteID, n.FolderPath.String(), n.FileName, string(n.Type), n.Title, created, updated})
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", s.table, Columns, values), a.values
}

// UpdateTitleAndName sets a node's own name and title.
func (s *Statements) UpdateTitleAndName(id, fileName, title string, updated any) (string, []any) {
	a := s.newArgs()
	query := fmt.Sprintf(
		"UPDATE %s SET file_name = %s, title = %s, updated_at = %s WHERE id = %s",
		s.table, a.add(fileName), a.add(title), a.add(updated), a.add(id),
	)
	return query, a.values
}

// RewriteExact moves the rows stored directly at oldPrefix to newPrefix.
func (s *Statements) RewriteExact(siteID string, oldPrefix, newPrefix treepath.Path) (string, []any) {
	a := s.newArgs()
	query := fmt.Sprintf(
		"UPDATE %s SET folder_path = %s WHERE site_id = %s AND folder_path = %s",
		s.table, a.add(newPrefix.String()), a.add(siteID), a.add(oldPrefix.String()),
	)
	return query, a.values
}

// RewriteDescendants replaces the oldPrefix head of every strictly deeper
// folder path with newPrefix. oldPrefix must not be the root.
func (s *Statements) RewriteDescendants(siteID string, oldPrefix, newPrefix treepath.Path) (string, []any) {
	a := s.newArgs()
	lo, hi := oldPrefix.DescendantBounds()
	query := fmt.Sprintf(
		"UPDATE %s SET folder_path = CAST(%s AS TEXT) || substr(folder_path, %s) WHERE site_id = %s AND folder_path >= %s AND folder_path < %s",
		s.table,
		a.add(newPrefix.String()),
		a.add(len(oldPrefix.String())+1),
		a.add(siteID),
		a.add(lo),
		a.add(hi),
	)
	return query, a.values
}

// DeleteByID deletes one node.
func (s *Statements) DeleteByID(id string) (string, []any) {
	a := s.newArgs()
	return fmt.Sprintf("DELETE FROM %s WHERE id = %s", s.table, a.add(id)), a.values
}

// DeleteSubtree deletes the node whose full path is prefix together with every
// row stored at or below prefix, returning id and type of each removed row.
// prefix must not be the root.
func (s *Statements) DeleteSubtree(siteID string, prefix treepath.Path) (string, []any) {
	a := s.newArgs()
	lo, hi := prefix.DescendantBounds()
	query := fmt.Sprintf(
		`DELETE FROM %s WHERE site_id = %s AND (
			(folder_path = %s AND file_name = %s)
			OR folder_path = %s
			OR (folder_path >= %s AND folder_path < %s)
		) RETURNING id, type`,
		s.table,
		a.add(siteID),
		a.add(prefix.Parent().String()),
		a.add(prefix.Last()),
		a.add(prefix.String()),
		a.add(lo),
		a.add(hi),
	)
	return query, a.values
}

// Query selects a bounded-depth page of nodes below filter.Parent. Each row is
// followed by its computed depth.
func (s *Statements) Query(filter *treerepo.NodeFilter) (string, []any, error) {
	orderColumn, ok := orderColumns[filter.OrderBy]
	if !ok {
		return "", nil, fmt.Errorf("unsupported order field %q", filter.OrderBy)
	}
	direction := "ASC"
	if filter.Descending {
		direction = "DESC"
	}

	a := s.newArgs()
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s, %s AS depth FROM %s WHERE site_id = %s AND (",
		Columns, DepthExpr, s.table, a.add(filter.SiteID))

	// Descendants within the depth bound
	maxLabels := filter.Parent.Len() + filter.MaxExtraLabels
	if filter.Parent.IsRoot() {
		fmt.Fprintf(&b, "%s <= %s", folderLabels, a.add(maxLabels))
	} else {
		lo, hi := filter.Parent.DescendantBounds()
		fmt.Fprintf(&b, "((folder_path = %s OR (folder_path >= %s AND folder_path < %s)) AND %s <= %s)",
			a.add(filter.Parent.String()), a.add(lo), a.add(hi), folderLabels, a.add(maxLabels))
	}

	if filter.IncludeAncestors {
		for _, anc := range filter.Parent.Ancestors() {
			fmt.Fprintf(&b, " OR (folder_path = %s AND file_name = %s)", a.add(anc.Parent.String()), a.add(anc.Name))
		}
	}
	b.WriteString(")")

	if len(filter.Types) > 0 {
		types := make([]any, len(filter.Types))
		for i, t := range filter.Types {
			types[i] = string(t)
		}
		fmt.Fprintf(&b, " AND type IN (%s)", a.list(types))
	}

	fmt.Fprintf(&b, " ORDER BY depth ASC, %s %s, id ASC LIMIT %s OFFSET %s",
		orderColumn, direction, a.add(filter.Limit), a.add(filter.Offset))

	return b.String(), a.values, nil
}

// CountChildren counts the rows stored directly in each parent path.
// parents must not be empty.
func (s *Statements) CountChildren(siteID string, parents []treepath.Path) (string, []any) {
	a := s.newArgs()
	site := a.add(siteID)
	paths := make([]any, len(parents))
	for i, p := range parents {
		paths[i] = p.String()
	}
	query := fmt.Sprintf(
		"SELECT folder_path, COUNT(*) FROM %s WHERE site_id = %s AND folder_path IN (%s) GROUP BY folder_path",
		s.table, site, a.list(paths),
	)
	return query, a.values
}
