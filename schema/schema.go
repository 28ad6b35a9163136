package schema

import (
	"fmt"

	"github.com/readtable/readtable/errs"
	"github.com/readtable/readtable/format"
)

// ColumnName identifies a column within a table schema.
type ColumnName string

// GroupName identifies a column group within a table schema.
type GroupName string

// ColumnDef declares how one column's cells are compressed and which group
// persists them. It is set once when the schema is built and never mutated.
type ColumnDef struct {
	Comp  format.CompKind
	Level int
	Group GroupName
}

// GroupDef declares one column group: its outer codec/level, its
// pre-compression flush cutoff in bytes, and the ordered set of columns it
// carries. Column order within Cols is the order columns are serialized
// into every blob of this group.
type GroupDef struct {
	Comp   format.CompKind
	Level  int
	Cutoff int
	Cols   []ColumnName
}

// TableSchema is the full column/group layout for one table.
type TableSchema struct {
	Columns map[ColumnName]ColumnDef
	Groups  map[GroupName]GroupDef
}

// NewTableSchema validates and returns a TableSchema built from the given
// column and group definitions.
//
// Invariants enforced: every column referenced by a group has a matching
// ColumnDef; every declared column belongs to exactly one group (the union
// of all groups' Cols equals the columns map's key set, with no column
// appearing in two groups); every ColumnDef's Group names a real group;
// codec kinds are valid.
func NewTableSchema(columns map[ColumnName]ColumnDef, groups map[GroupName]GroupDef) (*TableSchema, error) {
	owner := make(map[ColumnName]GroupName, len(columns))

	for groupName, def := range groups {
		if !def.Comp.Valid() {
			return nil, fmt.Errorf("schema: %w: group %q: unknown compression kind %d", errs.ErrSchemaInvalid, groupName, def.Comp)
		}

		for _, col := range def.Cols {
			if prior, ok := owner[col]; ok {
				return nil, fmt.Errorf("schema: %w: column %q claimed by both group %q and %q", errs.ErrSchemaInvalid, col, prior, groupName)
			}
			owner[col] = groupName

			colDef, ok := columns[col]
			if !ok {
				return nil, fmt.Errorf("schema: %w: group %q references undeclared column %q", errs.ErrSchemaInvalid, groupName, col)
			}
			if colDef.Group != groupName {
				return nil, fmt.Errorf("schema: %w: column %q declares group %q but is listed under %q", errs.ErrSchemaInvalid, col, colDef.Group, groupName)
			}
		}
	}

	for name, def := range columns {
		if !def.Comp.Valid() {
			return nil, fmt.Errorf("schema: %w: column %q: unknown compression kind %d", errs.ErrSchemaInvalid, name, def.Comp)
		}
		if _, ok := owner[name]; !ok {
			return nil, fmt.Errorf("schema: %w: column %q not referenced by any group", errs.ErrSchemaInvalid, name)
		}
	}

	return &TableSchema{Columns: columns, Groups: groups}, nil
}

// GroupOf returns the group a column belongs to.
func (s *TableSchema) GroupOf(col ColumnName) (GroupName, bool) {
	def, ok := s.Columns[col]
	if !ok {
		return "", false
	}

	return def.Group, true
}

// GroupNames returns the schema's group names. Order is unspecified;
// callers that need a stable iteration order should sort the result.
func (s *TableSchema) GroupNames() []GroupName {
	names := make([]GroupName, 0, len(s.Groups))
	for name := range s.Groups {
		names = append(names, name)
	}

	return names
}

// ColumnsIn returns the ordered column list declared for a group, or nil if
// the group does not exist.
func (s *TableSchema) ColumnsIn(group GroupName) []ColumnName {
	def, ok := s.Groups[group]
	if !ok {
		return nil
	}

	return def.Cols
}
