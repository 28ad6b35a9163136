package schema

import (
	"testing"

	"github.com/readtable/readtable/errs"
	"github.com/readtable/readtable/format"
	"github.com/stretchr/testify/require"
)

func validColumns() map[ColumnName]ColumnDef {
	return map[ColumnName]ColumnDef{
		"READ": {Comp: format.CompZstd, Level: 3, Group: "reads"},
		"QUAL": {Comp: format.CompZstd, Level: 3, Group: "reads"},
		"NAME": {Comp: format.CompNone, Level: 0, Group: "meta"},
		"LEN":  {Comp: format.CompZlib, Level: 6, Group: "meta"},
	}
}

func validGroups() map[GroupName]GroupDef {
	return map[GroupName]GroupDef{
		"reads": {Comp: format.CompZstd, Level: 3, Cutoff: 1 << 16, Cols: []ColumnName{"READ", "QUAL"}},
		"meta":  {Comp: format.CompNone, Level: 0, Cutoff: 1 << 12, Cols: []ColumnName{"NAME", "LEN"}},
	}
}

func TestNewTableSchema_Valid(t *testing.T) {
	s, err := NewTableSchema(validColumns(), validGroups())
	require.NoError(t, err)
	require.NotNil(t, s)

	group, ok := s.GroupOf("READ")
	require.True(t, ok)
	require.Equal(t, GroupName("reads"), group)

	require.Equal(t, []ColumnName{"READ", "QUAL"}, s.ColumnsIn("reads"))
	require.Len(t, s.GroupNames(), 2)
}

func TestNewTableSchema_ColumnNotInAnyGroup(t *testing.T) {
	cols := validColumns()
	cols["ORPHAN"] = ColumnDef{Comp: format.CompNone, Group: "reads"}

	_, err := NewTableSchema(cols, validGroups())
	require.ErrorIs(t, err, errs.ErrSchemaInvalid)
}

func TestNewTableSchema_GroupReferencesMissingColumn(t *testing.T) {
	groups := validGroups()
	g := groups["reads"]
	g.Cols = append(g.Cols, "GHOST")
	groups["reads"] = g

	_, err := NewTableSchema(validColumns(), groups)
	require.ErrorIs(t, err, errs.ErrSchemaInvalid)
}

func TestNewTableSchema_ColumnInTwoGroups(t *testing.T) {
	groups := validGroups()
	g := groups["meta"]
	g.Cols = append(g.Cols, "READ")
	groups["meta"] = g

	_, err := NewTableSchema(validColumns(), groups)
	require.ErrorIs(t, err, errs.ErrSchemaInvalid)
}

func TestNewTableSchema_ColumnGroupMismatch(t *testing.T) {
	cols := validColumns()
	read := cols["READ"]
	read.Group = "meta"
	cols["READ"] = read

	_, err := NewTableSchema(cols, validGroups())
	require.ErrorIs(t, err, errs.ErrSchemaInvalid)
}

func TestNewTableSchema_UnknownCompKind(t *testing.T) {
	groups := validGroups()
	g := groups["reads"]
	g.Comp = format.CompKind(0xaa)
	groups["reads"] = g

	_, err := NewTableSchema(validColumns(), groups)
	require.ErrorIs(t, err, errs.ErrSchemaInvalid)
}

func TestNewTableSchema_Empty(t *testing.T) {
	s, err := NewTableSchema(map[ColumnName]ColumnDef{}, map[GroupName]GroupDef{})
	require.NoError(t, err)
	require.Empty(t, s.GroupNames())
}

func TestGroupOf_UnknownColumn(t *testing.T) {
	s, err := NewTableSchema(validColumns(), validGroups())
	require.NoError(t, err)

	_, ok := s.GroupOf("NOPE")
	require.False(t, ok)
}

func TestColumnsIn_UnknownGroup(t *testing.T) {
	s, err := NewTableSchema(validColumns(), validGroups())
	require.NoError(t, err)
	require.Nil(t, s.ColumnsIn("nope"))
}
