package relation_test

import (
	"strings"
	"testing"

	"github.com/linrel/linrel/internal/relation"
	"github.com/linrel/linrel/internal/value"
	"gotest.tools/assert"
)

func TestNewTableValidation(t *testing.T) {
	reg := relation.NewRegistry(nil)
	fields := []relation.Field{
		{Name: "bname", Kind: value.String},
		{Name: "accno", Kind: value.Int},
	}

	_, err := relation.NewTable(reg, "ok", fields, []string{"accno"})
	assert.NilError(t, err)

	dup := append(fields, relation.Field{Name: "accno", Kind: value.Int})
	_, err = relation.NewTable(reg, "dup", dup, []string{"accno"})
	var sv *relation.SchemaViolationError
	assert.Assert(t, asErr(err, &sv))

	_, err = relation.NewTable(reg, "nokey", fields, nil)
	assert.Assert(t, asErr(err, &sv))

	_, err = relation.NewTable(reg, "badkey", fields, []string{"missing"})
	var anf *relation.AttributeNotFoundError
	assert.Assert(t, asErr(err, &anf))
	assert.Equal(t, anf.Attribute, "missing")
}

func TestAddRejectsMalformedTuples(t *testing.T) {
	db := bank(t)

	var sv *relation.SchemaViolationError

	err := db.deposit.Add(relation.Tuple{str("Main"), num(999)})
	assert.Assert(t, asErr(err, &sv))

	err = db.deposit.Add(relation.Tuple{str("Main"), num(999), str("Zed"), num(100)})
	assert.Assert(t, asErr(err, &sv))
	assert.Assert(t, strings.Contains(sv.Reason, "balance"))

	assert.Equal(t, db.deposit.Len(), 7)
}

func TestAddDuplicateKeyLastWriteWins(t *testing.T) {
	db := bank(t)

	err := db.deposit.Add(relation.Tuple{str("Alps"), num(903), str("Peter"), flt(9000.0)})
	assert.NilError(t, err)
	assert.Equal(t, db.deposit.Len(), 8)

	hit := db.deposit.SelectKey(key(num(903)))
	assert.Equal(t, hit.Len(), 1)
	assert.DeepEqual(t, colValues(t, hit, "cname"), []string{"Peter"})
}

func TestSelectKey(t *testing.T) {
	db := bank(t)

	hit := db.deposit.SelectKey(key(num(903)))
	assert.Equal(t, hit.Len(), 1)
	assert.DeepEqual(t, colValues(t, hit, "bname"), []string{"Alps"})
	assert.DeepEqual(t, hit.Key, db.deposit.Key)

	miss := db.deposit.SelectKey(key(num(999)))
	assert.Equal(t, miss.Len(), 0)
}

func TestSelectPredicate(t *testing.T) {
	db := bank(t)

	col, ok := db.deposit.Col("bname")
	assert.Assert(t, ok)
	alps := db.deposit.Select(func(tup relation.Tuple) bool {
		return tup[col].Equal(str("Alps"))
	})

	assert.Equal(t, alps.Len(), 2)
	assert.DeepEqual(t, colValues(t, alps, "accno"), []string{"903", "906"})
	assert.Equal(t, db.deposit.Len(), 7)
}

func TestDerivedNamesUnique(t *testing.T) {
	db := bank(t)

	a := db.deposit.Select(func(relation.Tuple) bool { return true })
	b := db.deposit.Select(func(relation.Tuple) bool { return true })
	assert.Assert(t, a.Name != b.Name)
	assert.Assert(t, strings.HasPrefix(a.Name, "deposit_"))
}

func TestRegistry(t *testing.T) {
	db := bank(t)

	got, ok := db.reg.Get("deposit")
	assert.Assert(t, ok)
	assert.Equal(t, got, db.deposit)
	assert.Assert(t, !db.reg.Has("mortgage"))

	assert.DeepEqual(t, db.reg.Names(), []string{"branch", "customer", "deposit", "loan"})
}
