package relation_test

import (
	"testing"

	"github.com/linrel/linrel/internal/relation"
	"gotest.tools/assert"
)

func TestUnion(t *testing.T) {
	db := bank(t)

	// Account and loan numbers are disjoint, so nothing collapses.
	all, err := db.deposit.Union(db.loan)
	assert.NilError(t, err)
	assert.Equal(t, all.Len(), db.deposit.Len()+db.loan.Len())
	assert.DeepEqual(t, all.Key, db.deposit.Key)
	assert.DeepEqual(t, all.Attributes(), db.deposit.Attributes())
}

func TestUnionCollapsesByKey(t *testing.T) {
	db := bank(t)

	same, err := db.deposit.Union(db.deposit)
	assert.NilError(t, err)
	assert.Equal(t, same.Len(), db.deposit.Len())
}

func TestUnionIncompatible(t *testing.T) {
	db := bank(t)

	_, err := db.deposit.Union(db.customer)
	var sm *relation.SchemaMismatchError
	assert.Assert(t, asErr(err, &sm))

	// Same arity, different domain at one position.
	_, err = db.branch.Union(db.customer)
	assert.Assert(t, asErr(err, &sm))
}

func TestMinusSelfIsEmpty(t *testing.T) {
	db := bank(t)

	empty, err := db.deposit.Minus(db.deposit)
	assert.NilError(t, err)
	assert.Equal(t, empty.Len(), 0)
	assert.DeepEqual(t, empty.Attributes(), db.deposit.Attributes())
}

func TestMinusRoundTrip(t *testing.T) {
	db := bank(t)

	all, err := db.deposit.Union(db.loan)
	assert.NilError(t, err)
	back, err := all.Minus(db.loan)
	assert.NilError(t, err)

	assert.Equal(t, back.Len(), db.deposit.Len())
	assert.DeepEqual(t,
		rowSet(t, back, "bname", "accno", "cname", "balance"),
		rowSet(t, db.deposit, "bname", "accno", "cname", "balance"))
}
