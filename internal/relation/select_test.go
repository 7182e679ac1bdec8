package relation_test

import (
	"strings"
	"testing"

	"github.com/linrel/linrel/internal/relation"
	"gotest.tools/assert"
)

func TestSelectWhere(t *testing.T) {
	db := bank(t)

	rich, err := db.deposit.SelectWhere("balance >= 2000")
	assert.NilError(t, err)
	assert.Equal(t, rich.Len(), 3)
	assert.DeepEqual(t, colValues(t, rich, "accno"), []string{"902", "903", "906"})

	alps, err := db.deposit.SelectWhere("bname == 'Alps'")
	assert.NilError(t, err)
	assert.DeepEqual(t, colValues(t, alps, "accno"), []string{"903", "906"})

	none, err := db.deposit.SelectWhere("balance < 1000")
	assert.NilError(t, err)
	assert.Equal(t, none.Len(), 0)
}

func TestSelectWhereUnknownAttribute(t *testing.T) {
	db := bank(t)

	_, err := db.deposit.SelectWhere("interest > 1")
	var anf *relation.AttributeNotFoundError
	assert.Assert(t, asErr(err, &anf))
	assert.Equal(t, anf.Attribute, "interest")
}

func TestSelectWhereMalformedCondition(t *testing.T) {
	db := bank(t)

	_, err := db.deposit.SelectWhere("balance>=2000")
	assert.ErrorContains(t, err, "3 tokens")

	_, err = db.deposit.SelectWhere("balance >= 2000 extra")
	assert.ErrorContains(t, err, "3 tokens")
}

// A literal the attribute's domain cannot parse excludes every tuple
// and reports each failure instead of aborting the select.
func TestSelectWhereBadLiteralReported(t *testing.T) {
	db := bank(t)

	out, err := db.deposit.SelectWhere("balance > plenty")
	assert.NilError(t, err)
	assert.Equal(t, out.Len(), 0)

	assert.Equal(t, len(db.rec.reports), db.deposit.Len())
	assert.Assert(t, strings.Contains(db.rec.reports[0], "plenty"))
}

func TestSelectWhereUnknownOperatorReported(t *testing.T) {
	db := bank(t)

	out, err := db.deposit.SelectWhere("balance >> 2000")
	assert.NilError(t, err)
	assert.Equal(t, out.Len(), 0)
	assert.Equal(t, len(db.rec.reports), db.deposit.Len())
	assert.Assert(t, strings.Contains(db.rec.reports[0], ">>"))
}
