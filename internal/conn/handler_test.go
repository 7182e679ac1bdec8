package conn_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/linrel/linrel/internal/auth"
	. "github.com/linrel/linrel/internal/conn"
	"github.com/linrel/linrel/internal/relation"
	"gotest.tools/assert"
)

func testEnv(t *testing.T) (*relation.Registry, *auth.User) {
	t.Helper()
	reg := relation.NewRegistry(nil)
	admin := auth.NewUser("admin", "secret", auth.RoleAdmin)

	res := ActionHandler(reg, ActionCreateTable, admin, []byte(`{
		"name": "deposit",
		"attributes": "bname accno cname balance",
		"domains": "String Integer String Double",
		"key": "accno"
	}`))
	assert.Equal(t, res.Status, http.StatusCreated, res.Message)

	res = ActionHandler(reg, ActionInsert, admin, []byte(`{
		"table": "deposit",
		"rows": [
			["Downtown", 901, "Peter", 1000.0],
			["Main", 902, "Paul", 2000.0],
			["Alps", 903, "Paul", 3000.0]
		]
	}`))
	assert.Equal(t, res.Status, http.StatusCreated, res.Message)

	return reg, admin
}

func TestCreateAndInsert(t *testing.T) {
	reg, _ := testEnv(t)

	table, ok := reg.Get("deposit")
	assert.Assert(t, ok)
	assert.Equal(t, table.Len(), 3)
	assert.Equal(t, table.Arity(), 4)
}

func TestInsertRejectsBadRow(t *testing.T) {
	reg, admin := testEnv(t)

	res := ActionHandler(reg, ActionInsert, admin, []byte(`{
		"table": "deposit",
		"rows": [["Main", "not a number", "Paul", 2000.0]]
	}`))
	assert.Equal(t, res.Status, http.StatusBadRequest)

	res = ActionHandler(reg, ActionInsert, admin, []byte(`{
		"table": "mortgage",
		"rows": [["Main", 910, "Paul", 2000.0]]
	}`))
	assert.Equal(t, res.Status, http.StatusNotFound)
}

func TestListAndShow(t *testing.T) {
	reg, admin := testEnv(t)

	res := ActionHandler(reg, ActionListTables, admin, nil)
	assert.Equal(t, res.Status, http.StatusOK)
	assert.DeepEqual(t, res.Data, []string{"deposit"})

	res = ActionHandler(reg, ActionShowTable, admin, []byte(`{"table": "deposit"}`))
	assert.Equal(t, res.Status, http.StatusOK)
	data, ok := res.Data.(TableData)
	assert.Assert(t, ok)
	assert.Equal(t, len(data.Rows), 3)
	assert.DeepEqual(t, data.Key, []string{"accno"})
}

func TestQueryActions(t *testing.T) {
	reg, admin := testEnv(t)

	res := ActionHandler(reg, ActionProject, admin, []byte(`{
		"table": "deposit", "attributes": ["bname", "cname"]
	}`))
	assert.Equal(t, res.Status, http.StatusOK)
	assert.Equal(t, len(res.Data.(TableData).Rows), 3)

	res = ActionHandler(reg, ActionSelect, admin, []byte(`{
		"table": "deposit", "where": "balance >= 2000"
	}`))
	assert.Equal(t, res.Status, http.StatusOK)
	assert.Equal(t, len(res.Data.(TableData).Rows), 2)

	res = ActionHandler(reg, ActionSelectKey, admin, []byte(`{
		"table": "deposit", "key": [903]
	}`))
	assert.Equal(t, res.Status, http.StatusOK)
	rows := res.Data.(TableData).Rows
	assert.Equal(t, len(rows), 1)
	assert.Equal(t, rows[0][0], any("Alps"))
	assert.Equal(t, rows[0][1], any(int64(903)))
}

func TestProjectDuplicateAttributeIs400(t *testing.T) {
	reg, admin := testEnv(t)

	res := ActionHandler(reg, ActionProject, admin, []byte(`{
		"table": "deposit", "attributes": ["bname", "bname"]
	}`))
	assert.Equal(t, res.Status, http.StatusBadRequest)

	res = ActionHandler(reg, ActionProject, admin, []byte(`{
		"table": "deposit", "attributes": []
	}`))
	assert.Equal(t, res.Status, http.StatusBadRequest)
}

func TestSelectUnknownAttributeIs404(t *testing.T) {
	reg, admin := testEnv(t)

	res := ActionHandler(reg, ActionSelect, admin, []byte(`{
		"table": "deposit", "where": "interest > 1"
	}`))
	assert.Equal(t, res.Status, http.StatusNotFound)
}

func TestSetOpActions(t *testing.T) {
	reg, admin := testEnv(t)

	res := ActionHandler(reg, ActionUnion, admin, []byte(`{
		"left": "deposit", "right": "deposit"
	}`))
	assert.Equal(t, res.Status, http.StatusOK)
	assert.Equal(t, len(res.Data.(TableData).Rows), 3)

	res = ActionHandler(reg, ActionMinus, admin, []byte(`{
		"left": "deposit", "right": "deposit"
	}`))
	assert.Equal(t, res.Status, http.StatusOK)
	assert.Equal(t, len(res.Data.(TableData).Rows), 0)
}

func TestJoinActions(t *testing.T) {
	reg, admin := testEnv(t)

	res := ActionHandler(reg, ActionCreateTable, admin, []byte(`{
		"name": "customer",
		"attributes": "cname street",
		"domains": "String String",
		"key": "cname"
	}`))
	assert.Equal(t, res.Status, http.StatusCreated, res.Message)
	res = ActionHandler(reg, ActionInsert, admin, []byte(`{
		"table": "customer",
		"rows": [["Peter", "Maple St"], ["Paul", "Oak St"]]
	}`))
	assert.Equal(t, res.Status, http.StatusCreated, res.Message)

	res = ActionHandler(reg, ActionJoin, admin, []byte(`{
		"left": "deposit", "right": "customer",
		"attrs1": ["cname"], "attrs2": ["cname"]
	}`))
	assert.Equal(t, res.Status, http.StatusOK)
	assert.Equal(t, len(res.Data.(TableData).Rows), 3)

	res = ActionHandler(reg, ActionJoinOn, admin, []byte(`{
		"left": "deposit", "right": "customer", "fkey": "cname"
	}`))
	assert.Equal(t, res.Status, http.StatusOK)
	data := res.Data.(TableData)
	assert.Equal(t, len(data.Rows), 3)
	assert.DeepEqual(t, data.Attributes,
		[]string{"bname", "accno", "cname", "balance", "street"})

	res = ActionHandler(reg, ActionNaturalJoin, admin, []byte(`{
		"left": "deposit", "right": "customer"
	}`))
	assert.Equal(t, res.Status, http.StatusOK)
	assert.Equal(t, len(res.Data.(TableData).Rows), 3)
}

func TestClearance(t *testing.T) {
	reg, _ := testEnv(t)
	reader := auth.NewUser("reader", "secret", auth.RoleReadOnly)

	res := ActionHandler(reg, ActionInsert, reader, []byte(`{
		"table": "deposit", "rows": [["Lake", 904, "Paul", 1000.0]]
	}`))
	assert.Equal(t, res.Status, http.StatusForbidden)
	assert.Assert(t, strings.Contains(res.Message, "read-only role"), res.Message)

	res = ActionHandler(reg, ActionListTables, reader, nil)
	assert.Equal(t, res.Status, http.StatusOK)
}

func TestUnknownAction(t *testing.T) {
	reg, admin := testEnv(t)

	res := ActionHandler(reg, Action("drop_table"), admin, nil)
	assert.Equal(t, res.Status, http.StatusBadRequest)
}
