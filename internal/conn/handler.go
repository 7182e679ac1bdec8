package conn

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/linrel/linrel/internal/relation"
	"github.com/linrel/linrel/internal/schema"
)

// statusOf maps engine errors to wire statuses: structural schema
// problems are client errors, a missing attribute is a 404-flavored
// miss on the referenced name.
func statusOf(err error) int {
	switch err.(type) {
	case *relation.AttributeNotFoundError:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func lookupTable(reg *relation.Registry, name string) (*relation.Table, *Response) {
	t, ok := reg.Get(name)
	if !ok {
		res := NewErrorResponse(http.StatusNotFound, "Table not found: "+name)
		return nil, &res
	}
	return t, nil
}

type CreateTableRequest struct {
	Name       string `json:"name"`
	Attributes string `json:"attributes"`
	Domains    string `json:"domains"`
	Key        string `json:"key"`
}

func CreateTableReqHandler(reg *relation.Registry, raw []byte) Response {
	var req CreateTableRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	table, err := schema.NewTable(reg, req.Name, req.Attributes, req.Domains, req.Key)
	if err != nil {
		return NewErrorResponse(statusOf(err), err.Error())
	}
	reg.Add(table)

	return NewResponse(http.StatusCreated,
		fmt.Sprintf("Created table %s", table.Name), tableData(table))
}

type InsertRequest struct {
	Table string  `json:"table"`
	Rows  [][]any `json:"rows"`
}

func InsertReqHandler(reg *relation.Registry, raw []byte) Response {
	var req InsertRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	table, errRes := lookupTable(reg, req.Table)
	if errRes != nil {
		return *errRes
	}

	inserted := 0
	for _, cells := range req.Rows {
		tup, err := tupleFromJSON(table, cells)
		if err != nil {
			return NewErrorResponse(http.StatusBadRequest, err.Error())
		}
		if err := table.Add(tup); err != nil {
			return NewErrorResponse(statusOf(err), err.Error())
		}
		inserted++
	}

	return NewResponse(http.StatusCreated,
		fmt.Sprintf("Inserted %d rows into table %s", inserted, table.Name), inserted)
}

func ListTablesReqHandler(reg *relation.Registry) Response {
	return NewResponse(http.StatusOK, "OK", reg.Names())
}

type TableRequest struct {
	Table string `json:"table"`
}

func ShowTableReqHandler(reg *relation.Registry, raw []byte) Response {
	var req TableRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	table, errRes := lookupTable(reg, req.Table)
	if errRes != nil {
		return *errRes
	}
	return NewResponse(http.StatusOK, table.String(), tableData(table))
}

type ProjectRequest struct {
	Table      string   `json:"table"`
	Attributes []string `json:"attributes"`
}

func ProjectReqHandler(reg *relation.Registry, raw []byte) Response {
	var req ProjectRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	table, errRes := lookupTable(reg, req.Table)
	if errRes != nil {
		return *errRes
	}

	res, err := table.Project(req.Attributes)
	if err != nil {
		return NewErrorResponse(statusOf(err), err.Error())
	}
	return NewResponse(http.StatusOK, "OK", tableData(res))
}

type SelectRequest struct {
	Table string `json:"table"`
	Where string `json:"where"`
}

func SelectReqHandler(reg *relation.Registry, raw []byte) Response {
	var req SelectRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	table, errRes := lookupTable(reg, req.Table)
	if errRes != nil {
		return *errRes
	}

	res, err := table.SelectWhere(req.Where)
	if err != nil {
		return NewErrorResponse(statusOf(err), err.Error())
	}
	return NewResponse(http.StatusOK, "OK", tableData(res))
}

type SelectKeyRequest struct {
	Table string `json:"table"`
	Key   []any  `json:"key"`
}

func SelectKeyReqHandler(reg *relation.Registry, raw []byte) Response {
	var req SelectKeyRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	table, errRes := lookupTable(reg, req.Table)
	if errRes != nil {
		return *errRes
	}

	key, err := keyFromJSON(table, req.Key)
	if err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}
	return NewResponse(http.StatusOK, "OK", tableData(table.SelectKey(key)))
}

type SetOpRequest struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

func SetOpReqHandler(reg *relation.Registry, action Action, raw []byte) Response {
	var req SetOpRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	left, errRes := lookupTable(reg, req.Left)
	if errRes != nil {
		return *errRes
	}
	right, errRes := lookupTable(reg, req.Right)
	if errRes != nil {
		return *errRes
	}

	var res *relation.Table
	var err error
	if action == ActionUnion {
		res, err = left.Union(right)
	} else {
		res, err = left.Minus(right)
	}
	if err != nil {
		return NewErrorResponse(statusOf(err), err.Error())
	}
	return NewResponse(http.StatusOK, "OK", tableData(res))
}

type JoinRequest struct {
	Left  string `json:"left"`
	Right string `json:"right"`

	Attrs1 []string `json:"attrs1"` // equi-join
	Attrs2 []string `json:"attrs2"` // equi-join
	Where  string   `json:"where"`  // theta-join condition
	Fkey   string   `json:"fkey"`   // indexed join foreign key
}

func JoinReqHandler(reg *relation.Registry, action Action, raw []byte) Response {
	var req JoinRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	left, errRes := lookupTable(reg, req.Left)
	if errRes != nil {
		return *errRes
	}
	right, errRes := lookupTable(reg, req.Right)
	if errRes != nil {
		return *errRes
	}

	var res *relation.Table
	var err error
	switch action {
	case ActionJoin:
		res, err = left.Join(req.Attrs1, req.Attrs2, right)
	case ActionJoinWhere:
		res, err = left.JoinWhere(req.Where, right)
	case ActionNaturalJoin:
		res = left.NaturalJoin(right)
	case ActionJoinOn:
		res, err = left.JoinOn(right, req.Fkey)
	}
	if err != nil {
		return NewErrorResponse(statusOf(err), err.Error())
	}
	return NewResponse(http.StatusOK, "OK", tableData(res))
}
