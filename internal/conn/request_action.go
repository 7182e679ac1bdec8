package conn

import (
	"fmt"
	"net/http"

	"github.com/linrel/linrel/internal/auth"
	"github.com/linrel/linrel/internal/relation"
	"github.com/linrel/linrel/pkg"
)

type Action string

const (
	ActionCreateTable Action = "create_table"
	ActionInsert      Action = "insert"
	ActionListTables  Action = "list_tables"
	ActionShowTable   Action = "show_table"
	ActionProject     Action = "project"
	ActionSelect      Action = "select"
	ActionSelectKey   Action = "select_key"
	ActionUnion       Action = "union"
	ActionMinus       Action = "minus"
	ActionJoin        Action = "join"
	ActionJoinWhere   Action = "join_where"
	ActionNaturalJoin Action = "natural_join"
	ActionJoinOn      Action = "join_on"
)

// clearance maps each action to the role it requires.
func (a Action) clearance() auth.Role {
	switch a {
	case ActionCreateTable, ActionInsert:
		return auth.RoleReadWrite
	default:
		return auth.RoleReadOnly
	}
}

// mutates reports whether the action writes to the registry and
// therefore needs the write lock.
func (a Action) mutates() bool {
	return a.clearance() == auth.RoleReadWrite
}

// ActionHandler dispatches a request to its handler, holding the
// registry lock for the duration: write lock for mutating actions,
// read lock otherwise. The engine itself is not safe for concurrent
// mutation, so this is where serialization happens.
func ActionHandler(reg *relation.Registry, action Action, user *auth.User, raw []byte) Response {
	if !user.HasClearance(action.clearance()) {
		return NewErrorResponse(http.StatusForbidden,
			fmt.Sprintf("%s role has no clearance for %s", user.Role, action))
	}

	var res Response
	run := func() { res = dispatch(reg, action, raw) }
	if action.mutates() {
		pkg.LockWrap(reg, run)
	} else {
		pkg.RLockWrap(reg, run)
	}
	return res
}

func dispatch(reg *relation.Registry, action Action, raw []byte) Response {
	switch action {
	case ActionCreateTable:
		return CreateTableReqHandler(reg, raw)
	case ActionInsert:
		return InsertReqHandler(reg, raw)
	case ActionListTables:
		return ListTablesReqHandler(reg)
	case ActionShowTable:
		return ShowTableReqHandler(reg, raw)
	case ActionProject:
		return ProjectReqHandler(reg, raw)
	case ActionSelect:
		return SelectReqHandler(reg, raw)
	case ActionSelectKey:
		return SelectKeyReqHandler(reg, raw)
	case ActionUnion, ActionMinus:
		return SetOpReqHandler(reg, action, raw)
	case ActionJoin, ActionJoinWhere, ActionNaturalJoin, ActionJoinOn:
		return JoinReqHandler(reg, action, raw)
	}
	return NewErrorResponse(http.StatusBadRequest, "unknown action "+string(action))
}
