package conn

import (
	"encoding/json"

	"github.com/linrel/linrel/pkg"
)

type Response struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	// don't manually set this. it comes from the client
	ReqId int `json:"__linrel_client_req_id__"`
}

func (r Response) Marshal() []byte {
	buf, err := json.Marshal(r)
	if err != nil {
		pkg.ErrorLog("marshaling response", err)
		return []byte("{}")
	}
	return buf
}

func NewErrorResponse(status int, err string) Response {
	return Response{Message: err, Status: status}
}

func NewResponse(status int, message string, data any) Response {
	return Response{Data: data, Message: message, Status: status}
}

// TableData is the wire form of an operator result: the derived table's
// name, its attribute names in schema order, and the rows with every
// value rendered to its JSON-friendly form.
type TableData struct {
	Name       string   `json:"name"`
	Attributes []string `json:"attributes"`
	Key        []string `json:"key"`
	Rows       [][]any  `json:"rows"`
}
