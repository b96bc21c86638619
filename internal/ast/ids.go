package ast

type (
	ExprID uint32
	StmtID uint32
	// списки объявлений
	IDListID   uint32
	InitListID uint32
	ParaListID uint32

	PayloadID uint32
)

const (
	NoExprID     ExprID     = 0
	NoStmtID     StmtID     = 0
	NoIDListID   IDListID   = 0
	NoInitListID InitListID = 0
	NoParaListID ParaListID = 0
	NoPayloadID  PayloadID  = 0
)

func (id ExprID) IsValid() bool     { return id != NoExprID }
func (id StmtID) IsValid() bool     { return id != NoStmtID }
func (id IDListID) IsValid() bool   { return id != NoIDListID }
func (id InitListID) IsValid() bool { return id != NoInitListID }
func (id ParaListID) IsValid() bool { return id != NoParaListID }
func (id PayloadID) IsValid() bool  { return id != NoPayloadID }
