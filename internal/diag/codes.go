package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Нарушения контрактов дерева
	AstInfo              Code = 1000
	AstNotIdentifier     Code = 1001
	AstInitCountMismatch Code = 1002
	AstVariantEmpty      Code = 1003
	AstUnknownOperator   Code = 1004
	AstDanglingHandle    Code = 1005
	AstBadChild          Code = 1006
	AstSharedChild       Code = 1007

	// Ввод-вывод
	IOInfo           Code = 4000
	IOSnapshotRead   Code = 4001
	IOSnapshotSchema Code = 4002
	IOConfig         Code = 4003
	IOWrite          Code = 4004
)

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown error",
	AstInfo:              "AST information",
	AstNotIdentifier:     "Scope requested on a non-identifier symbol entry",
	AstInitCountMismatch: "Declarator and initializer counts differ",
	AstVariantEmpty:      "Unpopulated branch of an exclusive node variant",
	AstUnknownOperator:   "Operator outside the known set",
	AstDanglingHandle:    "Handle does not refer to an allocated node",
	AstBadChild:          "Child node has the wrong kind",
	AstSharedChild:       "Node is owned by more than one parent",
	IOInfo:               "I/O information",
	IOSnapshotRead:       "Cannot read unit snapshot",
	IOSnapshotSchema:     "Unsupported snapshot schema",
	IOConfig:             "Invalid configuration",
	IOWrite:              "Cannot write trace output",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("AST%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
