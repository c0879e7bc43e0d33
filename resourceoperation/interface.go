package resourceoperation

import (
	"context"
)

const (
	Create = 2
	Update = 3

	Diff   = 4
	Deploy = 5
)

type ResourceOperation interface {
	Call(context.Context) error
	ToString() string
	AddDependent(ResourceOperation)
	ListDependents() []ResourceOperation
}

func FlattenOperations(topList []ResourceOperation) []ResourceOperation {
	var finalOperations []ResourceOperation

	for _, op := range topList {
		finalOperations = append(finalOperations, op)
		finalOperations = append(finalOperations, FlattenOperations(op.ListDependents())...)
	}

	return finalOperations
}

func operationName(op int) string {
	switch op {
	case Create:
		return "create"
	case Update:
		return "update"
	case Diff:
		return "diff"
	case Deploy:
		return "deploy"
	default:
		return "unknown"
	}
}
