package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Filter func(FilterArgs) (Result, error)
	Sort   func(SortArgs) (Result, error)
	Toggle func(TargetArgs) (Result, error)
	Delete func(TargetArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeFilter:
		if handlers.Filter == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "filter handler not configured"}
		}
		return handlers.Filter(*cmd.Filter)
	case TypeSort:
		if handlers.Sort == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "sort handler not configured"}
		}
		return handlers.Sort(*cmd.Sort)
	case TypeToggle:
		if handlers.Toggle == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "toggle handler not configured"}
		}
		return handlers.Toggle(*cmd.Target)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "delete handler not configured"}
		}
		return handlers.Delete(*cmd.Target)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
