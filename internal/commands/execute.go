package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add  func(AddArgs) (Result, error)
	Done func(DoneArgs) (Result, error)
	Mood func(MoodArgs) (Result, error)
	Rate func(RateArgs) (Result, error)
	Use  func(UseArgs) (Result, error)
	Plan func(PlanArgs) (Result, error)
	Show func(ShowArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "done handler not configured"}
		}
		return handlers.Done(*cmd.Done)
	case TypeMood:
		if handlers.Mood == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "mood handler not configured"}
		}
		return handlers.Mood(*cmd.Mood)
	case TypeRate:
		if handlers.Rate == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "rate handler not configured"}
		}
		return handlers.Rate(*cmd.Rate)
	case TypeUse:
		if handlers.Use == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "use handler not configured"}
		}
		return handlers.Use(*cmd.Use)
	case TypePlan:
		if handlers.Plan == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "plan handler not configured"}
		}
		return handlers.Plan(*cmd.Plan)
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "show handler not configured"}
		}
		return handlers.Show(*cmd.Show)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
