package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAdd  Type = "add"
	TypeDone Type = "done"
	TypeMood Type = "mood"
	TypeRate Type = "rate"
	TypeUse  Type = "use"
	TypePlan Type = "plan"
	TypeShow Type = "show"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AddArgs carries the task name plus optional inline modifiers:
// "add Fix the roof due:tomorrow est:90 mood:focused".
type AddArgs struct {
	Name     string
	Due      string
	Estimate string
	Mood     string
}

type DoneArgs struct {
	Target string
}

type MoodArgs struct {
	Mood string
}

type RateArgs struct {
	Target string
	Rating string
}

// UseArgs targets a tool or reward by id or list position.
type UseArgs struct {
	Target string
}

// PlanArgs is a free-text goal handed to the assistant.
type PlanArgs struct {
	Goal string
}

type ShowArgs struct {
	Subject string
}

type Command struct {
	Type Type
	Raw  string
	Add  *AddArgs
	Done *DoneArgs
	Mood *MoodArgs
	Rate *RateArgs
	Use  *UseArgs
	Plan *PlanArgs
	Show *ShowArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone:
		return parseDone(input, args)
	case TypeMood:
		return parseMood(input, args)
	case TypeRate:
		return parseRate(input, args)
	case TypeUse:
		return parseUse(input, args)
	case TypePlan:
		return parsePlan(input, args)
	case TypeShow:
		return parseShow(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a task name"}
	}
	out := AddArgs{}
	nameParts := make([]string, 0, len(args))
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, "due:"):
			out.Due = arg[len("due:"):]
		case strings.HasPrefix(lower, "est:"):
			out.Estimate = arg[len("est:"):]
		case strings.HasPrefix(lower, "mood:"):
			out.Mood = arg[len("mood:"):]
		default:
			nameParts = append(nameParts, arg)
		}
	}
	out.Name = strings.TrimSpace(strings.Join(nameParts, " "))
	if out.Name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a task name"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseDone(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "done requires a task"}
	}
	return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Target: strings.Join(args, " ")}}, nil
}

func parseMood(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "mood requires a value"}
	}
	return Command{Type: TypeMood, Raw: raw, Mood: &MoodArgs{Mood: strings.ToLower(args[0])}}, nil
}

func parseRate(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "rate requires a task and easy|medium|hard"}
	}
	rating := strings.ToLower(args[len(args)-1])
	target := strings.Join(args[:len(args)-1], " ")
	return Command{Type: TypeRate, Raw: raw, Rate: &RateArgs{Target: target, Rating: rating}}, nil
}

func parseUse(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "use requires a tool or reward"}
	}
	return Command{Type: TypeUse, Raw: raw, Use: &UseArgs{Target: strings.Join(args, " ")}}, nil
}

func parsePlan(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "plan requires a goal"}
	}
	return Command{Type: TypePlan, Raw: raw, Plan: &PlanArgs{Goal: strings.Join(args, " ")}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a subject"}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: strings.ToLower(args[0])}}, nil
}
