package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/selesai/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeToggle Type = "toggle"
	TypeRemove Type = "remove"
	TypeFilter Type = "filter"
)

var aliases = map[string]Type{
	"add":    TypeAdd,
	"new":    TypeAdd,
	"toggle": TypeToggle,
	"check":  TypeToggle,
	"done":   TypeToggle,
	"remove": TypeRemove,
	"rm":     TypeRemove,
	"del":    TypeRemove,
	"filter": TypeFilter,
	"show":   TypeFilter,
}

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

type AddArgs struct {
	Description string
}

type ToggleArgs struct {
	ID int
}

type RemoveArgs struct {
	ID int
}

type FilterArgs struct {
	Mode model.FilterMode
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Toggle *ToggleArgs
	Remove *RemoveArgs
	Filter *FilterArgs
}

// Parse reads a palette line such as "add buy milk" or ":rm 3". A leading
// ':' or '/' is ignored.
func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimLeft(raw, ":/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	typ, ok := aliases[head]
	if !ok {
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
	switch typ {
	case TypeAdd:
		return parseAdd(input, raw[len(parts[0]):])
	case TypeToggle:
		id, err := parseID(head, args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeToggle, Raw: input, Toggle: &ToggleArgs{ID: id}}, nil
	case TypeRemove:
		id, err := parseID(head, args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeRemove, Raw: input, Remove: &RemoveArgs{ID: id}}, nil
	default:
		return parseFilter(input, args)
	}
}

func parseAdd(raw string, rest string) (Command, error) {
	description := strings.TrimSpace(rest)
	if description == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a description"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Description: description}}, nil
}

func parseID(head string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a single item id", head)}
	}
	id, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
	if err != nil || id <= 0 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid item id: %s", args[0])}
	}
	return id, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires pending or completed"}
	}
	mode, err := model.ParseFilterMode(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Mode: mode}}, nil
}
