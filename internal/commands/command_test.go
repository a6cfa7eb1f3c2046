package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/selesai/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{":add buy milk", TypeAdd},
		{"/new call mum", TypeAdd},
		{"toggle 3", TypeToggle},
		{"done #4", TypeToggle},
		{"rm 2", TypeRemove},
		{"filter completed", TypeFilter},
		{"show pending", TypeFilter},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddKeepsInnerSpacing(t *testing.T) {
	cmd, err := Parse(":add  buy   2 litres ")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Description != "buy   2 litres" {
		t.Fatalf("unexpected description: %q", cmd.Add.Description)
	}
}

func TestParseArguments(t *testing.T) {
	cmd, err := Parse("done #4")
	if err != nil || cmd.Toggle.ID != 4 {
		t.Fatalf("toggle id = %+v, %v", cmd.Toggle, err)
	}
	cmd, err = Parse("filter done")
	if err != nil || cmd.Filter.Mode != model.FilterCompleted {
		t.Fatalf("filter mode = %+v, %v", cmd.Filter, err)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]ErrorCode{
		"":               ErrCodeEmptyInput,
		":":              ErrCodeEmptyInput,
		"/unknown do x":  ErrCodeUnknownCommand,
		"add   ":         ErrCodeInvalidArgument,
		"rm":             ErrCodeInvalidArgument,
		"rm abc":         ErrCodeInvalidArgument,
		"toggle 0":       ErrCodeInvalidArgument,
		"filter someday": ErrCodeInvalidArgument,
	}
	for in, code := range cases {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != code {
			t.Fatalf("Parse(%q) = %v, want code %s", in, err, code)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("rm 7")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Remove: func(a RemoveArgs) (Result, error) {
			called = true
			if a.ID != 7 {
				t.Fatalf("unexpected id: %d", a.ID)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("filter pending")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
