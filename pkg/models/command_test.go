package models

import (
	"reflect"
	"testing"
)

func TestTaggedCommand_HasVerb(t *testing.T) {
	tests := []struct {
		cmd  TaggedCommand
		verb string
		want bool
	}{
		{"open chrome", "open", true},
		{"open", "open", true},
		{"opener thing", "open", false},
		{"google search cats", "google search", true},
		{"google search cats", "google", true},
		{"general who are you", "general", true},
		{"exit", "exit", true},
		{"", "open", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.cmd)+"/"+tt.verb, func(t *testing.T) {
			if got := tt.cmd.HasVerb(tt.verb); got != tt.want {
				t.Errorf("TaggedCommand(%q).HasVerb(%q) = %v, want %v", tt.cmd, tt.verb, got, tt.want)
			}
		})
	}
}

func TestTaggedCommand_Argument(t *testing.T) {
	tests := []struct {
		cmd  TaggedCommand
		verb string
		want string
	}{
		{"open chrome", "open", "chrome"},
		{"google search  cats ", "google search", "cats"},
		{"exit", "exit", ""},
		{"play music", "open", "play music"},
	}

	for _, tt := range tests {
		t.Run(string(tt.cmd), func(t *testing.T) {
			if got := tt.cmd.Argument(tt.verb); got != tt.want {
				t.Errorf("TaggedCommand(%q).Argument(%q) = %q, want %q", tt.cmd, tt.verb, got, tt.want)
			}
		})
	}
}

func TestDecision_Any(t *testing.T) {
	d := Decision{"open chrome", "realtime who is the prime minister"}

	if !d.Any(VerbRealtime) {
		t.Error("expected decision to contain a realtime command")
	}
	if d.Any(VerbGeneral) {
		t.Error("expected decision to contain no general command")
	}

	want := []string{"open chrome", "realtime who is the prime minister"}
	if got := d.Strings(); !reflect.DeepEqual(got, want) {
		t.Errorf("Strings() = %v, want %v", got, want)
	}
}

func TestRole_Valid(t *testing.T) {
	if !RoleUser.Valid() || !RoleAssistant.Valid() {
		t.Error("expected user and assistant roles to be valid")
	}
	if Role("system").Valid() {
		t.Error("expected system role to be invalid in the conversation log")
	}
}

func TestActionDescriptor_NoOp(t *testing.T) {
	if !(ActionDescriptor{Command: "general hi"}).NoOp() {
		t.Error("descriptor without handler should be a no-op")
	}
	if (ActionDescriptor{Command: "open chrome", Handler: "open", Argument: "chrome"}).NoOp() {
		t.Error("descriptor with handler should not be a no-op")
	}
}
