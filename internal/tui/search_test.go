package tui

import "testing"

func TestSearchModel(t *testing.T) {
	s := NewSearchModel()
	if s.IsActive() || s.Term() != "" {
		t.Fatal("new search model should be idle and empty")
	}

	s.Update(StartSearchMsg{})
	s.Update(UpdateSearchInputMsg{Input: "go"})
	if !s.IsActive() || s.Term() != "go" {
		t.Fatalf("typing: active=%v term=%q", s.IsActive(), s.Term())
	}

	s.Update(ExecuteSearchMsg{})
	if s.IsActive() || s.Term() != "go" {
		t.Errorf("execute: active=%v term=%q", s.IsActive(), s.Term())
	}

	s.Update(StartSearchMsg{})
	s.Update(UpdateSearchInputMsg{Input: "gopher"})
	s.Update(CancelSearchMsg{})
	if s.IsActive() || s.Term() != "go" {
		t.Errorf("cancel should restore %q, got %q", "go", s.Term())
	}

	s.Update(ClearSearchMsg{})
	if s.Term() != "" {
		t.Errorf("clear left %q", s.Term())
	}
	s.Update(StartSearchMsg{})
	s.Update(CancelSearchMsg{})
	if s.Term() != "" {
		t.Errorf("cancel after clear restored %q", s.Term())
	}
}
