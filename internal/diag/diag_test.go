package diag

import "testing"

func TestSink_ReportAndCount(t *testing.T) {
	sink := NewSink()

	if sink.Count() != 0 {
		t.Errorf("expected empty sink, got %d", sink.Count())
	}

	sink.Report("whole-file problem")
	sink.ReportAt(3, "line problem")
	sink.ReportAtf(7, "problem with %q", "value")

	if sink.Count() != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", sink.Count())
	}

	ds := sink.Diagnostics()
	if ds[0].Line != NoLine {
		t.Errorf("expected NoLine for plain report, got %d", ds[0].Line)
	}
	if ds[1].Line != 3 || ds[1].Message != "line problem" {
		t.Errorf("unexpected diagnostic: %+v", ds[1])
	}
	if ds[2].Message != `problem with "value"` {
		t.Errorf("unexpected formatted message: %q", ds[2].Message)
	}
}

func TestSink_DiagnosticsIsACopy(t *testing.T) {
	sink := NewSink()
	sink.Report("one")

	ds := sink.Diagnostics()
	ds[0].Message = "mutated"

	if sink.Diagnostics()[0].Message != "one" {
		t.Error("Diagnostics() should return a copy")
	}
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{Line: 5, Message: "bad tag"}
	if got := d.String(); got != "line 5: bad tag" {
		t.Errorf("unexpected String: %q", got)
	}

	d = Diagnostic{Line: NoLine, Message: "no input"}
	if got := d.String(); got != "no input" {
		t.Errorf("unexpected String: %q", got)
	}
}
