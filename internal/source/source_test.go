package source

import "testing"

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.sql", []byte("SELECT 1;\nVACUUM;\n"))

	start, end := fs.Resolve(Span{File: id, Start: 10, End: 16})
	if start.Line != 2 || start.Col != 1 {
		t.Fatalf("start = %+v, want line=2 col=1", start)
	}
	if end.Line != 2 || end.Col != 7 {
		t.Fatalf("end = %+v, want line=2 col=7", end)
	}
}

func TestFileLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.sql", []byte("VACUUM;\nCOMMIT;\n"))
	f := fs.Get(id)

	if got := f.Line(1); got != "VACUUM;" {
		t.Fatalf("line 1 = %q", got)
	}
	if got := f.Line(2); got != "COMMIT;" {
		t.Fatalf("line 2 = %q", got)
	}
	if got := f.Line(3); got != "" {
		t.Fatalf("line 3 = %q, want empty", got)
	}
}

func TestSpanClamp(t *testing.T) {
	s := Span{Start: 5, End: 100}
	got := s.Clamp(10)
	if got.Start != 5 || got.End != 10 {
		t.Fatalf("clamp = %+v", got)
	}
}

func TestCRLFAndBOMNormalization(t *testing.T) {
	fs := NewFileSet()
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("SELECT 1;\r\nCOMMIT;\r\n")...)
	id := fs.AddVirtual("t.sql", raw)
	f := fs.Get(id)
	if f.Flags&FileHadBOM == 0 {
		t.Fatalf("expected FileHadBOM flag from AddVirtual normalization")
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("expected FileNormalizedCRLF flag")
	}
	if string(f.Content) != "SELECT 1;\nCOMMIT;\n" {
		t.Fatalf("content = %q", f.Content)
	}
}
