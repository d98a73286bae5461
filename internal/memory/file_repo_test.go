package memory

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileRepositoryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepository(filepath.Join(dir, "memory.yaml"))
	if err != nil {
		t.Fatalf("init repo: %v", err)
	}

	in := map[string]Record{
		"1": {
			Permanent: "名前はタロウ",
			Recent:    "昨日はゲームの話",
			Topics:    []Topic{{Text: "戦車の話", Date: "2025-08-30"}},
		},
	}
	if err := repo.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := repo.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	rec := out["1"]
	if rec.Permanent != "名前はタロウ" || rec.Recent != "昨日はゲームの話" {
		t.Fatalf("record mismatch: %+v", rec)
	}
	if len(rec.Topics) != 1 || rec.Topics[0].Text != "戦車の話" || rec.Topics[0].Date != "2025-08-30" {
		t.Fatalf("topics mismatch: %+v", rec.Topics)
	}
}

func TestFileRepositoryMissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepository(filepath.Join(dir, "absent.yaml"))
	if err != nil {
		t.Fatalf("init repo: %v", err)
	}
	out, err := repo.Load()
	if err != nil || len(out) != 0 {
		t.Fatalf("missing file must load empty, got %v, %v", out, err)
	}

	p := filepath.Join(dir, "corrupt.yaml")
	if err := os.WriteFile(p, []byte("{["), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	repo2, err := NewFileRepository(p)
	if err != nil {
		t.Fatalf("init repo: %v", err)
	}
	out, err = repo2.Load()
	if err != nil || len(out) != 0 {
		t.Fatalf("corrupt file must load empty, got %v, %v", out, err)
	}
}
