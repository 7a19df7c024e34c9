package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/danieljhkim/mapimp/internal/engine"
	"github.com/danieljhkim/mapimp/internal/state"
)

func TestSession_EditSaveExport(t *testing.T) {
	env := setupTestEngine(t, nil)
	ctx := context.Background()

	mapPath := env.createMap(t, "test.w3x", map[string]string{
		`war3mapImported\a.mdx`: "model a",
		`war3mapImported\b.blp`: "texture b",
	}, `war3mapImported\a.mdx`, `war3mapImported\b.blp`)

	opened, err := env.eng.Open(ctx, &engine.OpenRequest{ArchivePath: mapPath})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if len(opened.Entries) != 2 {
		t.Fatalf("Open() entries = %d, want 2", len(opened.Entries))
	}

	if _, err := env.eng.Move(ctx, &engine.MoveRequest{
		ArchivePath: mapPath,
		From:        `war3mapImported\a.mdx`,
		To:          `Units\a.mdx`,
	}); err != nil {
		t.Fatalf("Move() error = %v", err)
	}

	src := env.writeSource(t, "pack/icons/btn.blp", "icon")
	if _, err := env.eng.Import(ctx, &engine.ImportRequest{
		ArchivePath:    mapPath,
		Paths:          []string{filepath.Dir(filepath.Dir(src))},
		WithFolderName: true,
	}); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	// the session survives on disk between operations
	session, err := env.sessions.Load(opened.SessionID)
	if err != nil {
		t.Fatalf("sessions.Load() error = %v", err)
	}
	if !session.Dirty || len(session.Entries) != 3 {
		t.Fatalf("session dirty=%v entries=%d, want dirty with 3", session.Dirty, len(session.Entries))
	}

	status, err := env.eng.Status(ctx, &engine.StatusRequest{ArchivePath: mapPath})
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status.Plan == nil || status.Plan.IsEmpty() {
		t.Fatal("expected pending operations")
	}

	saved, err := env.eng.Save(ctx, &engine.SaveRequest{ArchivePath: mapPath})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !saved.Saved || !saved.Reloaded {
		t.Errorf("Save() saved=%v reloaded=%v, want both true", saved.Saved, saved.Reloaded)
	}

	_, index, _ := env.snapshot(t, mapPath)
	wantIndex := []string{`Units\a.mdx`, `war3mapImported\b.blp`, `pack\icons\btn.blp`}
	if !equalStrings(index, wantIndex) {
		t.Errorf("index = %v, want %v", index, wantIndex)
	}

	dest := filepath.Join(env.dir, "export")
	exported, err := env.eng.Export(ctx, &engine.ExportRequest{ArchivePath: mapPath, Dest: dest})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(exported.Extracted) != 3 {
		t.Errorf("Extracted = %v, want 3 files", exported.Extracted)
	}

	got, err := os.ReadFile(filepath.Join(dest, "pack", "icons", "btn.blp"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "icon" {
		t.Errorf("exported content = %q, want %q", got, "icon")
	}
}

func TestSession_ResetDiscardsEdits(t *testing.T) {
	env := setupTestEngine(t, nil)
	ctx := context.Background()

	mapPath := env.createMap(t, "test.w3x", map[string]string{
		`war3mapImported\a.mdx`: "model a",
	}, `war3mapImported\a.mdx`)

	if _, err := env.eng.Remove(ctx, &engine.RemoveRequest{
		ArchivePath: mapPath,
		Paths:       []string{`war3mapImported\a.mdx`},
	}); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	if _, err := env.eng.Open(ctx, &engine.OpenRequest{ArchivePath: mapPath}); !errors.Is(err, engine.ErrUnsavedChanges) {
		t.Fatalf("Open() error = %v, want ErrUnsavedChanges", err)
	}

	reset, err := env.eng.Reset(ctx, &engine.ResetRequest{ArchivePath: mapPath})
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if !reset.Discarded || !reset.Dirty {
		t.Errorf("Reset() discarded=%v dirty=%v, want both true", reset.Discarded, reset.Dirty)
	}

	status, err := env.eng.Status(ctx, &engine.StatusRequest{ArchivePath: mapPath})
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status.HasSession {
		t.Error("expected no session after reset")
	}

	_, index, _ := env.snapshot(t, mapPath)
	if !equalStrings(index, []string{`war3mapImported\a.mdx`}) {
		t.Errorf("index = %v, archive should be untouched", index)
	}
}

func TestSession_FileLayout(t *testing.T) {
	env := setupTestEngine(t, nil)
	ctx := context.Background()

	mapPath := env.createMap(t, "test.w3x", nil)
	opened, err := env.eng.Open(ctx, &engine.OpenRequest{ArchivePath: mapPath})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if opened.SessionID != state.ComputeSessionID(mapPath) {
		t.Errorf("SessionID = %s, want hash of archive path", opened.SessionID)
	}
	sessionFile := filepath.Join(env.dir, "sessions", opened.SessionID+".json")
	if _, err := os.Stat(sessionFile); err != nil {
		t.Errorf("expected session file at %s: %v", sessionFile, err)
	}
}
