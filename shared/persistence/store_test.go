package persistence

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"Solstice/shared/blocks"
	"Solstice/shared/config"
	"Solstice/shared/palette"
	"Solstice/shared/worldgen"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "saves", "teste.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleOutput() *worldgen.Output {
	out := &worldgen.Output{
		Materials: []palette.FlatMaterial{
			palette.DefaultFlatMaterial(),
			palette.DefaultFlatMaterial().WithRoughness(0.5),
		},
	}
	out.Stats.Seed = 42
	out.Stats.GridDigest = "d1"
	out.Stats.Blocks[blocks.Well] = 26
	out.Stats.Vertices = 100
	out.Stats.Elapsed = 1500 * time.Millisecond
	return out
}

func TestSaveAndLoadRun(t *testing.T) {
	s := openTemp(t)
	cfg := config.DefaultConfig().Generator

	run, err := s.SaveRun(&cfg, sampleOutput(), []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, err := s.Run(run.ID)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got.Seed != 42 || got.Well != 26 || got.Vertices != 100 || got.ElapsedMS != 1500 || got.SlabAxis != "x" {
		t.Errorf("geração = %+v", got)
	}

	mats, err := s.Materials(run.ID)
	if err != nil || len(mats) != 2 || mats[1].Roughness != 0.5 {
		t.Errorf("Materials = %+v, %v", mats, err)
	}

	data, err := s.Artifact(run.ID)
	if err != nil || len(data) != 3 {
		t.Errorf("Artifact = %v, %v", data, err)
	}

	if _, err := s.SaveRun(&cfg, sampleOutput(), nil); err != nil {
		t.Fatalf("SaveRun sem artefato: %v", err)
	}
	runs, err := s.RunsByDigest("d1")
	if err != nil || len(runs) != 2 || runs[0].ID <= runs[1].ID {
		t.Errorf("RunsByDigest = %+v, %v", runs, err)
	}
}

func TestNotFound(t *testing.T) {
	s := openTemp(t)
	if _, err := s.Run(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Run(99) err = %v, want ErrNotFound", err)
	}
	if _, err := s.Artifact(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Artifact(99) err = %v, want ErrNotFound", err)
	}
}
