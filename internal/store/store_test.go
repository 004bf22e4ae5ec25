package store

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/dalgona/internal/model"
	"github.com/verte-zerg/dalgona/internal/ranking"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "dalgona.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestLoadEmpty(t *testing.T) {
	st := openTestStore(t)
	board, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(board) != 0 {
		t.Fatalf("expected empty board, got %d records", len(board))
	}
}

func TestSaveLoadRoundTripKeepsRankOrder(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	var board ranking.Board
	for i := 0; i < 11; i++ {
		board = append(board, model.RankingRecord{
			Name:      fmt.Sprintf("p%02d", i),
			Level:     i%4 + 1,
			TotalTime: 40 - i,
			Date:      "2024-01-01",
		})
	}
	if err := st.Save(ctx, board); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != ranking.MaxEntries {
		t.Fatalf("expected %d records, got %d", ranking.MaxEntries, len(loaded))
	}
	if loaded[0].Level != 4 || loaded[0].Name != "p07" {
		t.Fatalf("unexpected leader: %+v", loaded[0])
	}
	if len(board) != 11 {
		t.Fatalf("save must not modify the caller's board")
	}
}

func TestSaveReplacesPreviousBoard(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if err := st.Save(ctx, ranking.Board{{Name: "a", Level: 1}, {Name: "b", Level: 2}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := st.Save(ctx, ranking.Board{{Name: "c", Level: 3, TotalTime: 9, Date: "2024-02-02"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := model.RankingRecord{Name: "c", Level: 3, TotalTime: 9, Date: "2024-02-02"}
	if len(loaded) != 1 || loaded[0] != want {
		t.Fatalf("unexpected board: %+v", loaded)
	}
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dalgona.db")
	if err := os.WriteFile(path, bytes.Repeat([]byte("not a sqlite database "), 200), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if st, err := Open(path); err == nil {
		_ = st.Close()
		t.Fatalf("expected error opening corrupt database")
	}
}
