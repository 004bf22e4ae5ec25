package game

import "testing"

func TestLevelsMonotonic(t *testing.T) {
	for i := 1; i < len(Levels); i++ {
		prev, cur := Levels[i-1], Levels[i]
		if cur.Level != prev.Level+1 {
			t.Fatalf("levels not consecutive at %d", i)
		}
		if cur.Precision >= prev.Precision {
			t.Fatalf("precision must strictly decrease: %v then %v", prev.Precision, cur.Precision)
		}
		if cur.StressGain <= prev.StressGain {
			t.Fatalf("stress gain must strictly increase: %v then %v", prev.StressGain, cur.StressGain)
		}
		if cur.RequiredCoverage < prev.RequiredCoverage {
			t.Fatalf("required coverage must not decrease: %v then %v", prev.RequiredCoverage, cur.RequiredCoverage)
		}
	}
	if Levels[0].Precision != 22 || Levels[MaxLevel-1].Precision != 6 {
		t.Fatalf("unexpected precision range")
	}
}

func TestLevelConfigBounds(t *testing.T) {
	if _, ok := LevelConfig(0); ok {
		t.Fatalf("level 0 should not exist")
	}
	if _, ok := LevelConfig(MaxLevel + 1); ok {
		t.Fatalf("level %d should not exist", MaxLevel+1)
	}
	cfg, ok := LevelConfig(5)
	if !ok || cfg.Level != 5 || cfg.RequiredCoverage != 0.75 {
		t.Fatalf("unexpected level 5: %+v", cfg)
	}
}
