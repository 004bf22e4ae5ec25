package game

import "github.com/verte-zerg/dalgona/internal/model"

// MaxLevel is the final level; succeeding at it is a victory.
const MaxLevel = 10

// Levels is the difficulty curve, ordered by level ascending.
var Levels = [MaxLevel]model.LevelConfig{
	{Level: 1, Shape: model.ShapeCircle, StressGain: 2.0, Precision: 22, RequiredCoverage: 0.60},
	{Level: 2, Shape: model.ShapeTriangle, StressGain: 2.5, Precision: 20, RequiredCoverage: 0.65},
	{Level: 3, Shape: model.ShapeSquare, StressGain: 3.0, Precision: 18, RequiredCoverage: 0.70},
	{Level: 4, Shape: model.ShapeStar, StressGain: 3.5, Precision: 16, RequiredCoverage: 0.75},
	{Level: 5, Shape: model.ShapeHeart, StressGain: 4.0, Precision: 15, RequiredCoverage: 0.75},
	{Level: 6, Shape: model.ShapeCloud, StressGain: 4.5, Precision: 14, RequiredCoverage: 0.80},
	{Level: 7, Shape: model.ShapeBird, StressGain: 5.0, Precision: 12, RequiredCoverage: 0.80},
	{Level: 8, Shape: model.ShapeButterfly, StressGain: 5.5, Precision: 10, RequiredCoverage: 0.85},
	{Level: 9, Shape: model.ShapeGhost, StressGain: 6.0, Precision: 8, RequiredCoverage: 0.90},
	{Level: 10, Shape: model.ShapeUmbrella, StressGain: 7.0, Precision: 6, RequiredCoverage: 0.95},
}

// LevelConfig returns the configuration for a 1-based level.
func LevelConfig(level int) (model.LevelConfig, bool) {
	if level < 1 || level > MaxLevel {
		return model.LevelConfig{}, false
	}
	return Levels[level-1], true
}
