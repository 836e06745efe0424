package model

import "errors"

// ErrUnknownLevel 等级值不在阶梯内
var ErrUnknownLevel = errors.New("unknown level")

// Level 用户英语水平等级
type Level string

const (
	// LevelDefault 尚未选择等级（分级测试前的初始值）
	LevelDefault           Level = ""
	LevelBeginner          Level = "beginner"
	LevelElementary        Level = "elementary"
	LevelPreIntermediate   Level = "pre_intermediate"
	LevelIntermediate      Level = "intermediate"
	LevelUpperIntermediate Level = "upper_intermediate"
	LevelAdvanced          Level = "advanced"
	LevelProficiency       Level = "proficiency"
)

// AllLevels 等级阶梯，按从低到高的声明顺序
var AllLevels = []Level{
	LevelBeginner,
	LevelElementary,
	LevelPreIntermediate,
	LevelIntermediate,
	LevelUpperIntermediate,
	LevelAdvanced,
	LevelProficiency,
}

// Ordinal 返回等级在阶梯中的序号，未知等级返回 -1
func (l Level) Ordinal() int {
	for i, level := range AllLevels {
		if level == l {
			return i
		}
	}
	return -1
}

func (l Level) Valid() bool {
	return l == LevelDefault || l.Ordinal() >= 0
}

// LevelsUpTo 返回从最低级到给定等级（含）的阶梯前缀。
// 哨兵值 LevelDefault 返回空序列；未知等级返回 ErrUnknownLevel。
func LevelsUpTo(l Level) ([]Level, error) {
	if l == LevelDefault {
		return []Level{}, nil
	}
	ordinal := l.Ordinal()
	if ordinal < 0 {
		return nil, ErrUnknownLevel
	}
	result := make([]Level, ordinal+1)
	copy(result, AllLevels[:ordinal+1])
	return result, nil
}

// LevelFromScore 根据分级测试得分映射等级，分段上界含等号
func LevelFromScore(score int) Level {
	switch {
	case score <= 5:
		return LevelBeginner
	case score <= 11:
		return LevelElementary
	case score <= 16:
		return LevelPreIntermediate
	case score <= 20:
		return LevelIntermediate
	case score <= 25:
		return LevelUpperIntermediate
	case score <= 27:
		return LevelAdvanced
	default:
		return LevelProficiency
	}
}
