package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelsUpTo(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		want    []Level
		wantErr error
	}{
		{
			name:  "最低等级只包含自身",
			level: LevelBeginner,
			want:  []Level{LevelBeginner},
		},
		{
			name:  "中间等级返回阶梯前缀",
			level: LevelIntermediate,
			want:  []Level{LevelBeginner, LevelElementary, LevelPreIntermediate, LevelIntermediate},
		},
		{
			name:  "最高等级返回完整阶梯",
			level: LevelProficiency,
			want:  AllLevels,
		},
		{
			name:  "哨兵值返回空序列",
			level: LevelDefault,
			want:  []Level{},
		},
		{
			name:    "未知等级报错",
			level:   Level("grandmaster"),
			wantErr: ErrUnknownLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LevelsUpTo(tt.level)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevelFromScore(t *testing.T) {
	tests := []struct {
		score int
		want  Level
	}{
		{0, LevelBeginner},
		{5, LevelBeginner},
		{6, LevelElementary},
		{11, LevelElementary},
		{12, LevelPreIntermediate},
		{16, LevelPreIntermediate},
		{17, LevelIntermediate},
		{20, LevelIntermediate},
		{21, LevelUpperIntermediate},
		{25, LevelUpperIntermediate},
		{26, LevelAdvanced},
		{27, LevelAdvanced},
		{28, LevelProficiency},
		{100, LevelProficiency},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFromScore(tt.score), "score %d", tt.score)
	}
}

func TestLevelOrdinal(t *testing.T) {
	for i, level := range AllLevels {
		assert.Equal(t, i, level.Ordinal())
	}
	assert.Equal(t, -1, LevelDefault.Ordinal())
	assert.Equal(t, -1, Level("nope").Ordinal())

	assert.True(t, LevelDefault.Valid())
	assert.True(t, LevelAdvanced.Valid())
	assert.False(t, Level("nope").Valid())
}

func TestProgressTransitions(t *testing.T) {
	assert.True(t, ProgressInProgress.Blocking())
	assert.True(t, ProgressTakeTest.Blocking())
	assert.False(t, ProgressCompleted.Blocking())

	assert.True(t, ProgressInProgress.CanAdvanceTo(ProgressTakeTest))
	assert.True(t, ProgressTakeTest.CanAdvanceTo(ProgressCompleted))

	// 不允许跳级和回退
	assert.False(t, ProgressInProgress.CanAdvanceTo(ProgressCompleted))
	assert.False(t, ProgressTakeTest.CanAdvanceTo(ProgressInProgress))
	assert.False(t, ProgressCompleted.CanAdvanceTo(ProgressInProgress))
}
