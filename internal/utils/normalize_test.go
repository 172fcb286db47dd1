package utils

import (
	"reflect"
	"testing"
)

func TestTitleVariants(t *testing.T) {
	tests := []struct {
		title string
		want  []string
	}{
		{"Drishyam", []string{"drishyam"}},
		{"Drishyam 2", []string{"drishyam2", "drishyam"}},
		{"The Dark Knight", []string{"thedarkknight", "darkknight"}},
		{"Jawan (2023)", []string{"jawan2023", "jawan"}},
		{"", nil},
		{"   ", nil},
	}

	for _, tt := range tests {
		got := TitleVariants(tt.title)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("TitleVariants(%q) = %v, want %v", tt.title, got, tt.want)
		}
	}
}

// 归一化应当是幂等的：变体再归一化不会产生新变体
func TestTitleVariantsIdempotent(t *testing.T) {
	for _, title := range []string{"Drishyam 2", "The Godfather Part II", "Jawan (2023)"} {
		for _, v := range TitleVariants(title) {
			again := TitleVariants(v)
			if len(again) == 0 || again[0] != v {
				t.Errorf("TitleVariants(%q) 首变体 = %v, 期望 %q 自身", v, again, v)
			}
		}
	}
}

func TestTitlesMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		// 续集数字差异：去数字变体命中
		{"Drishyam 2", "Drishyam", true},
		// 冠词差异
		{"The Godfather", "Godfather", true},
		// 年份后缀
		{"Jawan (2023)", "Jawan", true},
		// 包含（>=5 才生效）
		{"Mission Impossible Fallout", "Mission Impossible", true},
		// 完全不同的片子
		{"Oppenheimer", "Barbie", false},
		{"Inception", "Interstellar", false},
		// 短变体不做包含匹配，避免 "Up" 误伤一堆片
		{"Up", "Uprising", false},
	}

	for _, tt := range tests {
		if got := TitlesMatch(tt.a, tt.b); got != tt.want {
			t.Errorf("TitlesMatch(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

// 匹配判定必须对称
func TestTitlesMatchCommutative(t *testing.T) {
	pairs := [][2]string{
		{"Drishyam 2", "Drishyam"},
		{"The Godfather", "Godfather"},
		{"Oppenheimer", "Barbie"},
		{"Mission Impossible Fallout", "Mission Impossible"},
	}
	for _, p := range pairs {
		if TitlesMatch(p[0], p[1]) != TitlesMatch(p[1], p[0]) {
			t.Errorf("TitlesMatch(%q, %q) 与反向结果不一致", p[0], p[1])
		}
	}
}

func TestNormalizeTitleKey(t *testing.T) {
	if got := NormalizeTitleKey("  The Dark  Knight! "); got != "thedarkknight" {
		t.Errorf("NormalizeTitleKey = %q, want %q", got, "thedarkknight")
	}
}
