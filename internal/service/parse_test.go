package service

import (
	"reflect"
	"testing"
)

func TestParseDetections_JSONArray(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Detection
	}{
		{
			name: "plain array",
			raw:  `[{"term":"A","explanation":"B"}]`,
			want: []Detection{{Term: "A", Explanation: "B"}},
		},
		{
			name: "array with surrounding prose",
			raw:  "这是检测结果：\n[{\"term\":\"笑死\",\"explanation\":\"表示非常好笑\",\"referenceUrl\":\"https://example.com\"}]\n希望对你有帮助。",
			want: []Detection{{Term: "笑死", Explanation: "表示非常好笑", ReferenceURL: "https://example.com"}},
		},
		{
			name: "entries missing term or explanation are dropped",
			raw:  `[{"term":"A","explanation":"B"},{"term":"","explanation":"C"},{"term":"D","explanation":""}]`,
			want: []Detection{{Term: "A", Explanation: "B"}},
		},
		{
			name: "empty array literal",
			raw:  "没有检测到任何梗 []",
			want: []Detection{},
		},
		{
			name: "multiple entries keep order",
			raw:  `[{"term":"yyds","explanation":"永远的神"},{"term":"摆烂","explanation":"放弃挣扎"}]`,
			want: []Detection{
				{Term: "yyds", Explanation: "永远的神"},
				{Term: "摆烂", Explanation: "放弃挣扎"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDetections(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseDetections() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseDetections_HeuristicFallback(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Detection
	}{
		{
			name: "no array and no trigger lines",
			raw:  "这段文本没有任何可识别的内容。\n只是普通的句子。",
			want: []Detection{},
		},
		{
			name: "single candidate with full-width colon",
			raw:  "梗名称：笑死\n表示非常好笑。\n常用于网络聊天。",
			want: []Detection{{Term: "笑死", Explanation: "表示非常好笑。 常用于网络聊天。"}},
		},
		{
			name: "multiple candidates with mixed triggers",
			raw:  "meme: first one\nfirst explanation\nterm: second one\nsecond explanation",
			want: []Detection{
				{Term: "first one", Explanation: "first explanation"},
				{Term: "second one", Explanation: "second explanation"},
			},
		},
		{
			name: "trigger line without colon keeps whole line as term",
			raw:  "这是一个梗\n它的解释在这里",
			want: []Detection{{Term: "这是一个梗", Explanation: "它的解释在这里"}},
		},
		{
			name: "candidate without explanation is dropped",
			raw:  "梗：孤零零的词条",
			want: []Detection{},
		},
		{
			name: "blank lines between explanation lines are skipped",
			raw:  "梗：破防\n情绪崩溃的意思。\n\n多见于游戏圈。",
			want: []Detection{{Term: "破防", Explanation: "情绪崩溃的意思。 多见于游戏圈。"}},
		},
		{
			name: "lines before the first trigger are ignored",
			raw:  "前言内容不相关\nterm: late entry\nits explanation",
			want: []Detection{{Term: "late entry", Explanation: "its explanation"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDetections(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseDetections() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseDetections_BrokenJSONFallsBack(t *testing.T) {
	// The bracketed substring is not valid JSON, so parsing must fall
	// through to the line-based heuristic.
	raw := "[not json at all\nterm: rescued\nby the fallback parser]"

	got := ParseDetections(raw)
	want := []Detection{{Term: "rescued", Explanation: "by the fallback parser]"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseDetections() = %+v, want %+v", got, want)
	}
}

func TestParseDetections_Empty(t *testing.T) {
	if got := ParseDetections(""); len(got) != 0 {
		t.Errorf("expected empty result for empty input, got %+v", got)
	}
}
