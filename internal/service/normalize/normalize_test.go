package normalize

import (
	"reflect"
	"testing"
)

func TestParseISODuration(t *testing.T) {
	cases := []struct {
		iso  string
		want string
	}{
		{"", ""},
		{"PT15S", "0:15"},
		{"PT3M20S", "3:20"},
		{"PT1H2M3S", "1:02:03"},
		{"PT2H", "2:00:00"},
		{"PT45M", "45:00"},
	}
	for _, c := range cases {
		if got := ParseISODuration(c.iso); got != c.want {
			t.Errorf("ParseISODuration(%q) = %q, want %q", c.iso, got, c.want)
		}
	}
}

func TestDurationSeconds_RoundTrip(t *testing.T) {
	for _, seconds := range []int{0, 15, 59, 60, 185, 3600, 3725, 7322} {
		clock := FormatDuration(seconds)
		got, ok := DurationSeconds(clock)
		if !ok {
			t.Fatalf("DurationSeconds(%q) not ok", clock)
		}
		if got != seconds {
			t.Errorf("round trip of %d via %q = %d", seconds, clock, got)
		}
	}
}

func TestDurationSeconds_Unparsable(t *testing.T) {
	for _, clock := range []string{"", "abc", "1:2:3:4", "12", "1:xx"} {
		if _, ok := DurationSeconds(clock); ok {
			t.Errorf("DurationSeconds(%q) ok, want false", clock)
		}
	}
}

func TestExtractHashtags(t *testing.T) {
	got := ExtractHashtags("먹방 #Food #먹방 check #food_1 out")
	want := []string{"#food", "#먹방", "#food_1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractHashtags = %v, want %v", got, want)
	}
}

func TestExtractHashtags_KeepsDuplicates(t *testing.T) {
	got := ExtractHashtags("#viral something #viral")
	if len(got) != 2 {
		t.Errorf("duplicate hashtags collapsed: %v", got)
	}
}

func TestExtractKeywords(t *testing.T) {
	got := ExtractKeywords("The 게임 Stream and 게임!")
	want := []string{"게임", "stream", "게임"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractKeywords = %v, want %v", got, want)
	}
}

func TestExtractKeywords_FiltersShortAndStopWords(t *testing.T) {
	for _, kw := range ExtractKeywords("a the 이 및 b7 ok") {
		if kw == "the" || kw == "이" || kw == "및" {
			t.Errorf("stop word %q survived", kw)
		}
		if len([]rune(kw)) < 2 {
			t.Errorf("short token %q survived", kw)
		}
	}
}

func TestExtractHangul(t *testing.T) {
	got := ExtractHangul("게임 is fun 과 공략 x 가")
	want := []string{"게임", "공략"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractHangul = %v, want %v", got, want)
	}
}

func TestTruncateText(t *testing.T) {
	if got := TruncateText("안녕하세요 여러분", 8); got != "안녕하세요..." {
		t.Errorf("TruncateText = %q", got)
	}
	if got := TruncateText("short", 10); got != "short" {
		t.Errorf("short text modified: %q", got)
	}
	// Marker counts toward the limit.
	if got := TruncateText("abcdefghij", 8); len([]rune(got)) != 8 {
		t.Errorf("truncated length = %d, want 8", len([]rune(got)))
	}
	// Limits too small for the marker cut hard instead of slicing
	// negative bounds.
	if got := TruncateText("abcdefghij", 2); got != "ab" {
		t.Errorf("TruncateText limit 2 = %q, want ab", got)
	}
	if got := TruncateText("abcdefghij", 3); got != "abc" {
		t.Errorf("TruncateText limit 3 = %q, want abc", got)
	}
	if got := TruncateText("abcdefghij", 0); got != "" {
		t.Errorf("TruncateText limit 0 = %q, want empty", got)
	}
}

func TestSafeInt64(t *testing.T) {
	if got := SafeInt64("12345"); got == nil || *got != 12345 {
		t.Errorf("SafeInt64 string = %v", got)
	}
	if got := SafeInt64(float64(99.7)); got == nil || *got != 99 {
		t.Errorf("SafeInt64 float = %v", got)
	}
	if got := SafeInt64(nil); got != nil {
		t.Errorf("SafeInt64(nil) = %v, want nil", got)
	}
	if got := SafeInt64("not-a-number"); got != nil {
		t.Errorf("SafeInt64 garbage = %v, want nil", got)
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(1.005 * 100 / 100); got != 1.0 && got != 1.01 {
		t.Errorf("Round2 unstable: %v", got)
	}
	if got := Round2(2.374999); got != 2.37 {
		t.Errorf("Round2(2.374999) = %v", got)
	}
	if got := Round2(2.375); got != 2.38 {
		t.Errorf("Round2(2.375) = %v", got)
	}
}
