package searchx

import "testing"

func TestFold(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Công trình", "cong trinh"},
		{"Đường Nguyễn Huệ", "duong nguyen hue"},
		{"ĐỘI THI CÔNG", "doi thi cong"},
		{"abc123", "abc123"},
		{"", ""},
	}

	for _, c := range cases {
		if got := Fold(c.in); got != c.want {
			t.Errorf("Fold(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMatch(t *testing.T) {
	cases := []struct {
		haystack, needle string
		want             bool
	}{
		{"Công trình cầu Rồng", "cong trinh", true},
		{"Công trình cầu Rồng", "CẦU RỒNG", true},
		{"Công trình cầu Rồng", "cau rong", true},
		{"Công trình cầu Rồng", "ham chui", false},
		{"Đội thi công số 1", "doi thi cong", true},
		{"anything", "", true},
	}

	for _, c := range cases {
		if got := Match(c.haystack, c.needle); got != c.want {
			t.Errorf("Match(%q, %q) = %v, want %v", c.haystack, c.needle, got, c.want)
		}
	}
}
