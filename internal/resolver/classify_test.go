package resolver

import "testing"

func TestIsNativeID(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{"67ab3f2c9d1e4a5b8c7d6e5f", true},
		{"aaaaaaaaaaaaaaaaaaaaaaaa", true},
		{"123456789012345678901234", false}, // digits only, could be sequential
		{"67AB3F2C9D1E4A5B8C7D6E5F", false}, // uppercase
		{"67ab3f2c9d1e4a5b8c7d6e5", false},  // 23 chars
		{"67ab3f2c9d1e4a5b8c7d6e5f0", false},
		{"67ab3f2c-d1e4a5b8c7d6e5f", false},
		{"Sprint", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsNativeID(c.raw); got != c.want {
			t.Errorf("IsNativeID(%q) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestParseSequential(t *testing.T) {
	cases := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"#123", 123, true},
		{"123", 123, true},
		{"#0", 0, true},
		{"#", 0, false},
		{"", 0, false},
		{"#12a", 0, false},
		{"12a", 0, false},
		{"+5", 0, false},
		{"-5", 0, false},
		{"##5", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseSequential(c.raw)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseSequential(%q) = (%d, %v), want (%d, %v)", c.raw, got, ok, c.want, c.ok)
		}
	}
}

func TestClassify(t *testing.T) {
	id := "67ab3f2c9d1e4a5b8c7d6e5f"

	t.Run("id shape wins for every kind", func(t *testing.T) {
		for _, kind := range []Kind{KindOrganization, KindBoard, KindColumn, KindCard, KindTag, KindUser} {
			got := Classify(kind, id)
			if len(got) != 1 || got[0] != StrategyID {
				t.Errorf("Classify(%s, id) = %v, want [id]", kind, got)
			}
		}
	})

	t.Run("sequential only for cards", func(t *testing.T) {
		got := Classify(KindCard, "#42")
		if len(got) != 1 || got[0] != StrategySequential {
			t.Errorf("Classify(card, #42) = %v, want [sequential]", got)
		}
		got = Classify(KindCard, "42")
		if len(got) != 1 || got[0] != StrategySequential {
			t.Errorf("Classify(card, 42) = %v, want [sequential]", got)
		}
		got = Classify(KindBoard, "42")
		if len(got) != 1 || got[0] != StrategyName {
			t.Errorf("Classify(board, 42) = %v, want [name]", got)
		}
	})

	t.Run("email before name for users", func(t *testing.T) {
		got := Classify(KindUser, "a@example.com")
		if len(got) != 2 || got[0] != StrategyEmail || got[1] != StrategyName {
			t.Errorf("Classify(user, email) = %v, want [email name]", got)
		}
	})

	t.Run("at sign only matters for users", func(t *testing.T) {
		got := Classify(KindBoard, "team@launch")
		if len(got) != 1 || got[0] != StrategyName {
			t.Errorf("Classify(board, team@launch) = %v, want [name]", got)
		}
	})

	t.Run("plain text is a name", func(t *testing.T) {
		got := Classify(KindBoard, "Sprint")
		if len(got) != 1 || got[0] != StrategyName {
			t.Errorf("Classify(board, Sprint) = %v, want [name]", got)
		}
	})
}
