package recommend

import (
	"testing"
)

func TestIntentParser_Parse(t *testing.T) {
	parser := NewIntentParser(5, 20)

	tests := []struct {
		name      string
		raw       string
		wantTopic string
		wantCount int
		wantMore  bool
	}{
		{
			name:      "plain topic",
			raw:       "faith",
			wantTopic: "faith",
			wantCount: 5,
		},
		{
			name:      "command prefix stripped",
			raw:       "recommend me sermons on healing",
			wantTopic: "healing",
			wantCount: 5,
		},
		{
			name:      "explicit count",
			raw:       "3 sermons about forgiveness",
			wantTopic: "forgiveness",
			wantCount: 3,
		},
		{
			name:      "count after prefix",
			raw:       "give me 7 messages on hope",
			wantTopic: "hope",
			wantCount: 7,
		},
		{
			name:      "count above max clamps down",
			raw:       "100 sermons on prayer",
			wantTopic: "prayer",
			wantCount: 20,
		},
		{
			name:      "count below min clamps up",
			raw:       "0 sermons on grace",
			wantTopic: "grace",
			wantCount: 1,
		},
		{
			name:     "bare more keyword",
			raw:      "more",
			wantMore: true,
		},
		{
			name:     "more sermons keyword",
			raw:      "more sermons",
			wantMore: true,
		},
		{
			name:     "show more keyword with case",
			raw:      "Show More",
			wantMore: true,
		},
		{
			name:      "empty input yields empty topic",
			raw:       "",
			wantTopic: "",
			wantCount: 5,
		},
		{
			name:      "only fillers yields empty topic",
			raw:       "recommend me some sermons please",
			wantTopic: "",
			wantCount: 5,
		},
		{
			name:      "multi word topic survives",
			raw:       "i need something about walking in faith",
			wantTopic: "walking in faith",
			wantCount: 5,
		},
		{
			name:      "punctuation trimmed",
			raw:       "sermons on healing?",
			wantTopic: "healing",
			wantCount: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.Parse(tt.raw)

			if got.More != tt.wantMore {
				t.Errorf("More = %v, want %v", got.More, tt.wantMore)
			}
			if tt.wantMore {
				return
			}
			if got.Topic != tt.wantTopic {
				t.Errorf("Topic = %q, want %q", got.Topic, tt.wantTopic)
			}
			if got.RequestedCount != tt.wantCount {
				t.Errorf("RequestedCount = %d, want %d", got.RequestedCount, tt.wantCount)
			}
			if got.Raw != tt.raw {
				t.Errorf("Raw = %q, want %q", got.Raw, tt.raw)
			}
		})
	}
}

func TestIntentParser_CountNeverBelowOne(t *testing.T) {
	parser := NewIntentParser(5, 20)

	for _, raw := range []string{"-3 sermons on joy", "0 sermons on joy", "1 sermon on joy"} {
		intent := parser.Parse(raw)
		if intent.RequestedCount < 1 {
			t.Errorf("Parse(%q).RequestedCount = %d, want >= 1", raw, intent.RequestedCount)
		}
	}
}

func TestNormalizeTopic(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Healing  ", "healing"},
		{"FAITH", "faith"},
		{"walking in faith", "walking in faith"},
	}

	for _, tt := range tests {
		if got := NormalizeTopic(tt.in); got != tt.want {
			t.Errorf("NormalizeTopic(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
