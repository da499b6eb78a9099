package tasks

import "testing"

func TestMoodKeyword(t *testing.T) {
	tests := []struct {
		name      string
		condition string
		want      string
	}{
		{name: "clear", condition: "Clear", want: "happy pop bright"},
		{name: "clouds", condition: "Clouds", want: "indie chill"},
		{name: "rain", condition: "Rain", want: "lofi rainy chill"},
		{name: "snow", condition: "Snow", want: "cozy acoustic"},
		{name: "thunderstorm", condition: "Thunderstorm", want: "dark edm"},
		{name: "unknown condition falls back", condition: "Drizzle", want: "chill mood"},
		{name: "empty condition falls back", condition: "", want: "chill mood"},
		{name: "lookup is case-insensitive", condition: "RAIN", want: "lofi rainy chill"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MoodKeyword(tt.condition); got != tt.want {
				t.Errorf("MoodKeyword(%q) = %q, want %q", tt.condition, got, tt.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Mode
		wantErr bool
	}{
		{name: "basic", input: "basic", want: ModeBasic},
		{name: "tempo", input: "tempo", want: ModeTempo},
		{name: "custom", input: "custom", want: ModeCustom},
		{name: "empty defaults to basic", input: "", want: ModeBasic},
		{name: "mixed case", input: "Tempo", want: ModeTempo},
		{name: "whitespace trimmed", input: "  custom  ", want: ModeCustom},
		{name: "unknown mode", input: "energetic", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseMode(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMode(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestModeQuery(t *testing.T) {
	tests := []struct {
		name     string
		mode     Mode
		mood     string
		keywords string
		want     string
	}{
		{name: "basic uses mood alone", mode: ModeBasic, mood: "indie chill", want: "indie chill"},
		{name: "tempo appends boost", mode: ModeTempo, mood: "lofi rainy chill", want: "lofi rainy chill upbeat dance"},
		{name: "custom appends keywords", mode: ModeCustom, mood: "lofi rainy chill", keywords: "summer", want: "lofi rainy chill summer"},
		{name: "custom without keywords uses mood alone", mode: ModeCustom, mood: "dark edm", want: "dark edm"},
		{name: "custom trims keyword whitespace", mode: ModeCustom, mood: "cozy acoustic", keywords: "  piano  ", want: "cozy acoustic piano"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mode.query(tt.mood, tt.keywords); got != tt.want {
				t.Errorf("query() = %q, want %q", got, tt.want)
			}
		})
	}
}
