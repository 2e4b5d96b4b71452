package deck

import "testing"

func TestDateSortKey(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{"valid date", "15/03/24", "240315"},
		{"padded day and month", "01/01/25", "250101"},
		{"empty passes through", "", ""},
		{"wrong separator passes through", "15-03-24", "15-03-24"},
		{"two parts pass through", "15/03", "15/03"},
		{"non-numeric parts still rearranged", "aa/bb/cc", "ccbbaa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateSortKey(tt.date); got != tt.want {
				t.Errorf("DateSortKey(%q) = %q, want %q", tt.date, got, tt.want)
			}
		})
	}
}

func TestDateKey(t *testing.T) {
	tests := []struct {
		name   string
		date   string
		want   string
		wantOK bool
	}{
		{"valid date", "15/03/24", "240315", true},
		{"empty", "", "", false},
		{"free text", "unknown", "", false},
		{"non-numeric parts", "aa/bb/cc", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DateKey(tt.date)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("DateKey(%q) = (%q, %v), want (%q, %v)", tt.date, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDateSortKeyOrders(t *testing.T) {
	// December 2024 sorts before January 2025 despite the day/month
	// digits being larger.
	before := DateSortKey("31/12/24")
	after := DateSortKey("01/01/25")
	if before >= after {
		t.Errorf("expected %q < %q", before, after)
	}
}

func TestDateInRange(t *testing.T) {
	tests := []struct {
		name string
		date string
		from string
		to   string
		want bool
	}{
		{"inside range", "15/03/24", "01/01/24", "31/12/24", true},
		{"on from boundary", "01/01/24", "01/01/24", "", true},
		{"on to boundary", "31/12/24", "", "31/12/24", true},
		{"before range", "31/12/23", "01/01/24", "", false},
		{"after range", "01/01/25", "", "31/12/24", false},
		{"no bounds", "15/03/24", "", "", true},
		// Malformed dates fail open so a bad deck or bad filter
		// never blanks out the report.
		{"malformed deck date", "not-a-date", "01/01/24", "31/12/24", true},
		{"malformed from bound", "15/03/24", "garbage", "", true},
		{"malformed to bound", "15/03/24", "", "garbage", true},
		{"empty deck date", "", "01/01/24", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateInRange(tt.date, tt.from, tt.to); got != tt.want {
				t.Errorf("DateInRange(%q, %q, %q) = %v, want %v", tt.date, tt.from, tt.to, got, tt.want)
			}
		})
	}
}
