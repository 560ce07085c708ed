package dates

import (
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name    string
		date    Date
		want    string
		wantErr bool
	}{
		{name: "full date", date: Date{Year: 1990, Month: 7, Day: 4}, want: "1990-07-04"},
		{name: "single digit month and day are padded", date: Date{Year: 1992, Month: 5, Day: 9}, want: "1992-05-09"},
		{name: "missing year gets anchor year", date: Date{Month: 3, Day: 1}, want: "1972-03-01"},
		{name: "leap day without year", date: Date{Month: 2, Day: 29}, want: "1972-02-29"},
		{name: "leap day with leap year", date: Date{Year: 2000, Month: 2, Day: 29}, want: "2000-02-29"},
		{name: "december 31", date: Date{Year: 1985, Month: 12, Day: 31}, want: "1985-12-31"},
		{name: "leap day with non-leap year", date: Date{Year: 1990, Month: 2, Day: 29}, wantErr: true},
		{name: "month zero", date: Date{Year: 1990, Day: 4}, wantErr: true},
		{name: "month thirteen", date: Date{Year: 1990, Month: 13, Day: 4}, wantErr: true},
		{name: "day zero", date: Date{Year: 1990, Month: 7}, wantErr: true},
		{name: "day thirty-two", date: Date{Year: 1990, Month: 7, Day: 32}, wantErr: true},
		{name: "april thirty-first", date: Date{Year: 1990, Month: 4, Day: 31}, wantErr: true},
	}

	formatter := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatter.Format(tt.date)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Format(%+v) expected error, got %q", tt.date, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Format(%+v) unexpected error: %v", tt.date, err)
			}
			if got != tt.want {
				t.Errorf("Format(%+v) = %q, want %q", tt.date, got, tt.want)
			}
		})
	}
}

func TestHasYear(t *testing.T) {
	if (Date{Month: 3, Day: 1}).HasYear() {
		t.Error("expected HasYear to be false when year is zero")
	}
	if !(Date{Year: 1990, Month: 3, Day: 1}).HasYear() {
		t.Error("expected HasYear to be true when year is set")
	}
}
