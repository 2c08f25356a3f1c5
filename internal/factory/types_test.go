package factory

import (
	"testing"
	"time"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{
			name: "whole seconds omit fraction",
			t:    time.Date(2024, 3, 1, 9, 5, 7, 0, time.Local),
			want: "2024-03-01T09:05:07",
		},
		{
			name: "microseconds are zero padded",
			t:    time.Date(2024, 3, 1, 9, 5, 7, 42*int(time.Microsecond), time.Local),
			want: "2024-03-01T09:05:07.000042",
		},
		{
			name: "sub-microsecond precision is dropped",
			t:    time.Date(2024, 12, 31, 23, 59, 59, 999, time.Local),
			want: "2024-12-31T23:59:59",
		},
		{
			name: "full microseconds",
			t:    time.Date(2024, 12, 31, 23, 59, 59, 123456789, time.Local),
			want: "2024-12-31T23:59:59.123456",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTimestamp(tt.t); got != tt.want {
				t.Errorf("FormatTimestamp() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseTimestamp_RoundTrip(t *testing.T) {
	for _, ts := range []time.Time{
		time.Date(2024, 3, 1, 9, 5, 7, 0, time.Local),
		time.Date(2024, 3, 1, 9, 5, 7, 123456000, time.Local),
	} {
		got, err := ParseTimestamp(FormatTimestamp(ts))
		if err != nil {
			t.Fatalf("ParseTimestamp() error = %v", err)
		}
		if !got.Equal(ts) {
			t.Errorf("ParseTimestamp() = %v, want %v", got, ts)
		}
	}
}

func TestBackupPath(t *testing.T) {
	ts := time.Date(2024, 3, 1, 9, 5, 7, 0, time.Local)
	want := "/home/configs/main.yaml.bkdup_on_2024-03-01T09:05:07"
	if got := BackupPath("/home/configs/main.yaml", ts); got != want {
		t.Errorf("BackupPath() = %q, want %q", got, want)
	}
}

func TestParseBackupName(t *testing.T) {
	tests := []struct {
		file     string
		wantName string
		wantOK   bool
	}{
		{file: "main.yaml.bkdup_on_2024-03-01T09:05:07", wantName: "main.yaml", wantOK: true},
		{file: "main.yaml.bkdup_on_2024-03-01T09:05:07.000001", wantName: "main.yaml", wantOK: true},
		{file: "main.yaml", wantOK: false},
		{file: ".bkdup_on_2024-03-01T09:05:07", wantOK: false},
		{file: "main.yaml.bkdup_on_yesterday", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			b, ok := ParseBackupName(tt.file)
			if ok != tt.wantOK {
				t.Fatalf("ParseBackupName() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && b.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", b.Name, tt.wantName)
			}
		})
	}
}
