package parser

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseArtifactName(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		expectedOK bool
		expectedID string
		expected   Kind
	}{
		{name: "Question png", input: "1700000000000_Q.png", expectedOK: true, expectedID: "1700000000000", expected: Question},
		{name: "Answer jpeg", input: "42_A.JPEG", expectedOK: true, expectedID: "42", expected: Answer},
		{name: "Metadata", input: "42_D.txt", expectedOK: true, expectedID: "42", expected: Metadata},
		{name: "Separator inside id", input: "deck_1_2_Q.png", expectedOK: true, expectedID: "deck_1_2", expected: Question},
		{name: "No separator", input: "README.md", expectedOK: false},
		{name: "Empty id", input: "_Q.png", expectedOK: false},
		{name: "Unknown marker", input: "42_X.png", expectedOK: false},
		{name: "Unknown extension", input: "42_Q.gif", expectedOK: false},
		{name: "Metadata wrong extension", input: "42_D.csv", expectedOK: false},
		{name: "Temp file", input: ".42_D.txt.tmp", expectedOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, kind, ok := ParseArtifactName(tc.input)
			if ok != tc.expectedOK {
				t.Fatalf("Expected ok=%v for %q, got %v", tc.expectedOK, tc.input, ok)
			}
			if !ok {
				return
			}
			if id != tc.expectedID {
				t.Errorf("Expected id '%s', got '%s'", tc.expectedID, id)
			}
			if kind != tc.expected {
				t.Errorf("Expected kind %v, got %v", tc.expected, kind)
			}
		})
	}
}

func TestArtifactNamesRoundTrip(t *testing.T) {
	for _, name := range []string{QuestionName("7"), AnswerName("7"), MetadataName("7")} {
		if id, _, ok := ParseArtifactName(name); !ok || id != "7" {
			t.Errorf("Expected %q to parse back to id 7", name)
		}
	}
}

func TestParseMetadata(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expectedLevel int
		expectedMs    int64
		wantErr       bool
	}{
		{name: "Simple", input: "2,1000", expectedLevel: 2, expectedMs: 1000},
		{name: "Trailing newline", input: "0,1700000000000\n", expectedLevel: 0, expectedMs: 1700000000000},
		{name: "CRLF", input: "5,12\r\n", expectedLevel: 5, expectedMs: 12},
		{name: "Empty", input: "", wantErr: true},
		{name: "One field", input: "3", wantErr: true},
		{name: "Three fields", input: "3,1000,9", wantErr: true},
		{name: "Bad level", input: "x,1000", wantErr: true},
		{name: "Negative level", input: "-1,1000", wantErr: true},
		{name: "Bad timestamp", input: "3,soon", wantErr: true},
		{name: "Two lines", input: "3,1000\n4,2000", wantErr: true},
		{name: "Spaces", input: "3, 1000", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			level, reviewed, err := ParseMetadata(strings.NewReader(tc.input))
			if tc.wantErr {
				if !errors.Is(err, ErrMalformedMetadata) {
					t.Fatalf("Expected ErrMalformedMetadata, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMetadata() returned an unexpected error: %v", err)
			}
			if level != tc.expectedLevel {
				t.Errorf("Expected level %d, got %d", tc.expectedLevel, level)
			}
			if reviewed.UnixMilli() != tc.expectedMs {
				t.Errorf("Expected timestamp %d, got %d", tc.expectedMs, reviewed.UnixMilli())
			}
		})
	}
}

func TestFormatMetadata(t *testing.T) {
	line := FormatMetadata(4, time.UnixMilli(1234))
	if line != "4,1234" {
		t.Fatalf("Expected '4,1234', got '%s'", line)
	}
	level, reviewed, err := ParseMetadata(strings.NewReader(line))
	if err != nil || level != 4 || reviewed.UnixMilli() != 1234 {
		t.Errorf("Round trip failed: %d %v %v", level, reviewed, err)
	}
}
