package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedMetadata is returned for a metadata artifact that is not a
// single "<level>,<epoch_ms>" line.
var ErrMalformedMetadata = errors.New("malformed card metadata")

const (
	separator      = "_"
	questionMarker = "Q"
	answerMarker   = "A"
	metadataSuffix = "D.txt"
)

// Kind tells which of the three card artifacts a name refers to.
type Kind int

const (
	Unknown Kind = iota
	Question
	Answer
	Metadata
)

func (k Kind) String() string {
	switch k {
	case Question:
		return "question"
	case Answer:
		return "answer"
	case Metadata:
		return "metadata"
	default:
		return "unknown"
	}
}

var imageExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
}

// ParseArtifactName splits an artifact name at its last separator into the
// card id and the artifact kind. Names that do not follow the
// "<id>_Q.<ext>", "<id>_A.<ext>", "<id>_D.txt" convention return ok == false.
func ParseArtifactName(name string) (id string, kind Kind, ok bool) {
	sep := strings.LastIndex(name, separator)
	if sep <= 0 {
		return "", Unknown, false
	}
	id, suffix := name[:sep], name[sep+1:]

	if suffix == metadataSuffix {
		return id, Metadata, true
	}

	marker, ext, found := strings.Cut(suffix, ".")
	if !found || !imageExtensions[strings.ToLower(ext)] {
		return "", Unknown, false
	}
	switch marker {
	case questionMarker:
		return id, Question, true
	case answerMarker:
		return id, Answer, true
	}
	return "", Unknown, false
}

// QuestionName returns the name of the question image written for id.
func QuestionName(id string) string { return id + separator + questionMarker + ".png" }

// AnswerName returns the name of the answer image written for id.
func AnswerName(id string) string { return id + separator + answerMarker + ".png" }

// MetadataName returns the name of the metadata artifact of id.
func MetadataName(id string) string { return id + separator + metadataSuffix }

// ParseMetadata reads a metadata artifact and returns the level and the time
// of the last review.
func ParseMetadata(r io.Reader) (int, time.Time, error) {
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return 0, time.Time{}, err
	}

	// A single trailing newline is fine, a second record is not.
	if len(lines) != 1 {
		return 0, time.Time{}, fmt.Errorf("%w: expected one line, got %d", ErrMalformedMetadata, len(lines))
	}
	line := strings.TrimSuffix(lines[0], "\r")

	fields := strings.Split(line, ",")
	if len(fields) != 2 {
		return 0, time.Time{}, fmt.Errorf("%w: expected 2 fields in %q", ErrMalformedMetadata, line)
	}

	level, err := strconv.Atoi(fields[0])
	if err != nil || level < 0 {
		return 0, time.Time{}, fmt.Errorf("%w: bad level %q", ErrMalformedMetadata, fields[0])
	}
	ms, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("%w: bad timestamp %q", ErrMalformedMetadata, fields[1])
	}

	return level, time.UnixMilli(ms), nil
}

// FormatMetadata renders the metadata line written for a card.
func FormatMetadata(level int, reviewed time.Time) string {
	return strconv.Itoa(level) + "," + strconv.FormatInt(reviewed.UnixMilli(), 10)
}
