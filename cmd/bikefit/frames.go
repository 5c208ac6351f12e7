package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/banshee-data/bikefit/internal/pose"
)

// maxLineBytes bounds a single JSONL record; 33 keypoints fit comfortably.
const maxLineBytes = 1 << 20

// frameRecord is one line of a keypoint capture. Keypoints are normalised;
// null entries are keypoints the detector did not report.
type frameRecord struct {
	T         float64    `json:"t"`
	Keypoints pose.Frame `json:"keypoints"`
}

// readFrames decodes JSONL frame records from r and calls fn for each.
// Blank lines and lines starting with '#' are skipped.
func readFrames(r io.Reader, fn func(frameRecord) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		var rec frameRecord
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if err := fn(rec); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read frames: %w", err)
	}
	return nil
}
