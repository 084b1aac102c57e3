package gethash

import "testing"

func TestIsVideoPath(t *testing.T) {
	for _, tc := range []struct {
		path     string
		expected bool
	}{
		{"movie.mp4", true},
		{"movie.MP4", true},
		{"movie.MkV", true},
		{"notes.txt", false},
		{"no_extension", false},
		{"archive.tar.mp4", true},
		{"movie.mp4.bak", false},
		{"/deep/path/to/clip.webm", true},
		{"recording.m2ts", true},
		{"show.ts", true},
		{"trailing.", false},
		{"/videos.mp4/readme", false},
		{".mp4", true},
	} {
		if got := isVideoPath(tc.path); got != tc.expected {
			t.Errorf("isVideoPath(%q) = %v, expected %v", tc.path, got, tc.expected)
		}
	}
}
