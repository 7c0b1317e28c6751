package resolver

import (
	"testing"

	"playlist-viewer/internal/archive"
)

const detailURL = "https://archive.org/details/myid"

func size(n int64) *int64 { return &n }

func TestParseGrouping(t *testing.T) {
	tests := []struct {
		in      string
		want    Grouping
		wantErr bool
	}{
		{"", GroupingFlat, false},
		{"flat", GroupingFlat, false},
		{"Grouped", GroupingGrouped, false},
		{" grouped ", GroupingGrouped, false},
		{"nested", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGrouping(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseGrouping(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseGrouping(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFlat(t *testing.T) {
	files := []archive.File{
		{Name: "a.mp4"},
		{Name: "a.srt"},
		{Name: "b.webm"},
		{Name: "Video.MP4"},
		{Name: "__ia_thumb.jpg"},
	}

	tracks := Flat(files, detailURL)

	want := []Track{
		{Title: "a.mp4", FileURL: "https://archive.org/download/myid/a.mp4"},
		{Title: "b.webm", FileURL: "https://archive.org/download/myid/b.webm"},
		{Title: "Video.MP4", FileURL: "https://archive.org/download/myid/Video.MP4"},
	}

	if len(tracks) != len(want) {
		t.Fatalf("got %d tracks, want %d: %+v", len(tracks), len(want), tracks)
	}
	for i := range want {
		if tracks[i].Title != want[i].Title || tracks[i].FileURL != want[i].FileURL {
			t.Errorf("track %d = %+v, want %+v", i, tracks[i], want[i])
		}
		if len(tracks[i].Formats) != 0 {
			t.Errorf("flat track %d should have no formats", i)
		}
	}
}

func TestFlatEncodesNestedNames(t *testing.T) {
	tracks := Flat([]archive.File{{Name: "disc 1/part#1.mkv"}}, detailURL+"/")
	if len(tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(tracks))
	}
	want := "https://archive.org/download/myid/disc%201%2Fpart%231.mkv"
	if tracks[0].FileURL != want {
		t.Errorf("FileURL = %q, want %q", tracks[0].FileURL, want)
	}
}

func TestFlatNoMatches(t *testing.T) {
	tracks := Flat([]archive.File{{Name: "a.srt"}, {Name: "a.txt"}}, detailURL)
	if tracks == nil {
		t.Fatal("expected an empty, non-nil slice")
	}
	if len(tracks) != 0 {
		t.Errorf("got %d tracks, want 0", len(tracks))
	}
}

func TestGrouped(t *testing.T) {
	files := []archive.File{
		{Name: "clip.mp4", Format: "MPEG4", Size: size(100)},
		{Name: "other.ogv"},
		{Name: "clip.srt"},
		{Name: "clip.webm", Size: size(80)},
		{Name: "clip.MP4"},
	}

	tracks := Grouped(files, detailURL)

	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2: %+v", len(tracks), tracks)
	}

	clip := tracks[0]
	if clip.Title != "clip" {
		t.Errorf("first track title = %q, want clip", clip.Title)
	}
	if clip.FileURL != "" {
		t.Errorf("grouped track should not set FileURL, got %q", clip.FileURL)
	}
	if len(clip.Formats) != 2 {
		t.Fatalf("clip has %d formats, want 2: %+v", len(clip.Formats), clip.Formats)
	}

	mp4 := clip.Formats[0]
	if mp4.Format != "mp4" || mp4.FileURL != "https://archive.org/download/myid/clip.mp4" {
		t.Errorf("unexpected mp4 format: %+v", mp4)
	}
	if mp4.Size == nil || *mp4.Size != 100 {
		t.Errorf("mp4 size not preserved: %v", mp4.Size)
	}
	if mp4.Label != "MPEG4" || mp4.MimeType != "video/mp4" {
		t.Errorf("unexpected mp4 label/mime: %+v", mp4)
	}

	webm := clip.Formats[1]
	if webm.Format != "webm" || webm.Size == nil || *webm.Size != 80 {
		t.Errorf("unexpected webm format: %+v", webm)
	}

	if tracks[1].Title != "other" || len(tracks[1].Formats) != 1 || tracks[1].Formats[0].Format != "ogv" {
		t.Errorf("unexpected second track: %+v", tracks[1])
	}
	if tracks[1].Formats[0].Size != nil {
		t.Error("absent size should stay absent")
	}
}

func TestBuildDispatch(t *testing.T) {
	files := []archive.File{{Name: "clip.mp4"}, {Name: "clip.webm"}}

	if got := Build(GroupingFlat, files, detailURL); len(got) != 2 {
		t.Errorf("flat build produced %d tracks, want 2", len(got))
	}
	if got := Build(GroupingGrouped, files, detailURL); len(got) != 1 {
		t.Errorf("grouped build produced %d tracks, want 1", len(got))
	}
}

func TestTrackFindFormat(t *testing.T) {
	flat := Track{Title: "a.webm", FileURL: "https://archive.org/download/myid/a.webm"}

	f, ok := flat.FindFormat("")
	if !ok || f.Format != "webm" || f.MimeType != "video/webm" || f.FileURL != flat.FileURL {
		t.Errorf("flat FindFormat(\"\") = %+v, %v", f, ok)
	}
	if _, ok := flat.FindFormat("webm"); !ok {
		t.Error("flat FindFormat(webm) should succeed")
	}
	if _, ok := flat.FindFormat("mp4"); ok {
		t.Error("flat FindFormat(mp4) should fail")
	}

	grouped := Grouped([]archive.File{{Name: "clip.mp4"}, {Name: "clip.webm"}}, detailURL)[0]

	f, ok = grouped.FindFormat("")
	if !ok || f.Format != "mp4" {
		t.Errorf("grouped FindFormat(\"\") = %+v, %v; want first format", f, ok)
	}
	f, ok = grouped.FindFormat(".WEBM")
	if !ok || f.Format != "webm" {
		t.Errorf("grouped FindFormat(.WEBM) = %+v, %v", f, ok)
	}
	if _, ok := grouped.FindFormat("mkv"); ok {
		t.Error("grouped FindFormat(mkv) should fail")
	}
}
