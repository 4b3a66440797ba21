package wildcard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Norgate-AV/autoprim/internal/wildcard"
)

func TestSplitPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want wildcard.Parts
	}{
		{
			name: "full windows path",
			path: `C:\dir\sub\file.txt`,
			want: wildcard.Parts{Drive: "C:", Dir: `\dir\sub\`, Base: "file", Ext: ".txt"},
		},
		{
			name: "forward slashes",
			path: "/tmp/out/a.b.c",
			want: wildcard.Parts{Dir: "/tmp/out/", Base: "a.b", Ext: ".c"},
		},
		{
			name: "bare name",
			path: "report",
			want: wildcard.Parts{Base: "report"},
		},
		{
			name: "dot in directory only",
			path: `C:\my.dir\file`,
			want: wildcard.Parts{Drive: "C:", Dir: `\my.dir\`, Base: "file"},
		},
		{
			name: "leading dot",
			path: ".profile",
			want: wildcard.Parts{Ext: ".profile"},
		},
		{
			name: "drive relative",
			path: "D:name.ext",
			want: wildcard.Parts{Drive: "D:", Base: "name", Ext: ".ext"},
		},
		{
			name: "empty",
			path: "",
			want: wildcard.Parts{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, wildcard.SplitPath(tt.path))
		})
	}
}

func TestExpand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		dest   string
		want   string
	}{
		{"replace extension", "report.txt", "*.bak", "report.bak"},
		{"literal extension ignores source ext", "one.two.three", "*.txt", "one.two.txt"},
		{"second star in base is dropped", "a.b.c", "*.*.txt", "a.b..txt"},
		{"three stars", "one.two.three", "*.*.*.txt", "one.two...txt"},
		{"star star keeps name", "a.txt", "*.*", "a.txt"},
		{"prefix and suffix", "data.csv", "old_*_v1.*", "old_data_v1.csv"},
		{"no extension in dest keeps source ext", "report.txt", "*", "report.txt"},
		{"prefix without extension keeps source ext", "a.txt", "new*", "newa.txt"},
		{"source without extension", "README", "*.md", "README.md"},
		{"source without extension and star ext", "README", "*.*", "README"},
		{"extension only wildcard", "photo.jpeg", "image.*", "image.jpeg"},
		{"extra stars in extension", "x.log", "*.*old*", "x.logold"},
		{"directory and drive kept", "file.txt", `C:\backup\*.bak`, `C:\backup\file.bak`},
		{"unix directory kept", "file.txt", "/var/backup/*.orig", "/var/backup/file.orig"},
		{"empty source", "", "*.txt", ".txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, wildcard.Expand(tt.source, tt.dest))
		})
	}
}

func TestExpand_NoWildcardReturnsPattern(t *testing.T) {
	t.Parallel()

	dests := []string{"test", `C:\out\fixed.name`, "", "a.b.c"}
	sources := []string{"one.two", "x", "", `C:\dir\file.txt`}

	for _, d := range dests {
		for _, s := range sources {
			assert.Equal(t, d, wildcard.Expand(s, d), "source=%q dest=%q", s, d)
		}
	}
}

func TestHasWildcards(t *testing.T) {
	t.Parallel()

	assert.True(t, wildcard.HasWildcards("*.txt"))
	assert.True(t, wildcard.HasWildcards("file?.txt"))
	assert.False(t, wildcard.HasWildcards(`C:\plain\file.txt`))
}
