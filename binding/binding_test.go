package binding

import (
	"reflect"
	"testing"
)

func TestInterpolate(t *testing.T) {
	data := map[string]any{
		"title": "Hearts",
		"deck":  map[string]string{"count": "54"},
		"tags":  []any{"red", map[string]any{"name": "blue"}},
	}
	cases := map[string]string{
		"${title}":                   "Hearts",
		"${ title } (${deck.count})": "Hearts (54)",
		"${tags[0]}/${tags[1].name}": "red/blue",
		"${missing} stays":           "${missing} stays",
		"${tags[5]}":                 "${tags[5]}",
		"no placeholders":            "no placeholders",
	}
	for in, want := range cases {
		if got := Interpolate(in, data); got != want {
			t.Fatalf("Interpolate(%q) = %q，期望 %q", in, got, want)
		}
	}
	if got := Interpolate("${title}", nil); got != "${title}" {
		t.Fatalf("无数据时应保留占位符，实际 %q", got)
	}
}

func TestMissing(t *testing.T) {
	data := map[string]any{"title": "Hearts"}
	got := Missing("${title} ${author} ${author} ${year}", data)
	if want := []string{"author", "year"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Missing = %v，期望 %v", got, want)
	}
}
