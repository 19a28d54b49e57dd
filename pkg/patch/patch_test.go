package patch_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/linthound/linthound/pkg/patch"
)

const multiFileDiff = `diff --git a/app.rb b/app.rb
index 1111111..2222222 100644
--- a/app.rb
+++ b/app.rb
@@ -1,2 +1,4 @@
 class Foo
+  def bar
+  end
 end
@@ -10,2 +12,3 @@ class Foo
 x
-y
+z
+w
diff --git a/new.rb b/new.rb
new file mode 100644
index 0000000..3333333
--- /dev/null
+++ b/new.rb
@@ -0,0 +1,2 @@
+a = 1
+b = 2
diff --git a/old.rb b/old.rb
deleted file mode 100644
index 4444444..0000000
--- a/old.rb
+++ /dev/null
@@ -1 +0,0 @@
-x = 1
`

type line struct {
	Relevant bool
	Position int
	OK       bool
}

func lines(f *patch.File, numbers ...int) map[int]line {
	m := make(map[int]line, len(numbers))
	for _, n := range numbers {
		pos, ok := f.DiffPosition(n)
		m[n] = line{Relevant: f.IsRelevant(n), Position: pos, OK: ok}
	}
	return m
}

func TestParse(t *testing.T) {
	t.Parallel()
	files, err := patch.Parse([]byte(multiFileDiff))
	if err != nil {
		t.Fatal(err)
	}
	type summary struct {
		Name    string
		Deleted bool
		Hunks   int
	}
	got := make([]summary, len(files))
	for i, f := range files {
		got[i] = summary{Name: f.Name, Deleted: f.Deleted, Hunks: len(f.Hunks)}
	}
	exp := []summary{
		{Name: "app.rb", Hunks: 2},
		{Name: "new.rb", Hunks: 1},
		{Name: "old.rb", Deleted: true, Hunks: 1},
	}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestNewFile(t *testing.T) {
	t.Parallel()
	files, err := patch.Parse([]byte(multiFileDiff))
	if err != nil {
		t.Fatal(err)
	}
	f := patch.NewFile(files[0].Name, "", files[0].Hunks)
	exp := map[int]line{
		1:  {Position: 1, OK: true},
		2:  {Relevant: true, Position: 2, OK: true},
		3:  {Relevant: true, Position: 3, OK: true},
		4:  {Position: 4, OK: true},
		5:  {},
		12: {Position: 6, OK: true},
		13: {Relevant: true, Position: 8, OK: true},
		14: {Relevant: true, Position: 9, OK: true},
		15: {},
	}
	if diff := cmp.Diff(exp, lines(f, 1, 2, 3, 4, 5, 12, 13, 14, 15)); diff != "" {
		t.Fatal(diff)
	}
	if n := f.AddedLines(); n != 4 {
		t.Fatalf("wanted 4 added lines, got %d", n)
	}

	f = patch.NewFile(files[1].Name, "a = 1\nb = 2\n", files[1].Hunks)
	exp = map[int]line{
		1: {Relevant: true, Position: 1, OK: true},
		2: {Relevant: true, Position: 2, OK: true},
	}
	if diff := cmp.Diff(exp, lines(f, 1, 2)); diff != "" {
		t.Fatal(diff)
	}
	if f.Filename() != "new.rb" || f.Contents() != "a = 1\nb = 2\n" {
		t.Fatalf("unexpected file %s: %q", f.Filename(), f.Contents())
	}
}

func TestParseHunks(t *testing.T) {
	t.Parallel()
	hunks, err := patch.ParseHunks("@@ -1,2 +1,2 @@\n foo\n-bar\n+baz")
	if err != nil {
		t.Fatal(err)
	}
	f := patch.NewFile("app.rb", "foo\nbaz\n", hunks)
	exp := map[int]line{
		1: {Position: 1, OK: true},
		2: {Relevant: true, Position: 3, OK: true},
	}
	if diff := cmp.Diff(exp, lines(f, 1, 2)); diff != "" {
		t.Fatal(diff)
	}

	hunks, err = patch.ParseHunks("")
	if err != nil {
		t.Fatal(err)
	}
	if len(hunks) != 0 {
		t.Fatalf("wanted no hunk, got %d", len(hunks))
	}
}
