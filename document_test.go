package srniel

import (
	"context"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"reflect"
	"testing"
)

func TestExpandHome(t *testing.T) {
	usr, err := user.Current()
	if err != nil {
		t.Skip("no current user:", err)
	}

	cases := map[string]string{
		"~":               usr.HomeDir,
		"~/proton.pdf":    filepath.Join(usr.HomeDir, "proton.pdf"),
		"/tmp/proton.pdf": "/tmp/proton.pdf",
		"proton~.pdf":     "proton~.pdf",
		"gs://b/o.pdf":    "gs://b/o.pdf",
	}

	for in, want := range cases {
		if got := ExpandHome(in); got != want {
			t.Errorf("ExpandHome(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestSplitGSPath(t *testing.T) {
	bucket, object, err := splitGSPath("gs://my-bucket/dir/SR-NIEL proton.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if bucket != "my-bucket" || object != "dir/SR-NIEL proton.pdf" {
		t.Errorf("Unexpected split %q %q", bucket, object)
	}

	for _, bad := range []string{"gs://", "gs://bucket", "gs://bucket/", "gs:///object"} {
		if _, _, err := splitGSPath(bad); err == nil {
			t.Errorf("Expected an error for %q", bad)
		}
	}
}

func TestExistsLocal(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "proton.pdf")
	if err := os.WriteFile(present, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}
	absent := filepath.Join(dir, "electron.pdf")

	ctx := context.Background()

	if ok, err := Exists(ctx, present, nil); err != nil || !ok {
		t.Errorf("Expected %s to exist (err %v)", present, err)
	}
	if ok, err := Exists(ctx, absent, nil); err != nil || ok {
		t.Errorf("Expected %s to be missing (err %v)", absent, err)
	}
	if ok, _ := Exists(ctx, dir, nil); ok {
		t.Error("A directory is not a document")
	}
	if _, err := Exists(ctx, "gs://bucket/x.pdf", nil); err == nil {
		t.Error("Expected an error checking Google Storage without a client")
	}

	missing, err := MissingDocuments(ctx, []string{present, absent}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(missing, []string{absent}) {
		t.Errorf("Expected only %s missing, got %v", absent, missing)
	}
}

func TestStageLocal(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "proton.pdf")
	if err := os.WriteFile(p, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}

	local, cleanup, err := Stage(context.Background(), p, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()

	if local != p {
		t.Errorf("Local documents should not be copied, got %s", local)
	}
	if _, err := os.Stat(p); err != nil {
		t.Error("Cleanup must not touch local documents:", err)
	}

	r, size, err := OpenDocument(context.Background(), p, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	body, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if size != 8 || string(body) != "%PDF-1.4" {
		t.Errorf("Unexpected contents %q (size %d)", body, size)
	}
}

func TestAbsPath(t *testing.T) {
	got, err := AbsPath("proton.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("Expected an absolute path, got %s", got)
	}

	if got, _ := AbsPath("gs://b/o.pdf"); got != "gs://b/o.pdf" {
		t.Errorf("Google Storage paths must pass through, got %s", got)
	}
}
