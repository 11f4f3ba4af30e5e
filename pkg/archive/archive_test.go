package archive

import (
	"reflect"
	"testing"

	"github.com/matzehuels/pthscan/pkg/archive/archivetest"
	"github.com/matzehuels/pthscan/pkg/errors"
)

func TestListZip(t *testing.T) {
	data := archivetest.Zip(t,
		archivetest.File{Name: "a/__init__.py"},
		archivetest.File{Name: "a-1.0.data/scripts/a.pth", Body: "import a"},
		archivetest.File{Name: "a-1.0.dist-info/RECORD"},
	)

	got, err := ListZip(data)
	if err != nil {
		t.Fatalf("ListZip() error: %v", err)
	}
	want := []string{"a/__init__.py", "a-1.0.data/scripts/a.pth", "a-1.0.dist-info/RECORD"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListZip() = %q, want %q", got, want)
	}
}

func TestListZip_Invalid(t *testing.T) {
	tests := map[string][]byte{
		"empty":   nil,
		"garbage": []byte("this is not a zip file at all"),
		"tar.gz":  archivetest.TarGz(t, archivetest.File{Name: "x/setup.py"}),
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ListZip(data)
			if !errors.Is(err, errors.ErrCodeArchiveFormat) {
				t.Errorf("ListZip() error = %v, want code %s", err, errors.ErrCodeArchiveFormat)
			}
		})
	}
}

func TestOpenTar(t *testing.T) {
	files := []archivetest.File{
		{Name: "b-1.0/"},
		{Name: "b-1.0/setup.py", Body: "setup(name='b')"},
		{Name: "b-1.0/b/__init__.py", Body: ""},
	}
	builders := map[string][]byte{
		"gzip":  archivetest.TarGz(t, files...),
		"plain": archivetest.Tar(t, files...),
	}

	for name, data := range builders {
		t.Run(name, func(t *testing.T) {
			tgz, err := OpenTar(data)
			if err != nil {
				t.Fatalf("OpenTar() error: %v", err)
			}
			defer tgz.Close()

			var names []string
			for _, m := range tgz.Members() {
				names = append(names, m.Name)
			}
			want := []string{"b-1.0", "b-1.0/setup.py", "b-1.0/b/__init__.py"}
			if !reflect.DeepEqual(names, want) {
				t.Fatalf("Members() = %q, want %q", names, want)
			}

			content, err := tgz.ReadMember(tgz.Members()[1])
			if err != nil {
				t.Fatalf("ReadMember() error: %v", err)
			}
			if string(content) != "setup(name='b')" {
				t.Errorf("ReadMember() = %q", content)
			}
		})
	}
}

func TestOpenTar_DuplicateNames(t *testing.T) {
	data := archivetest.TarGz(t,
		archivetest.File{Name: "c-1.0/setup.py", Body: "first"},
		archivetest.File{Name: "c-1.0/setup.py", Body: "second"},
	)
	tgz, err := OpenTar(data)
	if err != nil {
		t.Fatalf("OpenTar() error: %v", err)
	}
	defer tgz.Close()

	members := tgz.Members()
	for i, want := range []string{"first", "second"} {
		got, err := tgz.ReadMember(members[i])
		if err != nil {
			t.Fatalf("ReadMember(%d) error: %v", i, err)
		}
		if string(got) != want {
			t.Errorf("ReadMember(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestOpenTar_Invalid(t *testing.T) {
	tests := map[string][]byte{
		"empty":       nil,
		"short":       []byte("not a tar"),
		"bad gzip":    {0x1f, 0x8b, 0x00, 0x01, 0x02},
		"zip archive": archivetest.Zip(t, archivetest.File{Name: "x.pth"}),
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := OpenTar(data)
			if !errors.Is(err, errors.ErrCodeArchiveFormat) {
				t.Errorf("OpenTar() error = %v, want code %s", err, errors.ErrCodeArchiveFormat)
			}
		})
	}
}

func TestReadMember_Errors(t *testing.T) {
	data := archivetest.TarGz(t,
		archivetest.File{Name: "d-1.0/"},
		archivetest.File{Name: "d-1.0/setup.py", Body: "x"},
	)

	t.Run("directory", func(t *testing.T) {
		tgz, _ := OpenTar(data)
		defer tgz.Close()
		_, err := tgz.ReadMember(tgz.Members()[0])
		if !errors.Is(err, errors.ErrCodeMemberRead) {
			t.Errorf("error = %v, want %s", err, errors.ErrCodeMemberRead)
		}
	})

	t.Run("other archive", func(t *testing.T) {
		a, _ := OpenTar(data)
		b, _ := OpenTar(data)
		defer a.Close()
		defer b.Close()
		_, err := a.ReadMember(b.Members()[1])
		if !errors.Is(err, errors.ErrCodeMemberRead) {
			t.Errorf("error = %v, want %s", err, errors.ErrCodeMemberRead)
		}
	})

	t.Run("after close", func(t *testing.T) {
		tgz, _ := OpenTar(data)
		m := tgz.Members()[1]
		if err := tgz.Close(); err != nil {
			t.Fatalf("Close() error: %v", err)
		}
		if err := tgz.Close(); err != nil {
			t.Fatalf("second Close() error: %v", err)
		}
		_, err := tgz.ReadMember(m)
		if !errors.Is(err, errors.ErrCodeMemberRead) {
			t.Errorf("error = %v, want %s", err, errors.ErrCodeMemberRead)
		}
	})
}
