package directory_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daleel/internal/directory"
	"daleel/internal/domain"
)

func TestDefault(t *testing.T) {
	s := directory.Default()
	require.Equal(t, 5, s.Len())
	assert.Equal(t, []int64{101, 102, 103, 104, 105}, s.IDs())
	assert.Equal(t, []string{"النجف"}, s.AvailableCities())

	d, err := s.Get(103)
	require.NoError(t, err)
	assert.Equal(t, "المفاصل والكسور", d.Specialty)
	assert.Equal(t, "https://wa.me/9647813031024", d.WhatsAppURL())

	_, err = s.Get(999)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAll_ReturnsCopy(t *testing.T) {
	s := directory.Default()
	all := s.All()
	all[0].Name = "changed"
	all[0].Keywords[0] = "changed"

	d, err := s.Get(101)
	require.NoError(t, err)
	assert.Equal(t, "د. أحمد حسين مرزه", d.Name)
	assert.Equal(t, "قلب", d.Keywords[0])
}

func TestNew_DuplicateID(t *testing.T) {
	_, err := directory.New([]domain.DoctorRecord{{ID: 1, City: "a"}, {ID: 1, City: "b"}})
	require.Error(t, err)
}

const validFile = `
[[doctor]]
id = 201
name = "د. علي"
specialty = "الأطفال"
phone = "9647700000001"
image_url = "https://example.com/a.png"
city = "كربلاء"
keywords = ["أطفال", "حديثي الولادة"]

[[doctor]]
id = 202
name = "د. زينب"
specialty = "النسائية"
phone = "9647700000002"
city = "النجف"
keywords = ["حمل"]
`

func TestParse(t *testing.T) {
	s, err := directory.Parse([]byte(validFile))
	require.NoError(t, err)
	assert.Equal(t, []int64{201, 202}, s.IDs())
	assert.Equal(t, []string{"كربلاء", "النجف"}, s.AvailableCities())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ``},
		{name: "phone with plus", data: `[[doctor]]
id = 1
name = "x"
specialty = "y"
phone = "+9647700000001"
city = "z"`},
		{name: "missing name", data: `[[doctor]]
id = 1
specialty = "y"
phone = "9647700000001"
city = "z"`},
		{name: "bad image url", data: `[[doctor]]
id = 1
name = "x"
specialty = "y"
phone = "9647700000001"
image_url = "not a url"
city = "z"`},
		{name: "unknown field", data: `[[doctor]]
id = 1
name = "x"
specialty = "y"
phone = "9647700000001"
city = "z"
rating = 5`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := directory.Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doctors.toml")
	require.NoError(t, os.WriteFile(path, []byte(validFile), 0o600))

	s, err := directory.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	_, err = directory.LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	s, err := directory.Load("")
	require.NoError(t, err)
	assert.Equal(t, len(directory.Seed), s.Len(), "empty path gives the built-in directory")

	path := filepath.Join(t.TempDir(), "doctors.toml")
	require.NoError(t, os.WriteFile(path, []byte(validFile), 0o600))
	s, err = directory.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	_, err = directory.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
