package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImageURI(t *testing.T) {
	tests := []struct {
		uri  string
		want Image
	}{
		{
			uri:  "saturncloud/saturn-python:2022.01.06",
			want: Image{Repository: "saturncloud/saturn-python", Tag: "2022.01.06"},
		},
		{
			uri:  "ubuntu:22.04",
			want: Image{Repository: "ubuntu", Tag: "22.04"},
		},
		{
			uri:  "public.ecr.aws/saturncloud/saturn-python-rapids:2022.01.06",
			want: Image{Registry: "public.ecr.aws", Repository: "saturncloud/saturn-python-rapids", Tag: "2022.01.06"},
		},
		{
			uri:  "docker.io/saturncloud/saturn:1.0",
			want: Image{Registry: "docker.io", Repository: "saturncloud/saturn", Tag: "1.0"},
		},
		{
			uri:  "localhost:5000/team/image:dev",
			want: Image{Registry: "localhost:5000", Repository: "team/image", Tag: "dev"},
		},
		{
			uri:  "registry.example.com/deep/team/image:v1",
			want: Image{Registry: "registry.example.com/deep", Repository: "team/image", Tag: "v1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := ParseImageURI(tt.uri)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.uri, got.String())
		})
	}
}

func TestParseImageURI_MissingTag(t *testing.T) {
	for _, uri := range []string{"saturncloud/saturn", "localhost:5000/team/image", "saturncloud/saturn:", ""} {
		t.Run(uri, func(t *testing.T) {
			_, err := ParseImageURI(uri)
			assert.Error(t, err)
		})
	}
}

func TestImageName(t *testing.T) {
	img := Image{Registry: "public.ecr.aws", Repository: "a/b", Tag: "1"}
	assert.Equal(t, "public.ecr.aws/a/b", img.Name())
	assert.Equal(t, "a/b", Image{Repository: "a/b", Tag: "1"}.Name())
}
