package wrapper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/gradlepin/pkg/wrapper"
)

const url86 = `https\://services.gradle.org/distributions/gradle-8.6-bin.zip`

func TestDistributionURL(t *testing.T) {
	t.Parallel()

	got, err := wrapper.DistributionURL("8.6", wrapper.Bin)
	require.NoError(t, err)
	assert.Equal(t, url86, got)

	got, err = wrapper.DistributionURL("8.11", wrapper.All)
	require.NoError(t, err)
	assert.Equal(t, `https\://services.gradle.org/distributions/gradle-8.11-all.zip`, got)

	_, err = wrapper.DistributionURL("", wrapper.Bin)
	require.ErrorIs(t, err, wrapper.ErrInvalidDistribution)

	_, err = wrapper.DistributionURL("8.6", "src")
	require.ErrorIs(t, err, wrapper.ErrInvalidDistribution)
}

func TestPatch(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		in      string
		want    string
		changed bool
	}{
		"replace": {
			in: "distributionBase=GRADLE_USER_HOME\n" +
				`distributionUrl=https\://services.gradle.org/distributions/gradle-7.5-all.zip` + "\n" +
				"zipStorePath=wrapper/dists\n",
			want: "distributionBase=GRADLE_USER_HOME\n" +
				"distributionUrl=" + url86 + "\n" +
				"zipStorePath=wrapper/dists\n",
			changed: true,
		},
		"already pinned": {
			in:   "distributionUrl=" + url86 + "\n",
			want: "distributionUrl=" + url86 + "\n",
		},
		"crlf": {
			in:      "a=b\r\ndistributionUrl=x\r\n",
			want:    "a=b\r\ndistributionUrl=" + url86 + "\r\n",
			changed: true,
		},
		"missing key": {
			in:      "distributionBase=GRADLE_USER_HOME",
			want:    "distributionBase=GRADLE_USER_HOME\ndistributionUrl=" + url86 + "\n",
			changed: true,
		},
		"similar key is kept": {
			in:      "distributionUrlOld=x\n",
			want:    "distributionUrlOld=x\ndistributionUrl=" + url86 + "\n",
			changed: true,
		},
		"comment is kept": {
			in:      "#distributionUrl=x\ndistributionUrl=y\n",
			want:    "#distributionUrl=x\ndistributionUrl=" + url86 + "\n",
			changed: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, changed := wrapper.Patch(tc.in, url86)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.changed, changed)

			again, changed := wrapper.Patch(got, url86)
			assert.Equal(t, got, again)
			assert.False(t, changed)
		})
	}
}

func TestCurrent(t *testing.T) {
	t.Parallel()

	got, ok := wrapper.Current("a=b\r\ndistributionUrl = " + url86 + "\r\n")
	require.True(t, ok)
	assert.Equal(t, url86, got)

	_, ok = wrapper.Current("a=b\n")
	assert.False(t, ok)
}
