package adlib_test

import (
	"testing"

	"github.com/fwojciec/adlib"
	"github.com/stretchr/testify/assert"
)

func TestAdRecord_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid success record", func(t *testing.T) {
		t.Parallel()

		rec := &adlib.AdRecord{
			SourceURL:    "https://example.com/ads/archive/render_ad/?id=123",
			CreativeType: adlib.CreativeTypeUnknown,
			Status:       adlib.StatusSuccess,
		}
		assert.NoError(t, rec.Validate())
	})

	t.Run("missing source URL", func(t *testing.T) {
		t.Parallel()

		rec := &adlib.AdRecord{Status: adlib.StatusSuccess}
		err := rec.Validate()
		assert.Equal(t, adlib.EINVALID, adlib.ErrorCode(err))
	})

	t.Run("unknown status", func(t *testing.T) {
		t.Parallel()

		rec := &adlib.AdRecord{SourceURL: "https://example.com", Status: adlib.Status("bogus")}
		err := rec.Validate()
		assert.Equal(t, adlib.EINVALID, adlib.ErrorCode(err))
	})

	t.Run("failed record requires error description", func(t *testing.T) {
		t.Parallel()

		rec := &adlib.AdRecord{SourceURL: "https://example.com", Status: adlib.StatusFailed}
		err := rec.Validate()
		assert.Equal(t, adlib.EINVALID, adlib.ErrorCode(err))

		rec.Error = "fetch failed after 3 retries"
		assert.NoError(t, rec.Validate())
	})
}

func TestStatus_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, adlib.StatusSuccess.Valid())
	assert.True(t, adlib.StatusError.Valid())
	assert.True(t, adlib.StatusFailed.Valid())
	assert.False(t, adlib.Status("").Valid())
	assert.False(t, adlib.Status("ok").Valid())
}

func TestFieldResult_Found(t *testing.T) {
	t.Parallel()

	absent := adlib.FieldResult[string]{}
	assert.False(t, absent.Found())

	found := adlib.FieldResult[string]{Value: "https://example.com/img.jpg", Strategy: "asset_host_image"}
	assert.True(t, found.Found())
}
