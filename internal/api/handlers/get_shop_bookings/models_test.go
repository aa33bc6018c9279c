package get_shop_bookings

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWash/internal/domain"
)

func TestToFilter(t *testing.T) {
	day := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

	f, err := ToFilter("shop-1", url.Values{"date": {"2026-10-20"}, "from": {"2026-10-01"}})
	require.NoError(t, err)
	assert.True(t, f.SingleDay())
	assert.True(t, f.From.Equal(day))

	f, err = ToFilter("shop-1", url.Values{"from": {"2026-10-01"}, "status": {"pending"}, "includeInactive": {"true"}})
	require.NoError(t, err)
	assert.Nil(t, f.To)
	require.NotNil(t, f.Status)
	assert.Equal(t, domain.StatusPending, *f.Status)
	assert.True(t, f.IncludeInactive)

	for _, q := range []url.Values{
		{"date": {"20.10.2026"}},
		{"to": {"x"}},
		{"status": {"archived"}},
		{"includeInactive": {"maybe"}},
	} {
		_, err := ToFilter("shop-1", q)
		assert.Error(t, err, q.Encode())
	}
}
